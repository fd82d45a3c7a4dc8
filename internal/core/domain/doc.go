// Package domain contains the provider-agnostic calendar model.
// Connectors translate each backend's native payloads into these types so
// callers never see provider-specific shapes unless they ask for raw mode.
package domain

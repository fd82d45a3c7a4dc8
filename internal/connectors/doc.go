// Package connectors groups the backend-specific implementations of the
// unified capability set. Each subpackage owns one backend: its native API
// calls, its field mappers, and its credential refresh policy.
package connectors

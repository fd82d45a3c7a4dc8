// Package driven defines the capability interfaces backend connectors
// implement. The registry dispatches by checking interface conformance,
// never by probing for method names.
package driven

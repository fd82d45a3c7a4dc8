// Package file provides file-based persistence for the unical CLI.
// It stores per-connector client settings and the OAuth credentials the
// connectors rotate, in a TOML file under the user's config directory.
package file

// Package app wires application dependencies for the CLI and the mobile
// boundary.
//
// It loads Config from TOML, then builds the logger, directory client,
// session facade and key store, exposing them via the Wire struct.
package app

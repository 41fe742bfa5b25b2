// Package cli provides the interactive country explorer command-line client.
//
// It wires configuration, the local registry, the session and catalog
// services, and an interactive REPL. Typical flow: restore the previous
// session in the background, then browse, search and filter countries, and
// manage favorites once signed in.
//
// Key features:
//   - Browse all countries, search by name, filter by region
//   - Show details for one country
//   - Register / Login / Logout against the local registry
//   - Favorites: list, add, remove (signed-in only)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli

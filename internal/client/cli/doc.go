// Package cli provides the interactive clinicdesk command-line client.
//
// It wires configuration, durable session storage, the API client, the
// router with its navigation guard, and an interactive REPL. Typical flow:
// restore the session from storage, open "/" (which the guard turns into
// the login screen or the user's role home), start a background
// connectivity watcher, and execute user commands.
//
// Commands:
//   - login / logout
//   - go <path> (alias open) and reload
//   - routes, whoami [-v]
//   - help, exit | quit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli

// Package cli is the interactive terminal client of the LCEN portal.
//
// It wires configuration, the local state database, the API client, the
// session manager, the router and the settings and notification services,
// then runs a REPL. View commands navigate through the router, so the same
// guards that protect the portal's pages decide what a command may show.
//
// The REPL is started with App.Run(ctx), which restores the saved session
// and blocks until the user exits.
package cli

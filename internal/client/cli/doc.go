// Package cli provides the interactive eventdesk command-line client.
//
// It wires configuration, the local session store, the HTTP gateway and an
// interactive REPL. The REPL moves between views: the public landing page,
// the login, register and forgot-password forms, and the role-gated
// dashboard. Entering the dashboard always goes through the session guard.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli

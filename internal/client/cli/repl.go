package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Home(ctx context.Context)
	Login(ctx context.Context)
	Register(ctx context.Context)
	ForgotPassword(ctx context.Context)
	Dashboard(ctx context.Context)
	Logout(ctx context.Context) error
}

// runREPL starts a read–eval–print loop for the eventdesk CLI.
//
// It writes the prompt and replies to w, reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'. The loop exits on EOF or when the user types
// "exit" or "quit".
//
//	Not logged in:
//	  - help             show available commands
//	  - home             show the landing page
//	  - login            sign in
//	  - register         create an account
//	  - forgot           request a password reset link
//	  - dashboard        open the dashboard (redirects to login without a session)
//	  - exit | quit      leave the program
//
//	Logged in:
//	  - help             show available commands
//	  - dashboard        show the dashboard again
//	  - logout           sign out
//	  - exit | quit      leave the program
//
// Errors returned by command handlers are ignored here; handlers print or
// log their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "eventdesk %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		if a.isLoggedIn() {
			switch cmd {
			case "help":
				fmt.Fprintln(w, "Available commands: dashboard, logout, exit")
			case "dashboard":
				a.Dashboard(ctx)
			case "logout":
				_ = a.Logout(ctx)
			case "exit", "quit":
				fmt.Fprintln(w, "Bye!")
				return
			default:
				fmt.Fprintln(w, "Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "help":
			fmt.Fprintln(w, "Available commands: home, login, register, forgot, dashboard, exit")
		case "home":
			a.Home(ctx)
		case "login":
			a.Login(ctx)
		case "register":
			a.Register(ctx)
		case "forgot":
			a.ForgotPassword(ctx)
		case "dashboard":
			a.Dashboard(ctx)
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}

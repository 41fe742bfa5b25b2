package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	All(ctx context.Context) error
	Search(ctx context.Context, query string) error
	Region(ctx context.Context, name string) error
	Show(ctx context.Context, code string) error
	Favorites(ctx context.Context) error
	Fav(ctx context.Context, code string) error
	Unfav(ctx context.Context, code string) error
}

// runREPL starts a simple read–eval–print loop for the country explorer.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  - help              show available commands
//	  - all               list every country
//	  - search <name>     search countries by name
//	  - region <region>   list the countries of a region
//	  - show <code>       show details for a 3-letter country code
//	  - register          create an account
//	  - login             authenticate
//	  - exit | quit       leave the program
//
//	Logged in:
//	  - favorites         list favorite countries
//	  - fav <code>        add a country to favorites
//	  - unfav <code>      remove a country from favorites
//	  - logout            log out
//
// Any errors returned by command handlers are ignored here; handlers report
// and log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("countries %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := strings.Join(parts[1:], " ")

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: all, search <name>, region <region>, show <code>, favorites, fav <code>, unfav <code>, logout, exit")
			} else {
				printlnFn("Available commands: all, search <name>, region <region>, show <code>, register, login, exit")
			}

		case "all":
			_ = a.All(ctx)

		case "search":
			_ = a.Search(ctx, arg)

		case "region":
			_ = a.Region(ctx, arg)

		case "show":
			if arg == "" {
				printlnFn("Usage: show <code>")
				continue
			}
			_ = a.Show(ctx, arg)

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "favorites":
			_ = a.Favorites(ctx)

		case "fav":
			if arg == "" {
				printlnFn("Usage: fav <code>")
				continue
			}
			_ = a.Fav(ctx, arg)

		case "unfav":
			if arg == "" {
				printlnFn("Usage: unfav <code>")
				continue
			}
			_ = a.Unfav(ctx, arg)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}

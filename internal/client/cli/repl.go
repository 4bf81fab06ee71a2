package cli

import (
	"bufio"
	"context"
	"fmt"
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
	WhoAmI(ctx context.Context) error
	Open(ctx context.Context, target string) error
	Where(ctx context.Context) error
	Get(ctx context.Context, endpoint string, args []string) error
	Reset(ctx context.Context, email string) error
}

const (
	helpSignedOut = "Available commands: register, login, open <path>, where, reset <email>, exit"
	helpSignedIn  = "Available commands: whoami, open <path>, where, get <endpoint> [key=value ...], logout, exit"
)

// runREPL reads commands from reader and dispatches them to a until EOF or
// "exit"/"quit". The prompt shows statusFn. A failed command prints its error
// and the loop carries on.
// Command prompts read from the same reader.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("sd> %s > ", statusFn()))
		line, readErr := reader.ReadString('\n')
		if readErr != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpSignedOut)
			}

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "whoami":
			err = a.WhoAmI(ctx)

		case "where":
			err = a.Where(ctx)

		case "open", "cd":
			if len(args) != 1 {
				printlnFn("Usage: open <path>")
				continue
			}
			err = a.Open(ctx, args[0])

		case "get":
			if len(args) == 0 {
				printlnFn("Usage: get <endpoint> [key=value ...]")
				continue
			}
			err = a.Get(ctx, args[0], args[1:])

		case "reset":
			if len(args) != 1 {
				printlnFn("Usage: reset <email>")
				continue
			}
			err = a.Reset(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}

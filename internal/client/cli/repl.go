package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Share(ctx context.Context, id string) error
	Open(ctx context.Context, id, code string) error
}

// runREPL reads one command per line and dispatches it to a until EOF,
// "exit" or "quit". Command errors are reported and the loop continues.
//
//	help                  show available commands
//	login | logout        set or drop the bearer token
//	l | list              list your files, newest first
//	add                   add a file (prompts for name and content)
//	show <id>             print one file
//	delete <id>           delete a file and revoke its share link
//	share <id>            create or fetch the share link for a file
//	open <id> <code>      read a file through a share link
//	exit | quit
func runREPL(ctx context.Context, a execIface, w io.Writer, reader *bufio.Reader) {
	for {
		fmt.Fprint(w, "vault> ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: (l)ist, add, show, delete, share, open, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: login, open, exit")
			}

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "l", "list":
			cmdErr = a.List(ctx)

		case "add":
			cmdErr = a.Add(ctx)

		case "show", "delete", "share":
			if len(args) != 1 {
				fmt.Fprintf(w, "Usage: %s <id>\n", cmd)
				continue
			}
			switch cmd {
			case "show":
				cmdErr = a.Show(ctx, args[0])
			case "delete":
				cmdErr = a.Delete(ctx, args[0])
			default:
				cmdErr = a.Share(ctx, args[0])
			}

		case "open":
			if len(args) != 2 {
				fmt.Fprintln(w, "Usage: open <id> <code>")
				continue
			}
			cmdErr = a.Open(ctx, args[0], args[1])

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintf(w, "Error: %v\n", cmdErr)
		}
	}
}

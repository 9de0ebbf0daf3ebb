package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. App implements it.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Go(ctx context.Context, path string) error
	Members(ctx context.Context, term string) error
	Profile(ctx context.Context, id string) error
	Edit(ctx context.Context, id string) error
	Invoices(ctx context.Context) error
	Expenses(ctx context.Context) error
	AddExpense(ctx context.Context) error
	Profit(ctx context.Context) error
	Analytics(ctx context.Context) error
	Settings(ctx context.Context, args []string) error
	Notifications(ctx context.Context, args []string) error
}

const (
	helpGuest  = "Available commands: login, register, go <path>, help, exit"
	helpMember = "Available commands: whoami, go <path>, members [term], profile [id], edit [id], " +
		"invoices, expenses, addexpense, profit, analytics, settings [set <key> <value>], " +
		"notifications [read <id>|readall|remove <id>|clear], logout, help, exit"
)

// runREPL reads a command per line from in and dispatches it to a. It
// returns on EOF, on "exit"/"quit", or when ctx is done. Command errors are
// printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("lcen (%s)> ", statusFn()))

		line, err := in.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]
		arg := ""
		if len(args) > 0 {
			arg = args[0]
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpMember)
			} else {
				printlnFn(helpGuest)
			}

		case "login":
			cmdErr = a.Login(ctx)
		case "register":
			cmdErr = a.Register(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "go":
			if arg == "" {
				printlnFn("Usage: go <path>")
				continue
			}
			cmdErr = a.Go(ctx, arg)

		case "members", "directory":
			cmdErr = a.Members(ctx, strings.Join(args, " "))
		case "profile":
			cmdErr = a.Profile(ctx, arg)
		case "edit":
			cmdErr = a.Edit(ctx, arg)

		case "invoices":
			cmdErr = a.Invoices(ctx)
		case "expenses":
			cmdErr = a.Expenses(ctx)
		case "addexpense":
			cmdErr = a.AddExpense(ctx)
		case "profit":
			cmdErr = a.Profit(ctx)
		case "analytics":
			cmdErr = a.Analytics(ctx)

		case "settings":
			cmdErr = a.Settings(ctx, args)
		case "notifications", "n":
			cmdErr = a.Notifications(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
		if err != nil {
			return
		}
	}
}

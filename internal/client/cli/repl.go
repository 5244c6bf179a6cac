package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	Profile(ctx context.Context) error
	CompleteProfile(ctx context.Context) error
	Refresh(ctx context.Context) error

	Home(ctx context.Context) error
	Events(ctx context.Context, args []string) error
	Event(ctx context.Context, args []string) error
	Attend(ctx context.Context, args []string) error
	Join(ctx context.Context, args []string) error

	Investments(ctx context.Context, args []string) error
	Featured(ctx context.Context) error
	Investment(ctx context.Context, args []string) error
	Interest(ctx context.Context, args []string) error
	Categories(ctx context.Context) error
}

const (
	helpAnonymous = "Available commands: signup, login, help, exit"
	helpSignedIn  = "Available commands: home, events [page] [status] [category], event <id>, " +
		"attend <id> <attending|not_attending>, join <id>, investments [page] [category], featured, " +
		"investment <id>, interest <id> <on|off>, categories, profile, complete-profile, status, refresh, logout, exit"
)

// runREPL starts the read–eval–print loop of the Insider client.
//
// It reads a line from reader, parses the first token as the command and
// the rest as its arguments, and dispatches to methods on a. The loop exits
// on EOF or when the user types "exit" or "quit". Commands that need a
// session are refused until the user has signed in.
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("insider%s> ", prefixSpace(statusFn())))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpAnonymous)
			}
			continue
		case "signup":
			_ = a.Signup(ctx)
			continue
		case "login":
			_ = a.Login(ctx)
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if !a.isLoggedIn() {
			if isSessionCommand(cmd) {
				printlnFn("Please log in or sign up first")
			} else {
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "logout":
			_ = a.Logout(ctx)
		case "status":
			_ = a.Status(ctx)
		case "profile":
			_ = a.Profile(ctx)
		case "complete-profile":
			_ = a.CompleteProfile(ctx)
		case "refresh":
			_ = a.Refresh(ctx)
		case "home":
			_ = a.Home(ctx)
		case "events":
			_ = a.Events(ctx, args)
		case "event":
			_ = a.Event(ctx, args)
		case "attend":
			_ = a.Attend(ctx, args)
		case "join":
			_ = a.Join(ctx, args)
		case "investments":
			_ = a.Investments(ctx, args)
		case "featured":
			_ = a.Featured(ctx)
		case "investment":
			_ = a.Investment(ctx, args)
		case "interest":
			_ = a.Interest(ctx, args)
		case "categories":
			_ = a.Categories(ctx)
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

var sessionCommands = map[string]bool{
	"logout": true, "status": true, "profile": true, "complete-profile": true, "refresh": true,
	"home": true, "events": true, "event": true, "attend": true, "join": true,
	"investments": true, "featured": true, "investment": true, "interest": true, "categories": true,
}

func isSessionCommand(cmd string) bool {
	return sessionCommands[cmd]
}

func prefixSpace(s string) string {
	if s == "" {
		return ""
	}
	return " " + s
}

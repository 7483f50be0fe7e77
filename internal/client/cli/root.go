package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a
// lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context)
	Logout(ctx context.Context)
	Whoami(ctx context.Context)
	Signup(ctx context.Context)
	ListVehicles(ctx context.Context)
	AddVehicle(ctx context.Context)
	EditVehicle(ctx context.Context, id string)
	DeleteVehicle(ctx context.Context, id string)
	ListInsurances(ctx context.Context)
	AddInsurance(ctx context.Context)
	DeleteInsurance(ctx context.Context, id string)
}

func (a *App) getStatus() string {
	if name, _, err := a.sessionSvc.Whoami(); err == nil && name != "" {
		return "(" + name + ")"
	}
	return ""
}

// Root runs the command loop against the console reader.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Rental admin console (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

// runREPL is a simple read-eval-print loop. It reads a line from the shared
// console reader, parses the first token as the command, and dispatches to
// methods on 'a'. Unknown commands are reported back to the user. The loop
// exits on EOF or when the user types "exit" or "quit". The same reader also
// serves the field prompts inside command handlers, so no input is buffered
// away between them.
//
// Command handlers report their own outcomes through the feedback
// coordinator; the loop stays focused on parsing and dispatch.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "rentadmin %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(out, "Available commands: vehicles, addvehicle, editvehicle <id>, delvehicle <id>,")
				fmt.Fprintln(out, "  insurances, addinsurance, delinsurance <id>, signup, whoami, logout, exit")
			} else {
				fmt.Fprintln(out, "Available commands: login, signup, vehicles, exit")
			}
		case "login":
			a.Login(ctx)
		case "logout":
			a.Logout(ctx)
		case "whoami":
			a.Whoami(ctx)
		case "signup":
			a.Signup(ctx)
		case "vehicles":
			a.ListVehicles(ctx)
		case "addvehicle":
			a.AddVehicle(ctx)
		case "editvehicle":
			if len(args) == 0 {
				fmt.Fprintln(out, "Usage: editvehicle <id>")
				continue
			}
			a.EditVehicle(ctx, args[0])
		case "delvehicle":
			if len(args) == 0 {
				fmt.Fprintln(out, "Usage: delvehicle <id>")
				continue
			}
			a.DeleteVehicle(ctx, args[0])
		case "insurances":
			a.ListInsurances(ctx)
		case "addinsurance":
			a.AddInsurance(ctx)
		case "delinsurance":
			if len(args) == 0 {
				fmt.Fprintln(out, "Usage: delinsurance <id>")
				continue
			}
			a.DeleteInsurance(ctx, args[0])
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}
	}
}

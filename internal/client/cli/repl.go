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
// Every command receives the words typed after its name.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error

	Tasks(ctx context.Context, args []string) error
	AddTask(ctx context.Context, args []string) error
	CompleteTask(ctx context.Context, args []string) error
	RemoveTask(ctx context.Context, args []string) error

	Budget(ctx context.Context, args []string) error
	SetBudget(ctx context.Context, args []string) error
	AddExpense(ctx context.Context, args []string) error

	Loans(ctx context.Context, args []string) error
	AddLoan(ctx context.Context, args []string) error
	PayLoan(ctx context.Context, args []string) error

	Jobs(ctx context.Context, args []string) error
	AddJob(ctx context.Context, args []string) error
	SetJob(ctx context.Context, args []string) error

	Reminders(ctx context.Context, args []string) error
	Snooze(ctx context.Context, args []string) error
	Toggle(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: tasks, addtask, done <id>, rmtask <id>, " +
		"budget [YYYY-MM], setbudget, addexpense, loans, addloan, payloan <id> [amount], " +
		"jobs, addjob, setjob <id> [status], reminders, snooze [minutes|off], " +
		"toggle <budget|loans|jobs>, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the dailykeep shell.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a' with the remaining tokens. Only
// register, login, help and exit are available while signed out. The loop
// exits on scanner EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("dk %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var run func(context.Context, []string) error

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "register":
			run = a.Register
		case "login":
			run = a.Login
		}

		if run == nil && a.isLoggedIn() {
			switch cmd {
			case "logout":
				run = a.Logout
			case "tasks", "t":
				run = a.Tasks
			case "addtask":
				run = a.AddTask
			case "done":
				run = a.CompleteTask
			case "rmtask":
				run = a.RemoveTask
			case "budget":
				run = a.Budget
			case "setbudget":
				run = a.SetBudget
			case "addexpense":
				run = a.AddExpense
			case "loans":
				run = a.Loans
			case "addloan":
				run = a.AddLoan
			case "payloan":
				run = a.PayLoan
			case "jobs":
				run = a.Jobs
			case "addjob":
				run = a.AddJob
			case "setjob":
				run = a.SetJob
			case "reminders", "r":
				run = a.Reminders
			case "snooze":
				run = a.Snooze
			case "toggle":
				run = a.Toggle
			}
		}

		if run == nil {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if err := run(ctx, args); err != nil {
			printlnFn("Error:", err)
		}
	}
}

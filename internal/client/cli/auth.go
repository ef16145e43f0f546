package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/dailykeep/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) ask(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, a.out)
}

// argOrAsk returns args[i] when present and otherwise prompts for it.
func (a *App) argOrAsk(args []string, i int, prompt string) (string, error) {
	if i < len(args) {
		return strings.TrimSpace(args[i]), nil
	}
	return a.ask(prompt)
}

// Register prompts for name, email and password, creates the account and
// signs it in.
//
// The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context, _ []string) error {
	name, err := a.ask("Enter name")
	if err != nil {
		return err
	}
	email, err := a.ask("Enter email")
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.authService.Register(ctx, name, email, password)
	if err != nil {
		return err
	}

	a.user = u
	a.startReminders(ctx)
	fmt.Fprintf(a.out, "Welcome, %s!\n", u.Name)
	return nil
}

// Login prompts for credentials, opens a session and starts the reminder
// loop for the user. Any loop belonging to a previous user is stopped first.
func (a *App) Login(ctx context.Context, args []string) error {
	email, err := a.argOrAsk(args, 0, "Enter email")
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.authService.Login(ctx, email, password)
	if err != nil {
		a.log.Info(ctx, "login failed", "error", err)
		return err
	}

	a.user = u
	a.startReminders(ctx)
	fmt.Fprintf(a.out, "Signed in as %s\n", u.Email)
	return nil
}

// Logout stops the reminder loop and ends the session.
func (a *App) Logout(ctx context.Context, _ []string) error {
	a.stopReminders()
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.user = nil
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

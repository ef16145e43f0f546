package cli

import (
	"bufio"
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	if a.user == nil {
		return ""
	}
	s := a.user.Email
	if n := len(a.currentPanel().Reminders); n > 0 {
		s = fmt.Sprintf("%s, %d reminder(s)", s, n)
	}
	return fmt.Sprintf("(%s)", s)
}

// Root runs the REPL over the app's input until exit or EOF.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to dailykeep (type 'help' for commands)")
	scanner := bufio.NewScanner(lineReader{r: a.reader})
	runREPL(ctx, a, a.getStatus, scanner)
}

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/dailykeep/internal/client/models"
	"github.com/dmitrijs2005/dailykeep/internal/client/services"
)

func (a *App) Tasks(ctx context.Context, _ []string) error {
	tasks := a.taskService.List(ctx, a.user.ID)
	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "No tasks yet")
		return nil
	}
	for _, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		line := fmt.Sprintf("[%s] %s  %-6s %s", mark, shortID(t.ID), t.Priority, t.Title)
		if t.DueDate != "" {
			line += "  (due " + t.DueDate + ")"
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}

// AddTask takes the title from the command line when given, otherwise it
// prompts for every field.
func (a *App) AddTask(ctx context.Context, args []string) error {
	in := services.TaskInput{Title: strings.Join(args, " ")}
	if in.Title == "" {
		var err error
		if in.Title, err = a.ask("Title"); err != nil {
			return err
		}
		p, err := a.ask("Priority (Low, Medium, High) [Medium]")
		if err != nil {
			return err
		}
		in.Priority = models.Priority(titleCase(p))
		if in.DueDate, err = a.ask("Due date (YYYY-MM-DD, optional)"); err != nil {
			return err
		}
		if in.Notes, err = GetMultiline(a.reader, "Notes", a.out); err != nil {
			return err
		}
	}

	t, err := a.taskService.Add(ctx, a.user.ID, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added task %s\n", shortID(t.ID))
	return nil
}

func (a *App) resolveTask(ctx context.Context, args []string) (string, error) {
	prefix, err := a.argOrAsk(args, 0, "Task id")
	if err != nil {
		return "", err
	}
	tasks := a.taskService.List(ctx, a.user.ID)
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return matchID(ids, prefix)
}

func (a *App) CompleteTask(ctx context.Context, args []string) error {
	id, err := a.resolveTask(ctx, args)
	if err != nil {
		return err
	}
	done := true
	t, err := a.taskService.Update(ctx, a.user.ID, id, models.TaskPatch{Completed: &done})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Completed %q\n", t.Title)
	return nil
}

func (a *App) RemoveTask(ctx context.Context, args []string) error {
	id, err := a.resolveTask(ctx, args)
	if err != nil {
		return err
	}
	if err := a.taskService.Delete(ctx, a.user.ID, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Task removed")
	return nil
}

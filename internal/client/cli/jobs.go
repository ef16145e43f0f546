package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/dailykeep/internal/client/models"
	"github.com/dmitrijs2005/dailykeep/internal/client/services"
)

func (a *App) Jobs(ctx context.Context, _ []string) error {
	jobs := a.jobService.List(ctx, a.user.ID)
	if len(jobs) == 0 {
		fmt.Fprintln(a.out, "No applications tracked")
		return nil
	}
	for _, j := range jobs {
		fmt.Fprintf(a.out, "%s %-10s %s  %s (%s)\n", shortID(j.ID), j.Status, j.DateApplied, j.Company, j.Role)
	}
	s := models.AnalyzeJobs(jobs)
	fmt.Fprintf(a.out, "%d applications, interview rate %.0f%%, offer rate %.0f%%\n", s.Total, s.InterviewRate, s.OfferRate)
	return nil
}

func (a *App) AddJob(ctx context.Context, _ []string) error {
	var in services.JobInput
	var err error

	if in.Company, err = a.ask("Company"); err != nil {
		return err
	}
	if in.Role, err = a.ask("Role"); err != nil {
		return err
	}
	if in.DateApplied, err = a.ask("Date applied (YYYY-MM-DD, blank for today)"); err != nil {
		return err
	}
	if in.Notes, err = a.ask("Notes"); err != nil {
		return err
	}

	j, err := a.jobService.Add(ctx, a.user.ID, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Tracking %s at %s (%s)\n", j.Role, j.Company, shortID(j.ID))
	return nil
}

// SetJob accepts "setjob <id> [status]" and updates the application status.
func (a *App) SetJob(ctx context.Context, args []string) error {
	prefix, err := a.argOrAsk(args, 0, "Application id")
	if err != nil {
		return err
	}
	jobs := a.jobService.List(ctx, a.user.ID)
	ids := make([]string, len(jobs))
	for i, j := range jobs {
		ids[i] = j.ID
	}
	id, err := matchID(ids, prefix)
	if err != nil {
		return err
	}

	s, err := a.argOrAsk(args, 1, "Status (Applied, Interview, Offer, Rejected)")
	if err != nil {
		return err
	}
	status := models.JobStatus(titleCase(s))

	j, err := a.jobService.Update(ctx, a.user.ID, id, models.JobPatch{Status: &status})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s is now %s\n", j.Company, j.Status)
	return nil
}

package services

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/dailykeep/internal/client/keys"
	"github.com/dmitrijs2005/dailykeep/internal/client/models"
	"github.com/dmitrijs2005/dailykeep/internal/client/records"
	"github.com/dmitrijs2005/dailykeep/internal/common"
	"github.com/dmitrijs2005/dailykeep/internal/sanitize"
	"github.com/dmitrijs2005/dailykeep/internal/timex"
	"github.com/google/uuid"
)

const (
	JobFieldMaxLen = 120
	JobNotesMaxLen = 240
)

type JobInput struct {
	Company     string
	Role        string
	DateApplied string
	Status      models.JobStatus
	Notes       string
}

type JobService interface {
	List(ctx context.Context, userID string) []models.Job
	Add(ctx context.Context, userID string, in JobInput) (models.Job, error)
	Update(ctx context.Context, userID, jobID string, patch models.JobPatch) (models.Job, error)
	Delete(ctx context.Context, userID, jobID string) error
	Analytics(ctx context.Context, userID string) models.JobAnalytics
}

type jobService struct {
	mu      sync.Mutex
	records *records.Store
	clock   timex.Clock
}

func NewJobService(rec *records.Store, clock timex.Clock) JobService {
	return &jobService{records: rec, clock: clock}
}

func (s *jobService) List(ctx context.Context, userID string) []models.Job {
	return records.ReadJSON(ctx, s.records, keys.User(keys.Jobs, userID), []models.Job{}, models.ValidJobs)
}

func (s *jobService) save(ctx context.Context, userID string, jobs []models.Job) error {
	if err := s.records.WriteJSON(ctx, keys.User(keys.Jobs, userID), jobs); err != nil {
		return fmt.Errorf("saving jobs: %w", err)
	}
	return nil
}

// Add records a new application, newest first. Status defaults to Applied
// and the application date to today.
func (s *jobService) Add(ctx context.Context, userID string, in JobInput) (models.Job, error) {
	now := s.clock.Now()
	j := models.Job{
		ID:          uuid.NewString(),
		Company:     sanitize.Text(in.Company, JobFieldMaxLen, false),
		Role:        sanitize.Text(in.Role, JobFieldMaxLen, false),
		DateApplied: sanitize.Text(in.DateApplied, dateMaxLen, false),
		Status:      in.Status,
		Notes:       sanitize.Text(in.Notes, JobNotesMaxLen, true),
		UpdatedAt:   now,
	}
	if j.Company == "" {
		return models.Job{}, fmt.Errorf("%w: company is required", common.ErrValidation)
	}
	if j.DateApplied == "" {
		j.DateApplied = common.DayKey(now)
	}
	if !sanitize.IsISODate(j.DateApplied) {
		return models.Job{}, fmt.Errorf("%w: date applied must be in YYYY-MM-DD format", common.ErrValidation)
	}
	if j.Status == "" {
		j.Status = models.JobApplied
	}
	if !j.Status.Valid() {
		return models.Job{}, fmt.Errorf("%w: unknown status %q", common.ErrValidation, j.Status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.save(ctx, userID, append([]models.Job{j}, s.List(ctx, userID)...)); err != nil {
		return models.Job{}, err
	}
	return j, nil
}

func (s *jobService) Update(ctx context.Context, userID, jobID string, patch models.JobPatch) (models.Job, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return models.Job{}, fmt.Errorf("%w: unknown status %q", common.ErrValidation, *patch.Status)
	}
	if patch.DateApplied != nil && !sanitize.IsISODate(*patch.DateApplied) {
		return models.Job{}, fmt.Errorf("%w: date applied must be in YYYY-MM-DD format", common.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := s.List(ctx, userID)
	i := slices.IndexFunc(jobs, func(j models.Job) bool { return j.ID == jobID })
	if i < 0 {
		return models.Job{}, fmt.Errorf("job %s: %w", jobID, common.ErrorNotFound)
	}

	j := &jobs[i]
	if patch.Company != nil {
		if v := sanitize.Text(*patch.Company, JobFieldMaxLen, false); v != "" {
			j.Company = v
		}
	}
	if patch.Role != nil {
		j.Role = sanitize.Text(*patch.Role, JobFieldMaxLen, false)
	}
	if patch.DateApplied != nil && *patch.DateApplied != "" {
		j.DateApplied = *patch.DateApplied
	}
	if patch.Status != nil {
		j.Status = *patch.Status
	}
	if patch.Notes != nil {
		j.Notes = sanitize.Text(*patch.Notes, JobNotesMaxLen, true)
	}
	j.UpdatedAt = s.clock.Now()

	if err := s.save(ctx, userID, jobs); err != nil {
		return models.Job{}, err
	}
	return *j, nil
}

func (s *jobService) Delete(ctx context.Context, userID, jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := s.List(ctx, userID)
	next := slices.DeleteFunc(jobs, func(j models.Job) bool { return j.ID == jobID })
	if len(next) == len(jobs) {
		return fmt.Errorf("job %s: %w", jobID, common.ErrorNotFound)
	}
	return s.save(ctx, userID, next)
}

func (s *jobService) Analytics(ctx context.Context, userID string) models.JobAnalytics {
	return models.AnalyzeJobs(s.List(ctx, userID))
}

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
	TaskTitleMaxLen = 140
	TaskNotesMaxLen = 500
	dateMaxLen      = 10
)

type TaskInput struct {
	Title    string
	Priority models.Priority
	DueDate  string
	Notes    string
}

type TaskService interface {
	List(ctx context.Context, userID string) []models.Task
	Add(ctx context.Context, userID string, in TaskInput) (models.Task, error)
	Update(ctx context.Context, userID, taskID string, patch models.TaskPatch) (models.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
	Reorder(ctx context.Context, userID string, ids []string) ([]models.Task, error)
	Import(ctx context.Context, userID string, tasks []models.Task) ([]models.Task, error)
}

type taskService struct {
	mu      sync.Mutex
	records *records.Store
	clock   timex.Clock
}

func NewTaskService(rec *records.Store, clock timex.Clock) TaskService {
	return &taskService{records: rec, clock: clock}
}

func (s *taskService) load(ctx context.Context, userID string) []models.Task {
	tasks := records.ReadJSON(ctx, s.records, keys.User(keys.Tasks, userID), []models.Task{}, models.ValidTasks)
	slices.SortStableFunc(tasks, func(a, b models.Task) int {
		switch {
		case a.Order < b.Order:
			return -1
		case a.Order > b.Order:
			return 1
		}
		return 0
	})
	return tasks
}

func (s *taskService) save(ctx context.Context, userID string, tasks []models.Task) error {
	if err := s.records.WriteJSON(ctx, keys.User(keys.Tasks, userID), tasks); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	return nil
}

// List returns the user's tasks in display order.
func (s *taskService) List(ctx context.Context, userID string) []models.Task {
	return s.load(ctx, userID)
}

func cleanDueDate(v string) (string, error) {
	v = sanitize.Text(v, dateMaxLen, false)
	if !sanitize.IsISODate(v) {
		return "", fmt.Errorf("%w: due date must be in YYYY-MM-DD format", common.ErrValidation)
	}
	return v, nil
}

// Add appends a new task. Priority defaults to Medium.
func (s *taskService) Add(ctx context.Context, userID string, in TaskInput) (models.Task, error) {
	title := sanitize.Text(in.Title, TaskTitleMaxLen, false)
	if title == "" {
		return models.Task{}, fmt.Errorf("%w: task title is required", common.ErrValidation)
	}
	due, err := cleanDueDate(in.DueDate)
	if err != nil {
		return models.Task{}, err
	}
	priority := in.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return models.Task{}, fmt.Errorf("%w: unknown priority %q", common.ErrValidation, priority)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	t := models.Task{
		ID:        uuid.NewString(),
		Title:     title,
		Priority:  priority,
		DueDate:   due,
		Notes:     sanitize.Text(in.Notes, TaskNotesMaxLen, true),
		Order:     now.UnixMilli(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	tasks := s.load(ctx, userID)
	if n := len(tasks); n > 0 && tasks[n-1].Order >= t.Order {
		t.Order = tasks[n-1].Order + 1
	}
	if err := s.save(ctx, userID, append(tasks, t)); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// Update applies the non-nil fields of patch to the task.
func (s *taskService) Update(ctx context.Context, userID, taskID string, patch models.TaskPatch) (models.Task, error) {
	if patch.Title != nil {
		v := sanitize.Text(*patch.Title, TaskTitleMaxLen, false)
		if v == "" {
			return models.Task{}, fmt.Errorf("%w: task title is required", common.ErrValidation)
		}
		patch.Title = &v
	}
	if patch.Notes != nil {
		v := sanitize.Text(*patch.Notes, TaskNotesMaxLen, true)
		patch.Notes = &v
	}
	if patch.DueDate != nil {
		v, err := cleanDueDate(*patch.DueDate)
		if err != nil {
			return models.Task{}, err
		}
		patch.DueDate = &v
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return models.Task{}, fmt.Errorf("%w: unknown priority %q", common.ErrValidation, *patch.Priority)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.load(ctx, userID)
	i := slices.IndexFunc(tasks, func(t models.Task) bool { return t.ID == taskID })
	if i < 0 {
		return models.Task{}, fmt.Errorf("task %s: %w", taskID, common.ErrorNotFound)
	}

	t := &tasks[i]
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		t.DueDate = *patch.DueDate
	}
	if patch.Notes != nil {
		t.Notes = *patch.Notes
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	t.UpdatedAt = s.clock.Now()

	if err := s.save(ctx, userID, tasks); err != nil {
		return models.Task{}, err
	}
	return *t, nil
}

func (s *taskService) Delete(ctx context.Context, userID, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.load(ctx, userID)
	next := slices.DeleteFunc(tasks, func(t models.Task) bool { return t.ID == taskID })
	if len(next) == len(tasks) {
		return fmt.Errorf("task %s: %w", taskID, common.ErrorNotFound)
	}
	return s.save(ctx, userID, next)
}

// Reorder keeps the tasks named in ids, in that order. Unknown ids are
// skipped and tasks not named are dropped.
func (s *taskService) Reorder(ctx context.Context, userID string, ids []string) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID := make(map[string]models.Task)
	for _, t := range s.load(ctx, userID) {
		byID[t.ID] = t
	}

	now := s.clock.Now()
	next := make([]models.Task, 0, len(ids))
	for _, id := range ids {
		t, ok := byID[id]
		if !ok {
			continue
		}
		delete(byID, id)
		t.Order = int64(len(next))
		t.UpdatedAt = now
		next = append(next, t)
	}
	if err := s.save(ctx, userID, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Import replaces all of the user's tasks with a cleaned copy of tasks.
// Entries without a title are dropped.
func (s *taskService) Import(ctx context.Context, userID string, tasks []models.Task) ([]models.Task, error) {
	now := s.clock.Now()
	clean := make([]models.Task, 0, len(tasks))
	for i, t := range tasks {
		title := sanitize.Text(t.Title, TaskTitleMaxLen, false)
		if title == "" {
			continue
		}
		out := models.Task{
			ID:        t.ID,
			Title:     title,
			Priority:  t.Priority,
			DueDate:   t.DueDate,
			Notes:     sanitize.Text(t.Notes, TaskNotesMaxLen, true),
			Completed: t.Completed,
			Order:     t.Order,
			CreatedAt: t.CreatedAt,
			UpdatedAt: now,
		}
		if out.ID == "" {
			out.ID = uuid.NewString()
		}
		if !out.Priority.Valid() {
			out.Priority = models.PriorityMedium
		}
		if !sanitize.IsISODate(out.DueDate) {
			out.DueDate = ""
		}
		if out.Order == 0 {
			out.Order = int64(i)
		}
		if out.CreatedAt.IsZero() {
			out.CreatedAt = now
		}
		clean = append(clean, out)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.save(ctx, userID, clean); err != nil {
		return nil, err
	}
	return clean, nil
}

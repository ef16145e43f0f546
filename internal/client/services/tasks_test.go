package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/dailykeep/internal/client/models"
	"github.com/dmitrijs2005/dailykeep/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(tasks []models.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

func TestTasks_AddListUpdateDelete(t *testing.T) {
	rec, _ := setupRecords(t)
	clock := newClock()
	svc := NewTaskService(rec, clock)
	ctx := context.Background()

	a, err := svc.Add(ctx, "u1", TaskInput{Title: "pay rent", DueDate: "2024-05-31", Notes: "line1\nline2"})
	require.NoError(t, err)
	assert.Equal(t, models.PriorityMedium, a.Priority)
	assert.Equal(t, "line1\nline2", a.Notes)

	b, err := svc.Add(ctx, "u1", TaskInput{Title: "call bank", Priority: models.PriorityHigh})
	require.NoError(t, err)
	assert.Greater(t, b.Order, a.Order)

	assert.Equal(t, []string{"pay rent", "call bank"}, titles(svc.List(ctx, "u1")))
	assert.Empty(t, svc.List(ctx, "u2"), "tasks are per user")

	clock.Advance(time.Minute)
	up, err := svc.Update(ctx, "u1", a.ID, models.TaskPatch{Completed: ptr(true), Title: ptr("pay rent!")})
	require.NoError(t, err)
	assert.True(t, up.Completed)
	assert.Equal(t, "pay rent!", up.Title)
	assert.True(t, up.UpdatedAt.After(a.UpdatedAt))

	require.NoError(t, svc.Delete(ctx, "u1", a.ID))
	assert.Equal(t, []string{"call bank"}, titles(svc.List(ctx, "u1")))
	assert.ErrorIs(t, svc.Delete(ctx, "u1", a.ID), common.ErrorNotFound)
}

func TestTasks_Validation(t *testing.T) {
	rec, _ := setupRecords(t)
	svc := NewTaskService(rec, newClock())
	ctx := context.Background()

	_, err := svc.Add(ctx, "u1", TaskInput{Title: "   "})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Add(ctx, "u1", TaskInput{Title: "x", DueDate: "31/05/2024"})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Add(ctx, "u1", TaskInput{Title: "x", Priority: "Urgent"})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Update(ctx, "u1", "missing", models.TaskPatch{})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestTasks_ReorderAndImport(t *testing.T) {
	rec, _ := setupRecords(t)
	svc := NewTaskService(rec, newClock())
	ctx := context.Background()

	a, _ := svc.Add(ctx, "u1", TaskInput{Title: "a"})
	b, _ := svc.Add(ctx, "u1", TaskInput{Title: "b"})
	c, _ := svc.Add(ctx, "u1", TaskInput{Title: "c"})

	got, err := svc.Reorder(ctx, "u1", []string{c.ID, "ghost", a.ID, b.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, titles(got))
	assert.Equal(t, []string{"c", "a", "b"}, titles(svc.List(ctx, "u1")))

	imported, err := svc.Import(ctx, "u1", []models.Task{
		{Title: "kept", Priority: "weird", DueDate: "bad"},
		{Title: "  "},
		{ID: "fixed", Title: "second", Priority: models.PriorityLow, Order: 5},
	})
	require.NoError(t, err)
	require.Len(t, imported, 2)
	assert.NotEmpty(t, imported[0].ID)
	assert.Equal(t, models.PriorityMedium, imported[0].Priority)
	assert.Empty(t, imported[0].DueDate)
	assert.Equal(t, "fixed", imported[1].ID)
	assert.Equal(t, []string{"kept", "second"}, titles(svc.List(ctx, "u1")))
}

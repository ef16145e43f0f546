package models

import (
	"time"

	"github.com/dmitrijs2005/dailykeep/internal/sanitize"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Priority  Priority  `json:"priority"`
	DueDate   string    `json:"dueDate"`
	Notes     string    `json:"notes"`
	Completed bool      `json:"completed"`
	Order     int64     `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TaskPatch carries the fields of an update; nil fields are left unchanged.
type TaskPatch struct {
	Title     *string
	Priority  *Priority
	DueDate   *string
	Notes     *string
	Completed *bool
}

func ValidTasks(tasks []Task) bool {
	for _, t := range tasks {
		if t.ID == "" || t.Title == "" || !t.Priority.Valid() || !sanitize.IsISODate(t.DueDate) {
			return false
		}
	}
	return true
}

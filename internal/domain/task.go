package domain

import (
	"bytes"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Task
var (
	ErrTaskIDEmpty        = errors.New("task ID cannot be empty")
	ErrTaskCreatedAtEmpty = errors.New("task creation time cannot be empty")
)

// Task is a titled, timestamped piece of content.
// ID and CreatedAt are assigned by the store at creation and never change.
// Title and Content are non-null but may be empty strings.
type Task struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks that the store-assigned fields are populated.
// Adapters call it on records read back from a backend that does not
// enforce a schema.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if t.CreatedAt.IsZero() {
		return ErrTaskCreatedAtEmpty
	}

	return nil
}

// Merge applies the set fields of an update to the task in place.
// Unset fields keep their current value; an explicitly empty string replaces.
func (t *Task) Merge(title, content Optional[string]) {
	t.Title = title.OrElse(t.Title)
	t.Content = content.OrElse(t.Content)
}

// Clone returns an independent copy of the task.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// SortTasks orders tasks by creation time, then by ID.
// This is the listing order every store returns.
func SortTasks(tasks []*Task) {
	sort.Slice(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return bytes.Compare(a.ID[:], b.ID[:]) < 0
	})
}

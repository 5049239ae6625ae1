package domain

import "time"

// Task belongs to exactly one user. Queries over tasks are always scoped to
// the owning user id.
type Task struct {
	ID          int
	UserID      int
	Title       string `validate:"required,max=255"`
	Description string `validate:"max=1000"`
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t *Task) BelongsTo(userID int) bool {
	return t.UserID == userID
}

// TaskFilter is the conjunctive predicate set for task search: the user
// scope is always applied, the optional fields only when set. Completed is
// a pointer so that filtering on false stays distinct from not filtering.
type TaskFilter struct {
	UserID      int
	Title       string
	Description string
	Completed   *bool
	Limit       int
	Offset      int
}

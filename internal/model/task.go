package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidPriority = errors.New("model: invalid task priority")

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// ParsePriority maps user input to a Priority, case-insensitively.
func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
	}
	return p, nil
}

// Task is a single list entry. IDs are issued by the list's counter and are
// never reused, even after deletion. Order mirrors the task's position in the
// list and is re-derived after every reorder.
type Task struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	Priority  Priority  `json:"priority"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
}

func (t Task) Validate() error {
	if t.ID <= 0 {
		return errors.New("model: task id must be positive")
	}
	if strings.TrimSpace(t.Text) == "" {
		return errors.New("model: task text is required")
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	return nil
}

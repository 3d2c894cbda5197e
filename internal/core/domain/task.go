package domain

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the text layout timestamps are persisted in.
// It matches SQLite's strftime('%Y-%m-%d %H:%M:%f').
const TimestampLayout = "2006-01-02 15:04:05.000"

// Task is a single to-do item.
type Task struct {
	// ID is assigned by the store on creation and never changes.
	ID int64

	// Title is the non-empty, trimmed task title.
	Title string

	// Description is optional free text. Empty means absent.
	Description string

	// Completed reports whether the task is done.
	Completed bool

	// CreatedAt is set once when the task is created.
	CreatedAt time.Time

	// UpdatedAt is refreshed on every successful update.
	UpdatedAt time.Time
}

// NewTask is the input for creating a task.
type NewTask struct {
	Title       string
	Description string
}

// Normalize trims the input and validates the title.
func (n NewTask) Normalize() (NewTask, error) {
	title, err := NormalizeTitle(n.Title)
	if err != nil {
		return NewTask{}, err
	}
	return NewTask{
		Title:       title,
		Description: strings.TrimSpace(n.Description),
	}, nil
}

// TaskPatch is a sparse update. A nil field is left untouched; to clear the
// description pass a pointer to the empty string.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

// IsEmpty reports whether the patch names no field.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil
}

// Normalize trims present fields and validates them.
// An empty patch yields ErrEmptyPatch, a blank title ErrEmptyTitle.
func (p TaskPatch) Normalize() (TaskPatch, error) {
	if p.IsEmpty() {
		return TaskPatch{}, ErrEmptyPatch
	}

	out := TaskPatch{Completed: p.Completed}
	if p.Title != nil {
		title, err := NormalizeTitle(*p.Title)
		if err != nil {
			return TaskPatch{}, err
		}
		out.Title = &title
	}
	if p.Description != nil {
		desc := strings.TrimSpace(*p.Description)
		out.Description = &desc
	}
	return out, nil
}

// TaskFilter restricts a task listing. A nil Completed means no filter.
type TaskFilter struct {
	Completed *bool
}

// ParseCompleted reads a completion filter value. Only the literals "true"
// and "false" are accepted; anything else wraps ErrInvalidInput.
func ParseCompleted(raw string) (bool, error) {
	switch raw {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("completed must be true or false, got %q: %w", raw, ErrInvalidInput)
	}
}

// NormalizeTitle trims a title and rejects it when nothing is left.
func NormalizeTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", ErrEmptyTitle
	}
	return trimmed, nil
}

// FormatTimestamp renders t in the persisted layout (UTC).
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses a persisted timestamp. Fractional seconds are
// optional, so second-resolution values written by CURRENT_TIMESTAMP parse too.
func ParseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04:05", s, time.UTC)
}

// Ptr returns a pointer to v. Handy for building patches and filters.
func Ptr[T any](v T) *T {
	return &v
}

package tasks

import "github.com/custodia-labs/taskd/internal/core/domain"

// Filter selects which tasks the list shows.
type Filter int

const (
	FilterAll Filter = iota
	FilterPending
	FilterCompleted
)

// Next returns the filter after f, wrapping around.
func (f Filter) Next() Filter {
	return (f + 1) % 3
}

// String returns the label shown in the header.
func (f Filter) String() string {
	switch f {
	case FilterPending:
		return "pending"
	case FilterCompleted:
		return "completed"
	default:
		return "all"
	}
}

// TaskFilter converts f into a repository filter.
func (f Filter) TaskFilter() domain.TaskFilter {
	switch f {
	case FilterPending:
		return domain.TaskFilter{Completed: domain.Ptr(false)}
	case FilterCompleted:
		return domain.TaskFilter{Completed: domain.Ptr(true)}
	default:
		return domain.TaskFilter{}
	}
}

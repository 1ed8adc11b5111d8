package view

import (
	"sort"

	domain "github.com/example/todo-list-demo/domain/task"
)

// SortOrder is the due-date ordering of the visible list.
type SortOrder int

const (
	// SortNone keeps the order the server returned.
	SortNone SortOrder = iota
	SortAscending
	SortDescending
)

func (s SortOrder) String() string {
	switch s {
	case SortAscending:
		return "asc"
	case SortDescending:
		return "desc"
	default:
		return "none"
	}
}

// next flips the direction; the first activation sorts ascending.
func (s SortOrder) next() SortOrder {
	if s == SortAscending {
		return SortDescending
	}
	return SortAscending
}

// Filter selects which statuses are visible.
type Filter int

const (
	FilterBoth Filter = iota
	FilterPendingOnly
	FilterCompletedOnly
)

func (f Filter) String() string {
	switch f {
	case FilterPendingOnly:
		return "pending"
	case FilterCompletedOnly:
		return "completed"
	default:
		return "all"
	}
}

// next cycles Both -> PendingOnly -> CompletedOnly -> Both.
func (f Filter) next() Filter {
	switch f {
	case FilterBoth:
		return FilterPendingOnly
	case FilterPendingOnly:
		return FilterCompletedOnly
	default:
		return FilterBoth
	}
}

func (f Filter) keep(t domain.Task) bool {
	switch f {
	case FilterPendingOnly:
		return t.Status == domain.StatusPending
	case FilterCompletedOnly:
		return t.Status == domain.StatusCompleted
	default:
		return true
	}
}

// project derives the visible rows without touching tasks.
func project(tasks []domain.Task, order SortOrder, filter Filter) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if filter.keep(t) {
			out = append(out, t)
		}
	}

	if order == SortNone {
		return out
	}

	type keyed struct {
		task domain.Task
		unix int64
		ok   bool
	}
	rows := make([]keyed, len(out))
	for i, t := range out {
		date, err := domain.ParseDueDate(t.DueDate)
		rows[i] = keyed{task: t, unix: date.Unix(), ok: err == nil}
	}

	// Unparseable dates sink to the bottom in either direction.
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.ok != b.ok {
			return a.ok
		}
		if !a.ok {
			return false
		}
		if order == SortDescending {
			return a.unix > b.unix
		}
		return a.unix < b.unix
	})

	for i, r := range rows {
		out[i] = r.task
	}
	return out
}

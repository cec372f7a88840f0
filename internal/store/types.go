package store

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Filter is a view predicate over tasks.
type Filter string

const (
	// FilterAll shows every task.
	FilterAll Filter = "all"

	// FilterActive shows tasks that are not done.
	FilterActive Filter = "active"

	// FilterDone shows completed tasks.
	FilterDone Filter = "done"
)

// ErrInvalidFilter is returned by ParseFilter for values outside
// {all, active, done}.
var ErrInvalidFilter = errors.New("invalid filter")

// validFilters is the set of all known Filter values.
var validFilters = map[Filter]bool{
	FilterAll:    true,
	FilterActive: true,
	FilterDone:   true,
}

// Filters returns all filters in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterActive, FilterDone}
}

// ParseFilter converts user input (flags, config values, script arguments)
// into a Filter. Matching is case-insensitive and ignores surrounding
// whitespace.
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %q (want all, active or done)", ErrInvalidFilter, s)
	}
	return f, nil
}

// IsValid returns true if the filter is a recognized value.
func (f Filter) IsValid() bool {
	return validFilters[f]
}

// Next returns the filter that follows f in display order, wrapping from
// done back to all. Unknown values cycle to all.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterActive
	case FilterActive:
		return FilterDone
	default:
		return FilterAll
	}
}

// Matches reports whether t is visible under f.
func (f Filter) Matches(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Done
	case FilterDone:
		return t.Done
	default:
		return true
	}
}

// Task is a single entry in the list. Text is trimmed and never empty; it
// does not change after creation.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
}

// View is the read-only projection the presentation layer renders from.
type View struct {
	Tasks          []Task `json:"tasks"`
	Filter         Filter `json:"filter"`
	ActiveCount    int    `json:"active_count"`
	CompletedCount int    `json:"completed_count"`
	TotalCount     int    `json:"total_count"`
	// Progress is the completed percentage rounded to the nearest integer,
	// 0 when the list is empty.
	Progress int `json:"progress"`
}

// Empty reports whether the filtered task list is empty.
func (v View) Empty() bool {
	return len(v.Tasks) == 0
}

// Clock returns the current time. Injected so tests can pin CreatedAt.
type Clock func() time.Time

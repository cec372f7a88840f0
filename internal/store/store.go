// Package store holds the in-memory task list: the ordered tasks, the
// text-entry draft and the active filter, plus the derived view that
// presentation layers render from.
//
// Every operation is total. Blank text, unknown ids and invalid filters are
// absorbed as no-ops and reported only through debug logging and the boolean
// results, never as errors.
package store

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/AbdelazizMoustafa10m/focus/internal/logging"
)

// maxIDAttempts bounds how often the store asks the generator for a fresh
// id before falling back to a sequence suffix.
const maxIDAttempts = 8

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator sets the identifier source. Defaults to a counter
// generator with the "t" prefix.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) {
		if g != nil {
			s.ids = g
		}
	}
}

// WithClock sets the clock used for Task.CreatedAt.
func WithClock(c Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger sets the logger used for no-op warnings.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFilter sets the initial filter. Invalid values are ignored.
func WithFilter(f Filter) Option {
	return func(s *Store) {
		if f.IsValid() {
			s.filter = f
		}
	}
}

type subscriber struct {
	id int
	fn func(View)
}

// Store owns the task sequence (newest first), the draft and the filter. It
// is safe for concurrent use, although presentation layers drive it from a
// single event loop.
type Store struct {
	mu     sync.Mutex
	tasks  []Task
	filter Filter
	draft  string

	ids    IDGenerator
	clock  Clock
	logger *log.Logger

	// issued records every id handed out so that ids stay unique for the
	// lifetime of the store, not only among live tasks.
	issued map[string]struct{}
	seq    uint64

	subs    []subscriber
	nextSub int
}

// New returns an empty store with the "all" filter.
func New(opts ...Option) *Store {
	s := &Store{
		filter: FilterAll,
		ids:    NewCounterGenerator("t"),
		clock:  time.Now,
		issued: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.New("store")
	}
	return s
}

// AddTask trims raw and, when something is left, prepends a new open task
// and clears the draft. Blank input leaves the list and the draft untouched
// and returns false.
func (s *Store) AddTask(raw string) (Task, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		s.logger.Debug("ignoring blank task text")
		return Task{}, false
	}

	var added Task
	s.mutate(func() bool {
		added = Task{
			ID:        s.freshID(),
			Text:      text,
			CreatedAt: s.clock(),
		}
		s.tasks = slices.Insert(s.tasks, 0, added)
		s.draft = ""
		return true
	})

	s.logger.Debug("task added", "id", added.ID)
	return added, true
}

// ToggleTask flips the done flag of the task with the given id. It returns
// false when no such task exists.
func (s *Store) ToggleTask(id string) bool {
	changed := s.mutate(func() bool {
		i := s.indexOf(id)
		if i < 0 {
			return false
		}
		s.tasks[i].Done = !s.tasks[i].Done
		return true
	})
	if !changed {
		s.logger.Debug("ignoring toggle for unknown task", "id", id)
	}
	return changed
}

// DeleteTask removes the task with the given id. It returns false when no
// such task exists.
func (s *Store) DeleteTask(id string) bool {
	changed := s.mutate(func() bool {
		i := s.indexOf(id)
		if i < 0 {
			return false
		}
		s.tasks = slices.Delete(s.tasks, i, i+1)
		return true
	})
	if !changed {
		s.logger.Debug("ignoring delete for unknown task", "id", id)
	}
	return changed
}

// ClearCompleted removes every done task, keeping the relative order of the
// rest, and returns how many were removed.
func (s *Store) ClearCompleted() int {
	removed := 0
	s.mutate(func() bool {
		before := len(s.tasks)
		s.tasks = slices.DeleteFunc(s.tasks, func(t Task) bool { return t.Done })
		removed = before - len(s.tasks)
		return removed > 0
	})
	if removed > 0 {
		s.logger.Debug("cleared completed tasks", "count", removed)
	}
	return removed
}

// SetFilter replaces the active filter. Invalid filters are ignored and
// reported as false; setting the current filter again is a no-op that
// returns true.
func (s *Store) SetFilter(f Filter) bool {
	if !f.IsValid() {
		s.logger.Debug("ignoring invalid filter", "filter", string(f))
		return false
	}
	s.mutate(func() bool {
		if s.filter == f {
			return false
		}
		s.filter = f
		return true
	})
	return true
}

// Filter returns the active filter.
func (s *Store) Filter() Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// SetDraft replaces the text-entry buffer.
func (s *Store) SetDraft(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = text
}

// Draft returns the text-entry buffer.
func (s *Store) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Tasks returns a copy of the full task list, newest first.
func (s *Store) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tasks)
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// Len returns the number of tasks regardless of filter.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// DerivedView computes the filtered list and the counters from the current
// state.
func (s *Store) DerivedView() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

// Subscribe registers fn to receive the derived view after every change to
// the task list or the filter. Calls happen synchronously on the goroutine
// that made the change, after the store lock is released. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(View)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.subs = slices.DeleteFunc(s.subs, func(sub subscriber) bool { return sub.id == id })
	}
}

// mutate runs fn under the lock and notifies subscribers when fn reports a
// change.
func (s *Store) mutate(fn func() bool) bool {
	s.mu.Lock()
	changed := fn()
	if !changed {
		s.mu.Unlock()
		return false
	}
	v := s.view()
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		snapshot := v
		snapshot.Tasks = slices.Clone(v.Tasks)
		sub.fn(snapshot)
	}
	return true
}

// view builds the derived view. Callers must hold s.mu.
func (s *Store) view() View {
	v := View{
		Tasks:      make([]Task, 0, len(s.tasks)),
		Filter:     s.filter,
		TotalCount: len(s.tasks),
	}
	for _, t := range s.tasks {
		if t.Done {
			v.CompletedCount++
		} else {
			v.ActiveCount++
		}
		if s.filter.Matches(t) {
			v.Tasks = append(v.Tasks, t)
		}
	}
	v.Progress = Progress(v.CompletedCount, v.TotalCount)
	return v
}

// indexOf returns the position of id in s.tasks, or -1. Callers must hold
// s.mu.
func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.tasks, func(t Task) bool { return t.ID == id })
}

// freshID returns an id never issued before by this store. Callers must
// hold s.mu.
func (s *Store) freshID() string {
	var id string
	for range maxIDAttempts {
		id = s.ids.NextID()
		if _, seen := s.issued[id]; id != "" && !seen {
			s.issued[id] = struct{}{}
			return id
		}
	}

	s.logger.Warn("id generator keeps repeating; adding sequence suffix", "id", id)
	for {
		s.seq++
		candidate := id + "-" + strconv.FormatUint(s.seq, 10)
		if _, seen := s.issued[candidate]; !seen {
			s.issued[candidate] = struct{}{}
			return candidate
		}
	}
}

// Progress returns round(completed / total * 100), or 0 when total is 0.
func Progress(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) * 100 / float64(total)))
}

// Package todo owns the in-memory task list, its persistence snapshots, and
// the subscriber notification mechanism.
package todo

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"todotui/internal/model"
	"todotui/internal/storage"
)

// Persisted keys, namespaced by the storage layer.
const (
	itemsKey  = "items"
	nextIDKey = "nextId"
)

// List is the task model. It exclusively owns the task sequence: all mutation
// goes through its methods, each of which rewrites the full snapshot to
// storage and then notifies every subscriber synchronously, in registration
// order. Persistence failures are logged and swallowed; the in-memory state
// still advances. Not safe for concurrent use.
type List struct {
	kv     storage.KV
	logger *log.Logger
	now    func() time.Time

	defaultPriority model.Priority

	tasks     []model.Task
	nextID    int64
	subs      []subscriber
	nextSubID int
}

type subscriber struct {
	id int
	fn func()
}

// Subscription is the handle returned by Subscribe. Unsubscribe stops further
// delivery; unsubscribing twice is harmless.
type Subscription struct {
	list *List
	id   int
}

func (s Subscription) Unsubscribe() {
	if s.list == nil {
		return
	}
	for i, sub := range s.list.subs {
		if sub.id == s.id {
			s.list.subs = append(s.list.subs[:i], s.list.subs[i+1:]...)
			return
		}
	}
}

type Option func(*List)

func WithLogger(logger *log.Logger) Option {
	return func(l *List) { l.logger = logger }
}

// WithClock overrides the creation timestamp source. Tests use it to pin
// CreatedAt values.
func WithClock(now func() time.Time) Option {
	return func(l *List) { l.now = now }
}

func WithDefaultPriority(p model.Priority) Option {
	return func(l *List) {
		if p.IsValid() {
			l.defaultPriority = p
		}
	}
}

// NewList constructs a list backed by kv, loading any previously persisted
// snapshot. A missing or unreadable snapshot falls back to an empty list and
// a counter of 1.
func NewList(kv storage.KV, opts ...Option) *List {
	l := &List{
		kv:              kv,
		logger:          log.Default(),
		now:             time.Now,
		defaultPriority: model.PriorityMedium,
		nextID:          1,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.load()
	return l
}

func (l *List) load() {
	var tasks []model.Task
	if err := l.kv.Load(itemsKey, &tasks); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			l.logger.Error("load tasks failed, starting empty", "key", itemsKey, "err", err)
		}
		tasks = nil
	}
	l.tasks = tasks

	var next int64
	if err := l.kv.Load(nextIDKey, &next); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			l.logger.Error("load counter failed, deriving from tasks", "key", nextIDKey, "err", err)
		}
		next = 1
	}
	if next < 1 {
		next = 1
	}
	// The counter must stay strictly greater than every issued id, even when
	// the persisted counter is stale or missing.
	for _, t := range l.tasks {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	l.nextID = next
}

func (l *List) persist() {
	if err := l.kv.Save(itemsKey, l.tasks); err != nil {
		l.logger.Error("persist tasks failed", "key", itemsKey, "err", err)
	}
	if err := l.kv.Save(nextIDKey, l.nextID); err != nil {
		l.logger.Error("persist counter failed", "key", nextIDKey, "err", err)
	}
}

func (l *List) notify() {
	// Snapshot the registry so a callback that unsubscribes (or subscribes)
	// mid-cycle does not skip anyone in this cycle.
	subs := make([]subscriber, len(l.subs))
	copy(subs, l.subs)
	for _, s := range subs {
		l.run(s)
	}
}

func (l *List) run(s subscriber) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("subscriber panicked", "id", s.id, "panic", r)
		}
	}()
	s.fn()
}

// Subscribe registers fn to run after every successful mutation. Delivery is
// synchronous and in registration order; a panicking callback is recovered
// and logged without stopping later callbacks.
func (l *List) Subscribe(fn func()) Subscription {
	l.nextSubID++
	l.subs = append(l.subs, subscriber{id: l.nextSubID, fn: fn})
	return Subscription{list: l, id: l.nextSubID}
}

// Add appends a new task. Whitespace-only text is a no-op: no state change,
// no persistence, no notification. An invalid priority falls back to the
// list's default.
func (l *List) Add(text string, priority model.Priority) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return
	}
	if !priority.IsValid() {
		priority = l.defaultPriority
	}
	task := model.Task{
		ID:        l.nextID,
		Text:      trimmed,
		Priority:  priority,
		Order:     len(l.tasks),
		CreatedAt: l.now(),
	}
	l.nextID++
	l.tasks = append(l.tasks, task)
	l.persist()
	l.notify()
}

// Toggle flips the completed flag of the task with the given id. Unknown ids
// are a pure no-op: nothing is persisted and nobody is notified.
func (l *List) Toggle(id int64) {
	i := l.index(id)
	if i < 0 {
		return
	}
	l.tasks[i].Completed = !l.tasks[i].Completed
	l.persist()
	l.notify()
}

// Delete removes the task with the given id. Unknown ids are a pure no-op.
func (l *List) Delete(id int64) {
	i := l.index(id)
	if i < 0 {
		return
	}
	l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	l.reindex()
	l.persist()
	l.notify()
}

// Update replaces the task's text. A no-op when the id is unknown or the
// trimmed replacement is empty.
func (l *List) Update(id int64, newText string) {
	trimmed := strings.TrimSpace(newText)
	if trimmed == "" {
		return
	}
	i := l.index(id)
	if i < 0 {
		return
	}
	l.tasks[i].Text = trimmed
	l.persist()
	l.notify()
}

// Move reorders the task with the given id to position to (an index into the
// list). Unknown ids and out-of-range positions are a pure no-op. Order is
// re-derived from the resulting positions for every task.
func (l *List) Move(id int64, to int) {
	from := l.index(id)
	if from < 0 || to < 0 || to >= len(l.tasks) || from == to {
		return
	}
	task := l.tasks[from]
	l.tasks = append(l.tasks[:from], l.tasks[from+1:]...)
	rest := append([]model.Task{}, l.tasks[to:]...)
	l.tasks = append(append(l.tasks[:to:to], task), rest...)
	l.reindex()
	l.persist()
	l.notify()
}

// ClearCompleted removes every completed task. It always persists and
// notifies, even when nothing was removed.
func (l *List) ClearCompleted() {
	kept := l.tasks[:0]
	for _, t := range l.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	l.tasks = kept
	l.reindex()
	l.persist()
	l.notify()
}

// ClearAll empties the list. It always persists and notifies.
func (l *List) ClearAll() {
	l.tasks = nil
	l.persist()
	l.notify()
}

// Search returns tasks whose text contains query, case-insensitively, in
// list order. An empty query returns the full list. Pure read: never mutates
// or notifies.
func (l *List) Search(query string) []model.Task {
	if query == "" {
		return l.Tasks()
	}
	needle := strings.ToLower(query)
	var out []model.Task
	for _, t := range l.tasks {
		if strings.Contains(strings.ToLower(t.Text), needle) {
			out = append(out, t)
		}
	}
	return out
}

// Tasks returns a snapshot copy of the current task sequence.
func (l *List) Tasks() []model.Task {
	out := make([]model.Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Get returns the task with the given id, if present.
func (l *List) Get(id int64) (model.Task, bool) {
	i := l.index(id)
	if i < 0 {
		return model.Task{}, false
	}
	return l.tasks[i], true
}

func (l *List) Len() int { return len(l.tasks) }

// ActiveCount is recomputed on each call; no cached counters.
func (l *List) ActiveCount() int {
	n := 0
	for _, t := range l.tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

func (l *List) CompletedCount() int {
	n := 0
	for _, t := range l.tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

func (l *List) index(id int64) int {
	for i, t := range l.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (l *List) reindex() {
	for i := range l.tasks {
		l.tasks[i].Order = i
	}
}

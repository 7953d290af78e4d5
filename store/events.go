package store

import (
	log "github.com/sirupsen/logrus"
)

// EventKind identifies what changed.
type EventKind string

const (
	EventTaskAdded       EventKind = "taskAdded"
	EventTaskUpdated     EventKind = "taskUpdated"
	EventTaskDeleted     EventKind = "taskDeleted"
	EventTasksReplaced   EventKind = "tasksReplaced"
	EventSettingsUpdated EventKind = "settingsUpdated"
	EventTagsUpdated     EventKind = "tagsUpdated"
	EventCleared         EventKind = "cleared"
)

// Event describes one store mutation. Only the fields relevant to the
// kind are populated: Task for single-record events, Tasks for
// tasksReplaced, Settings for settingsUpdated, Tags for tagsUpdated.
type Event struct {
	Kind     EventKind
	Task     *Task
	Tasks    []Task
	Settings *Settings
	Tags     []string
}

// Subscriber receives store events. Subscribers run synchronously, in
// registration order, inside the call stack of the mutating method.
type Subscriber func(Event)

// Subscription is a registered subscriber handle.
type Subscription struct {
	store *Store
	fn    Subscriber
}

// Subscribe registers fn on the change feed and returns its handle.
func (s *Store) Subscribe(fn Subscriber) *Subscription {
	sub := &Subscription{store: s, fn: fn}
	s.mu.Lock()
	s.subs = append(s.subs, sub)
	s.mu.Unlock()
	return sub
}

// Unsubscribe removes the subscriber from the feed. Safe to call more
// than once.
func (sub *Subscription) Unsubscribe() {
	s := sub.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, candidate := range s.subs {
		if candidate == sub {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			break
		}
	}
}

// notify delivers ev to every subscriber in registration order. Each
// invocation is isolated: a panicking subscriber is logged and the rest
// still run, and store state is already consistent before delivery
// starts. Called without the store lock held so subscribers may read
// the store.
func (s *Store) notify(ev Event) {
	s.mu.RLock()
	subs := make([]*Subscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	for _, sub := range subs {
		invoke(sub.fn, ev)
	}
}

func invoke(fn Subscriber, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(log.Fields{"event": ev.Kind, "panic": r}).
				Warn("store subscriber panicked")
		}
	}()
	fn(ev)
}

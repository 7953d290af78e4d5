// Package store owns the authoritative in-memory task collection, the
// tag vocabulary, and the settings.
//
// # Overview
//
// One Store instance is constructed at process start and injected into
// every consumer; there are no package-level globals. Construction loads
// state once from the Persistence collaborator; afterwards every
// mutation writes through immediately (no batching) and then notifies
// the change feed.
//
// # Change feed
//
// Subscribers are held in an explicit ordered list and invoked
// synchronously, in registration order, inside the call stack of the
// mutating method. Each invocation is isolated: a panicking subscriber
// cannot stop later subscribers or corrupt store state.
//
//	sub := st.Subscribe(func(ev store.Event) {
//	    // react to ev.Kind
//	})
//	defer sub.Unsubscribe()
//
// # Concurrency
//
// The engine assumes one logical writer, but every method still
// serializes behind the store's mutex, so a multi-goroutine host gets
// the read-modify-write atomicity the operations need.
//
// # Derived views
//
// SortTasks and Stats never mutate the stored order; presentation order
// is always derived per call.
package store

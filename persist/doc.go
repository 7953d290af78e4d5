// Package persist provides the storage collaborators behind the task
// store.
//
// # Overview
//
// The store loads records, settings, and the tag vocabulary once at
// construction and writes each piece back after every mutation. Two
// implementations of store.Persistence live here:
//
//   - Memory: process-local blobs, for tests and ephemeral use
//   - Bolt: durable key-value blobs in a bbolt file
//
// # Fallback behavior
//
// Both implementations apply the same defaults on the read side: absent
// or corrupt settings yield store.DefaultSettings with missing keys
// filled in, an absent or corrupt tag list yields the default
// vocabulary, and absent records yield an empty collection. Startup
// therefore never fails on bad data.
package persist

// Package stores holds the client's process-wide state: the auth session and
// the event and investment caches. Screens read snapshots through State and
// change state only by calling store actions.
//
// Every store is safe for concurrent use. Overlapping calls to the same
// action are not serialized; instead each slice of state numbers its
// requests and applies only the response to the most recently issued one.
// Older responses are dropped and their callers get ErrStale.
package stores

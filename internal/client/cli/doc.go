// Package cli provides the interactive Insider terminal client.
//
// It wires configuration, the local session database, the REST client and the
// state stores, then runs a REPL that renders store state and invokes store
// actions. Typical flow: restore the saved session, sign in with a one-time
// code when there is none, finish the profile, then browse events and
// investments.
//
// Key commands:
//   - signup / login / logout (email + one-time code)
//   - complete-profile, profile, status, refresh
//   - home, events, event, attend, join
//   - investments, featured, investment, interest, categories
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli

// Package models mirrors the JSON documents exchanged with the Insider
// backend. Nullable fields are pointers; timestamps are kept as the
// ISO-8601 strings the backend sends and parsed only for display.
package models

// Package session provides the client-side session and academic-context
// store: a single source of truth for the bearer token, the user identity,
// and the selected academic year/term, persisted key-per-field behind a small
// key/value [Storage] interface.
//
// # Persistence layout
//
// Each durable field is written as one storage entry: a fixed namespace
// prefix, the field key, and a JSON-serialized value. Setting a field to its
// zero value deletes the entry. On construction the store loads every durable
// key and discards (with removal) any entry that fails to parse. Presence of
// the token entry is the signal other store instances watch for logout
// propagation.
//
// # Architecture boundaries
//
// This package owns the [Store], the [Storage] backends (in-memory and
// Redis), and the session model types. It does NOT perform network calls,
// sequence the academic bootstrap, or decide when a session is invalidated —
// those responsibilities belong to the orchestrating Client.
//
// # What this package must NOT do
//
//   - Import portalclient, secure, or transport (no upward imports).
//   - Validate tokens against the server.
package session

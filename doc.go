// Package portalclient is a Go client SDK for the Wildcat One student
// portal. It drives the portal's authenticated REST API end to end: payload
// encryption and request signing, CORS-relay indirection, persisted session
// state with academic context, and the login/restore/logout orchestration on
// top.
//
// # Architecture
//
// The root package exposes the orchestrator ([Client], constructed through
// [Builder]); the mechanics live in sub-packages:
//
//   - secure: AES-CBC payload codec and HMAC request signing.
//   - transport: one authenticated relay call, normalized into a uniform
//     result with typed transport errors.
//   - session: the persisted session store and its storage backends
//     (in-memory, Redis).
//
// # Session lifecycle
//
// Login validates credentials locally, authenticates against the portal,
// persists the token and identity, and bootstraps the academic context
// (student info, academic years, terms). RestoreSession rebuilds a usable
// session from persisted state without credentials. A 401 on any
// authenticated call invalidates the session exactly once and fires the
// configured callback. Logout resets everything and never fails.
//
// # What this package must NOT do
//
//   - Retry or throttle requests; every operation maps to one pass over the
//     network.
//   - Interpret the bearer token beyond a best-effort expiry peek; the token
//     is the server's opaque credential.
//   - Strengthen the embedded-secret protocol: the codec provides transit
//     integrity and origin tagging, not confidentiality against the client.
package portalclient

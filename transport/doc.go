// Package transport performs one authenticated portal call: it encrypts the
// request body, signs the request with a fresh nonce and salt, routes it
// through the CORS relay, enforces the timeout, and normalizes the outcome
// into a uniform [Result].
//
// # Outcome contract
//
// Any completed HTTP exchange — including 4xx/5xx with a parseable body —
// returns a [Result]; callers branch on Result.Success and Result.Status.
// A typed [*RequestError] is returned only when no exchange happened, either
// because the request could not be built (encode) or because it failed on
// the wire (network, timeout), and for an unparseable body on an otherwise
// OK response.
//
// # Unauthorized handling
//
// The client is the single choke point for auth failure: a 401 on any
// non-login call invokes the injected onUnauthorized hook as a side effect
// and still returns the 401 result to the caller. The hook is supplied by
// whoever wires the session orchestrator and this client together, which
// keeps this package free of upward imports.
//
// # What this package must NOT do
//
//   - Retry anything; callers decide whether to re-invoke.
//   - Interpret response payloads beyond decrypt/JSON normalization.
//   - Import portalclient or session (token access goes through the small
//     [TokenSource] interface).
package transport

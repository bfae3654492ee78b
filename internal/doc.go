// Package internal contains helper utilities that are intentionally private
// to portalclient, currently the per-request nonce generator.
//
// # What this package must NOT do
//
//   - Export types that appear in the public portalclient API.
//   - Be imported by any package outside the portalclient module.
package internal

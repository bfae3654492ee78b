// Package secure implements the portal wire protocol's payload encryption and
// request signing: AES-256-CBC with PKCS#7 padding for request/response
// bodies, and hex-encoded HMAC-SHA256 signatures over the canonical
// nonce:origin:method:salt:clientSecret string.
//
// # Key derivation
//
// The protocol derives the AES key as SHA-256 of a fixed pre-shared secret and
// the IV as the first 16 bytes of that same secret. Both are deterministic:
// the same secret always yields the same key and IV. This is a backend
// contract, not a choice this package is free to revisit.
//
// # Security boundary
//
// The secrets a [Codec] holds ship inside the client build. This layer
// therefore provides message integrity in transit and origin tagging against
// casual tampering — NOT confidentiality against anyone holding the client
// bundle. Real access control is the bearer token the server validates.
//
// # What this package must NOT do
//
//   - Invent stronger guarantees the backend does not support (authenticated
//     modes, random IVs, key rotation).
//   - Import any other portalclient package (leaf package, no upward imports).
package secure

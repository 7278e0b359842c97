// Package messages orchestrates the drop-and-unlock lifecycle: sealing
// plaintext into the store, and releasing wrapped-key material only after
// the attestation verification pipeline has passed.
package messages

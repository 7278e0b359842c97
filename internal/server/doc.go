// Package server exposes the drop service over HTTP and relays peer
// addresses over a WebSocket hub.
//
// The REST surface stores and releases sealed messages; it never sees a
// shared secret or a derived key, and the wrapped-key fields of a stored
// message are withheld from reads until an attestation passes verification.
// Request bodies are decoded into explicit, validated types before anything
// reaches the core.
package server

// Package store provides the concrete stores behind the domain interfaces:
// an in-memory sealed-message store with advisory TTL expiry, and an
// encrypted on-disk identity store.
package store

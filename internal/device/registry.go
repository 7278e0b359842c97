// Package device binds device identifiers to their signing keys.
//
// Attestations carry a self-declared public key, which only proves internal
// consistency. Registering a device's key ahead of time lets the unlock path
// check the declared key against a known identity.
package device

import (
	"errors"
	"sync"

	"geoseal/internal/domain"
)

// ErrKeyMismatch is returned when a device re-registers with a different
// key. First registration wins; rotation is an explicit removal first.
var ErrKeyMismatch = errors.New("device already registered with a different key")

// Registry is an in-memory deviceID to signing-key map.
type Registry struct {
	mu      sync.RWMutex
	devices map[domain.DeviceID]domain.Ed25519Public
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		devices: make(map[domain.DeviceID]domain.Ed25519Public),
	}
}

// Register binds id to key. Re-registering the same key is a no-op.
func (r *Registry) Register(id domain.DeviceID, key domain.Ed25519Public) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.devices[id]; ok {
		if existing != key {
			return ErrKeyMismatch
		}
		return nil
	}
	r.devices[id] = key
	return nil
}

// Lookup returns the registered key for id.
func (r *Registry) Lookup(id domain.DeviceID) (domain.Ed25519Public, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key, ok := r.devices[id]
	return key, ok
}

// Remove unbinds a device.
func (r *Registry) Remove(id domain.DeviceID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.devices, id)
}

// Count returns the number of registered devices.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.devices)
}

// Compile-time assertion that Registry implements domain.DeviceRegistry.
var _ domain.DeviceRegistry = (*Registry)(nil)

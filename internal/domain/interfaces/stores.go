package interfaces

import domaintypes "geoseal/internal/domain/types"

// IdentityStore persists your long-term identity keys.
type IdentityStore interface {
	SaveIdentity(passphrase string, id domaintypes.Identity) error
	LoadIdentity(passphrase string) (domaintypes.Identity, error)
}

// MessageStore keeps sealed messages keyed by an opaque identifier.
//
// Put must admit at most one winning writer per identifier. Expiry at the
// binding's window end is advisory: a Get racing a delete returns either the
// message or not-found, never partial data.
type MessageStore interface {
	Put(message domaintypes.SealedMessage) error
	Get(id domaintypes.MessageID) (domaintypes.SealedMessage, bool, error)
	Delete(id domaintypes.MessageID) error
	List() ([]domaintypes.SealedMessage, error)
}

// DeviceRegistry binds device identifiers to signing keys out of band, so
// an attestation's self-declared key can be checked against a registered
// identity before signature verification.
type DeviceRegistry interface {
	Register(id domaintypes.DeviceID, key domaintypes.Ed25519Public) error
	Lookup(id domaintypes.DeviceID) (domaintypes.Ed25519Public, bool)
}

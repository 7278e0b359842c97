package interfaces

import domaintypes "geoseal/internal/domain/types"

// IdentityService creates, retrieves, and inspects your identity keys.
type IdentityService interface {
	GenerateIdentity(passphrase string) (
		domaintypes.Identity,
		domaintypes.Fingerprint,
		error,
	)
	LoadIdentity(passphrase string) (domaintypes.Identity, error)
	FingerprintIdentity(passphrase string) (domaintypes.Fingerprint, error)
}

// MessageService seals, stores, and conditionally releases messages.
type MessageService interface {
	Drop(
		plaintext []byte,
		secret domaintypes.SharedSecret,
		binding domaintypes.LocationBinding,
		sender domaintypes.X25519Public,
		recipient domaintypes.X25519Public,
	) (domaintypes.SealedMessage, error)
	Store(message domaintypes.SealedMessage) (domaintypes.MessageID, error)
	Fetch(id domaintypes.MessageID) (domaintypes.SealedMessage, bool, error)
	Unlock(
		id domaintypes.MessageID,
		attestation domaintypes.LocationAttestation,
	) (domaintypes.UnlockResponse, error)
	Delete(id domaintypes.MessageID) error
	List() ([]domaintypes.SealedMessage, error)
}

package messages

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"geoseal/internal/attestation"
	"geoseal/internal/domain"
	"geoseal/internal/protocol/seal"
)

var (
	// ErrNotFound indicates the message does not exist or has expired.
	ErrNotFound = errors.New("message not found")

	// ErrInvalidBinding is returned when a binding fails validation before
	// anything reaches the crypto layer.
	ErrInvalidBinding = errors.New("invalid location binding")
)

// Service seals messages into the store and gates their release on the
// verification pipeline. It holds no key material: on a valid attestation it
// releases only the wrapped-key fields, which are useless without the shared
// secret.
type Service struct {
	store     domain.MessageStore
	devices   domain.DeviceRegistry
	verifyCfg attestation.Config
}

// New constructs a message service. devices may be nil, in which case
// attestation keys are trusted as declared.
func New(store domain.MessageStore, devices domain.DeviceRegistry, verifyCfg attestation.Config) *Service {
	return &Service{
		store:     store,
		devices:   devices,
		verifyCfg: verifyCfg,
	}
}

// Drop seals plaintext under the binding and stores the result under a
// fresh identifier.
func (s *Service) Drop(
	plaintext []byte,
	secret domain.SharedSecret,
	binding domain.LocationBinding,
	sender domain.X25519Public,
	recipient domain.X25519Public,
) (domain.SealedMessage, error) {
	if err := validateBinding(binding); err != nil {
		return domain.SealedMessage{}, err
	}

	message, err := seal.Seal(plaintext, secret, binding, sender, recipient)
	if err != nil {
		return domain.SealedMessage{}, err
	}
	message.ID = domain.MessageID(uuid.NewString())
	message.CreatedUTC = time.Now().Unix()

	if err := s.store.Put(message); err != nil {
		return domain.SealedMessage{}, err
	}
	return message, nil
}

// Store admits an already-sealed message arriving over the wire. The shared
// secret never crosses that boundary, so sealing happened on the sender's
// side; only the binding is validated here.
func (s *Service) Store(message domain.SealedMessage) (domain.MessageID, error) {
	if err := validateBinding(message.Binding); err != nil {
		return "", err
	}
	// The server owns the identifier space regardless of what the client sent.
	message.ID = domain.MessageID(uuid.NewString())
	if message.CreatedUTC == 0 {
		message.CreatedUTC = time.Now().Unix()
	}
	if err := s.store.Put(message); err != nil {
		return "", err
	}
	return message.ID, nil
}

// Fetch returns a stored message. The wrapped-key fields are part of the
// stored record; stripping them for untrusted readers is the transport
// handler's concern.
func (s *Service) Fetch(id domain.MessageID) (domain.SealedMessage, bool, error) {
	return s.store.Get(id)
}

// Unlock runs the verification pipeline for one attestation against one
// message and, only on a valid outcome, releases the wrapped-key fields.
func (s *Service) Unlock(
	id domain.MessageID,
	att domain.LocationAttestation,
) (domain.UnlockResponse, error) {
	message, ok, err := s.store.Get(id)
	if err != nil {
		return domain.UnlockResponse{}, err
	}
	if !ok {
		return domain.UnlockResponse{}, ErrNotFound
	}

	// When the device is registered, the attestation's self-declared key
	// must match the registered one; otherwise the signature proves nothing
	// about the device identity.
	if s.devices != nil {
		if registered, known := s.devices.Lookup(att.DeviceID); known && registered != att.DevicePublicKey {
			return denial(domain.VerificationResult{Reason: domain.ReasonInvalidSignature}), nil
		}
	}

	result := attestation.Verify(att, message.Binding, s.verifyCfg)
	if !result.Valid {
		return denial(result), nil
	}

	return domain.UnlockResponse{
		Valid:            true,
		DistanceM:        result.DistanceM,
		DistanceComputed: result.DistanceComputed,
		WrappedKey:       message.WrappedKey,
		WrapNonce:        message.WrapNonce,
		WrapTag:          message.WrapTag,
	}, nil
}

// Delete removes a stored message.
func (s *Service) Delete(id domain.MessageID) error {
	return s.store.Delete(id)
}

// List returns all unexpired messages.
func (s *Service) List() ([]domain.SealedMessage, error) {
	return s.store.List()
}

func denial(result domain.VerificationResult) domain.UnlockResponse {
	return domain.UnlockResponse{
		Reason:           result.Reason,
		DistanceM:        result.DistanceM,
		DistanceComputed: result.DistanceComputed,
	}
}

func validateBinding(b domain.LocationBinding) error {
	switch {
	case b.RadiusM <= 0:
		return fmt.Errorf("%w: radius must be positive", ErrInvalidBinding)
	case b.WindowStart > b.WindowEnd:
		return fmt.Errorf("%w: window start after window end", ErrInvalidBinding)
	case b.Latitude < -90 || b.Latitude > 90:
		return fmt.Errorf("%w: latitude out of range", ErrInvalidBinding)
	case b.Longitude < -180 || b.Longitude > 180:
		return fmt.Errorf("%w: longitude out of range", ErrInvalidBinding)
	case len(b.Nonce) == 0:
		return fmt.Errorf("%w: nonce required", ErrInvalidBinding)
	}
	return nil
}

// Compile-time assertion that Service implements domain.MessageService.
var _ domain.MessageService = (*Service)(nil)

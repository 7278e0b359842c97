package server

import (
	"github.com/go-playground/validator/v10"

	"geoseal/internal/domain"
)

var validate = validator.New()

// bindingRequest is the wire form of a location binding. Byte fields arrive
// base64-encoded per encoding/json convention.
type bindingRequest struct {
	Latitude    float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude   float64 `json:"longitude" validate:"gte=-180,lte=180"`
	RadiusM     float64 `json:"radius_m" validate:"gt=0"`
	WindowStart int64   `json:"window_start" validate:"gte=0"`
	WindowEnd   int64   `json:"window_end" validate:"gtefield=WindowStart"`
	Nonce       []byte  `json:"nonce" validate:"required,min=8"`
}

func (r bindingRequest) toDomain() domain.LocationBinding {
	return domain.LocationBinding{
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		RadiusM:     r.RadiusM,
		WindowStart: r.WindowStart,
		WindowEnd:   r.WindowEnd,
		Nonce:       r.Nonce,
	}
}

// storeMessageRequest carries an already-sealed message. Sealing happens on
// the sender's device; the server only validates shape and stores.
type storeMessageRequest struct {
	ContentCiphertext []byte `json:"content_ciphertext" validate:"required"`
	ContentNonce      []byte `json:"content_nonce" validate:"len=12"`
	ContentTag        []byte `json:"content_tag" validate:"len=16"`

	WrappedKey []byte `json:"wrapped_key" validate:"required"`
	WrapNonce  []byte `json:"wrap_nonce" validate:"len=12"`
	WrapTag    []byte `json:"wrap_tag" validate:"len=16"`

	Binding      bindingRequest `json:"binding" validate:"required"`
	SenderKey    []byte         `json:"sender_key" validate:"len=32"`
	RecipientKey []byte         `json:"recipient_key" validate:"len=32"`

	Metadata map[string]string `json:"metadata,omitempty"`
}

func (r storeMessageRequest) toDomain() domain.SealedMessage {
	var message domain.SealedMessage
	message.ContentCiphertext = r.ContentCiphertext
	message.ContentNonce = r.ContentNonce
	message.ContentTag = r.ContentTag
	message.WrappedKey = r.WrappedKey
	message.WrapNonce = r.WrapNonce
	message.WrapTag = r.WrapTag
	message.Binding = r.Binding.toDomain()
	copy(message.SenderKey[:], r.SenderKey)
	copy(message.RecipientKey[:], r.RecipientKey)
	message.Metadata = r.Metadata
	return message
}

// movementSampleRequest is one position fix in an unlock attempt's history.
type movementSampleRequest struct {
	Latitude    float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude   float64 `json:"longitude" validate:"gte=-180,lte=180"`
	TimestampMs int64   `json:"timestamp_ms" validate:"gte=0"`
}

// unlockRequest carries a signed location attestation for one message.
type unlockRequest struct {
	DeviceID        string                  `json:"device_id" validate:"required"`
	DevicePublicKey []byte                  `json:"device_public_key" validate:"len=32"`
	Latitude        float64                 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude       float64                 `json:"longitude" validate:"gte=-180,lte=180"`
	AccuracyM       float64                 `json:"accuracy_m" validate:"gte=0"`
	TimestampMs     int64                   `json:"timestamp_ms" validate:"gt=0"`
	MovementHistory []movementSampleRequest `json:"movement_history,omitempty" validate:"dive"`
	Signature       []byte                  `json:"signature" validate:"len=64"`
}

func (r unlockRequest) toDomain() domain.LocationAttestation {
	att := domain.LocationAttestation{
		DeviceID:    domain.DeviceID(r.DeviceID),
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		AccuracyM:   r.AccuracyM,
		TimestampMs: r.TimestampMs,
		Signature:   r.Signature,
	}
	copy(att.DevicePublicKey[:], r.DevicePublicKey)
	for _, s := range r.MovementHistory {
		att.MovementHistory = append(att.MovementHistory, domain.MovementSample{
			Latitude:    s.Latitude,
			Longitude:   s.Longitude,
			TimestampMs: s.TimestampMs,
		})
	}
	return att
}

// registerDeviceRequest binds a device identifier to its signing key.
type registerDeviceRequest struct {
	DeviceID  string `json:"device_id" validate:"required"`
	PublicKey []byte `json:"public_key" validate:"len=32"`
}

// storedMessageResponse is the read form of a stored message. The wrapped-key
// fields are deliberately absent: release goes through the unlock endpoint
// only.
type storedMessageResponse struct {
	ID                string            `json:"id"`
	ContentCiphertext []byte            `json:"content_ciphertext"`
	ContentNonce      []byte            `json:"content_nonce"`
	ContentTag        []byte            `json:"content_tag"`
	Binding           bindingRequest    `json:"binding"`
	SenderKey         []byte            `json:"sender_key"`
	RecipientKey      []byte            `json:"recipient_key"`
	CreatedUTC        int64             `json:"created_utc"`
	Metadata          map[string]string `json:"metadata,omitempty"`
}

func toStoredResponse(m domain.SealedMessage) storedMessageResponse {
	return storedMessageResponse{
		ID:                string(m.ID),
		ContentCiphertext: m.ContentCiphertext,
		ContentNonce:      m.ContentNonce,
		ContentTag:        m.ContentTag,
		Binding: bindingRequest{
			Latitude:    m.Binding.Latitude,
			Longitude:   m.Binding.Longitude,
			RadiusM:     m.Binding.RadiusM,
			WindowStart: m.Binding.WindowStart,
			WindowEnd:   m.Binding.WindowEnd,
			Nonce:       m.Binding.Nonce,
		},
		SenderKey:    m.SenderKey.Slice(),
		RecipientKey: m.RecipientKey.Slice(),
		CreatedUTC:   m.CreatedUTC,
		Metadata:     m.Metadata,
	}
}

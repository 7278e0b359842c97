package client

import "geoseal/internal/domain"

// Wire forms mirror the server's request and response shapes: byte fields
// travel base64-encoded, keys as plain byte strings rather than fixed
// arrays.

type wireBinding struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	RadiusM     float64 `json:"radius_m"`
	WindowStart int64   `json:"window_start"`
	WindowEnd   int64   `json:"window_end"`
	Nonce       []byte  `json:"nonce"`
}

func (b wireBinding) toDomain() domain.LocationBinding {
	return domain.LocationBinding{
		Latitude:    b.Latitude,
		Longitude:   b.Longitude,
		RadiusM:     b.RadiusM,
		WindowStart: b.WindowStart,
		WindowEnd:   b.WindowEnd,
		Nonce:       b.Nonce,
	}
}

func toWireBinding(b domain.LocationBinding) wireBinding {
	return wireBinding{
		Latitude:    b.Latitude,
		Longitude:   b.Longitude,
		RadiusM:     b.RadiusM,
		WindowStart: b.WindowStart,
		WindowEnd:   b.WindowEnd,
		Nonce:       b.Nonce,
	}
}

type sealedMessage struct {
	ContentCiphertext []byte `json:"content_ciphertext"`
	ContentNonce      []byte `json:"content_nonce"`
	ContentTag        []byte `json:"content_tag"`

	WrappedKey []byte `json:"wrapped_key"`
	WrapNonce  []byte `json:"wrap_nonce"`
	WrapTag    []byte `json:"wrap_tag"`

	Binding      wireBinding `json:"binding"`
	SenderKey    []byte      `json:"sender_key"`
	RecipientKey []byte      `json:"recipient_key"`

	Metadata map[string]string `json:"metadata,omitempty"`
}

func wireMessage(m domain.SealedMessage) sealedMessage {
	return sealedMessage{
		ContentCiphertext: m.ContentCiphertext,
		ContentNonce:      m.ContentNonce,
		ContentTag:        m.ContentTag,
		WrappedKey:        m.WrappedKey,
		WrapNonce:         m.WrapNonce,
		WrapTag:           m.WrapTag,
		Binding:           toWireBinding(m.Binding),
		SenderKey:         m.SenderKey.Slice(),
		RecipientKey:      m.RecipientKey.Slice(),
		Metadata:          m.Metadata,
	}
}

// storedMessage is the read form a server returns: no wrapped-key fields.
type storedMessage struct {
	ID                string `json:"id"`
	ContentCiphertext []byte `json:"content_ciphertext"`
	ContentNonce      []byte `json:"content_nonce"`
	ContentTag        []byte `json:"content_tag"`

	Binding      wireBinding `json:"binding"`
	SenderKey    []byte      `json:"sender_key"`
	RecipientKey []byte      `json:"recipient_key"`

	CreatedUTC int64             `json:"created_utc"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

func (m storedMessage) toDomain() domain.SealedMessage {
	var out domain.SealedMessage
	out.ID = domain.MessageID(m.ID)
	out.ContentCiphertext = m.ContentCiphertext
	out.ContentNonce = m.ContentNonce
	out.ContentTag = m.ContentTag
	out.Binding = m.Binding.toDomain()
	copy(out.SenderKey[:], m.SenderKey)
	copy(out.RecipientKey[:], m.RecipientKey)
	out.CreatedUTC = m.CreatedUTC
	out.Metadata = m.Metadata
	return out
}

type wireSample struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	TimestampMs int64   `json:"timestamp_ms"`
}

type wireAttestationBody struct {
	DeviceID        string       `json:"device_id"`
	DevicePublicKey []byte       `json:"device_public_key"`
	Latitude        float64      `json:"latitude"`
	Longitude       float64      `json:"longitude"`
	AccuracyM       float64      `json:"accuracy_m"`
	TimestampMs     int64        `json:"timestamp_ms"`
	MovementHistory []wireSample `json:"movement_history,omitempty"`
	Signature       []byte       `json:"signature"`
}

func wireAttestation(att domain.LocationAttestation) wireAttestationBody {
	body := wireAttestationBody{
		DeviceID:        att.DeviceID.String(),
		DevicePublicKey: att.DevicePublicKey.Slice(),
		Latitude:        att.Latitude,
		Longitude:       att.Longitude,
		AccuracyM:       att.AccuracyM,
		TimestampMs:     att.TimestampMs,
		Signature:       att.Signature,
	}
	for _, s := range att.MovementHistory {
		body.MovementHistory = append(body.MovementHistory, wireSample{
			Latitude:    s.Latitude,
			Longitude:   s.Longitude,
			TimestampMs: s.TimestampMs,
		})
	}
	return body
}

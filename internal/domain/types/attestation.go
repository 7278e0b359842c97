package types

// MovementSample is one position fix in an attestation's movement history.
type MovementSample struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	TimestampMs int64   `json:"timestamp_ms"`
}

// LocationAttestation is a signed claim that a device was at a coordinate
// at a point in time. It is created fresh per unlock attempt and consumed
// once by the verification pipeline; it is never persisted.
//
// The signature covers the canonical payload, which includes a SHA-256
// commitment of the full movement history, so the history cannot be swapped
// after signing.
type LocationAttestation struct {
	DeviceID        DeviceID         `json:"device_id"`
	DevicePublicKey Ed25519Public    `json:"device_public_key"`
	Latitude        float64          `json:"latitude"`
	Longitude       float64          `json:"longitude"`
	AccuracyM       float64          `json:"accuracy_m"`
	TimestampMs     int64            `json:"timestamp_ms"`
	MovementHistory []MovementSample `json:"movement_history,omitempty"`
	Signature       []byte           `json:"signature"`
}

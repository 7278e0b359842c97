package attestation

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"geoseal/internal/crypto"
	"geoseal/internal/domain"
	"geoseal/internal/protocol/geokey"
)

// Create builds and signs an attestation for the given position fix.
// The timestamp is epoch milliseconds; history may be nil.
func Create(
	deviceID domain.DeviceID,
	devicePub domain.Ed25519Public,
	devicePriv domain.Ed25519Private,
	latitude, longitude, accuracyM float64,
	timestampMs int64,
	history []domain.MovementSample,
) domain.LocationAttestation {
	att := domain.LocationAttestation{
		DeviceID:        deviceID,
		DevicePublicKey: devicePub,
		Latitude:        latitude,
		Longitude:       longitude,
		AccuracyM:       accuracyM,
		TimestampMs:     timestampMs,
		MovementHistory: history,
	}
	att.Signature = crypto.SignEd25519(devicePriv, canonicalPayload(att))
	return att
}

// VerifySignature recomputes the canonical payload and checks the signature
// against the attestation's declared public key. This proves the claim is
// internally consistent, not that the key belongs to the named device.
func VerifySignature(att domain.LocationAttestation) bool {
	return crypto.VerifyEd25519(att.DevicePublicKey, canonicalPayload(att), att.Signature)
}

// canonicalPayload is the deterministic byte string the device signs.
// Coordinates enter as fixed 6-decimal strings, matching the key-derivation
// encoding, and the movement history is folded in as a SHA-256 commitment.
func canonicalPayload(att domain.LocationAttestation) []byte {
	payload := make([]byte, 0, 160)
	payload = append(payload, "device="...)
	payload = append(payload, att.DeviceID...)
	payload = append(payload, "|lat="...)
	payload = append(payload, geokey.FormatCoordinate(att.Latitude, geokey.DefaultCoordinatePrecision)...)
	payload = append(payload, "|lon="...)
	payload = append(payload, geokey.FormatCoordinate(att.Longitude, geokey.DefaultCoordinatePrecision)...)
	payload = append(payload, "|accuracy="...)
	payload = strconv.AppendFloat(payload, att.AccuracyM, 'f', -1, 64)
	payload = append(payload, "|ts="...)
	payload = strconv.AppendInt(payload, att.TimestampMs, 10)
	payload = append(payload, "|history="...)
	payload = append(payload, historyDigest(att.MovementHistory)...)
	return payload
}

// historyDigest commits to the ordered movement history. An empty history
// hashes to a fixed value, so present-vs-absent is also covered.
func historyDigest(history []domain.MovementSample) string {
	h := sha256.New()
	for _, s := range history {
		h.Write([]byte(geokey.FormatCoordinate(s.Latitude, geokey.DefaultCoordinatePrecision)))
		h.Write([]byte{','})
		h.Write([]byte(geokey.FormatCoordinate(s.Longitude, geokey.DefaultCoordinatePrecision)))
		h.Write([]byte{','})
		h.Write([]byte(strconv.FormatInt(s.TimestampMs, 10)))
		h.Write([]byte{';'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

package geokey

import (
	"strconv"

	"geoseal/internal/domain"
	"geoseal/internal/util/memzero"
)

// locationKeySalt is the versioned domain-separation salt for the extract
// step. Bump the version suffix if the canonical encoding ever changes.
const locationKeySalt = "geoseal/v1/location-key"

// DefaultCoordinatePrecision is the number of decimal places coordinates are
// rounded to before entering the key derivation. Roughly 0.11 m of grid at
// the equator.
const DefaultCoordinatePrecision = 6

// DeriveKey derives the 32-byte location-bound key for a binding using the
// default coordinate precision. The derivation is pure and deterministic;
// the result must never be stored.
func DeriveKey(secret domain.SharedSecret, binding domain.LocationBinding) (domain.LocationKey, error) {
	return DeriveKeyAt(secret, binding, DefaultCoordinatePrecision)
}

// DeriveKeyAt is DeriveKey with an explicit coordinate precision. Both sides
// of an exchange must use the same precision or their keys will not match.
func DeriveKeyAt(secret domain.SharedSecret, binding domain.LocationBinding, precision int) (domain.LocationKey, error) {
	var key domain.LocationKey

	prk := Extract([]byte(locationKeySalt), secret.Slice())
	okm, err := Expand(prk, bindingInfo(binding, precision), len(key))
	memzero.Zero(prk)
	if err != nil {
		return key, err
	}
	copy(key[:], okm)
	memzero.Zero(okm)
	return key, nil
}

// bindingInfo builds the canonical, order-stable info encoding of a binding.
// The nonce goes last as raw bytes so no field can masquerade as another.
func bindingInfo(b domain.LocationBinding, precision int) []byte {
	info := make([]byte, 0, 96+len(b.Nonce))
	info = append(info, "lat="...)
	info = append(info, FormatCoordinate(b.Latitude, precision)...)
	info = append(info, "|lon="...)
	info = append(info, FormatCoordinate(b.Longitude, precision)...)
	info = append(info, "|radius="...)
	info = strconv.AppendFloat(info, b.RadiusM, 'f', -1, 64)
	info = append(info, "|from="...)
	info = strconv.AppendInt(info, b.WindowStart, 10)
	info = append(info, "|to="...)
	info = strconv.AppendInt(info, b.WindowEnd, 10)
	info = append(info, "|nonce="...)
	info = append(info, b.Nonce...)
	return info
}

// FormatCoordinate renders a coordinate as a fixed-precision decimal string.
// This is the only representation of coordinates that ever enters a key
// derivation or a signed payload.
func FormatCoordinate(v float64, precision int) string {
	return strconv.FormatFloat(v, 'f', precision, 64)
}

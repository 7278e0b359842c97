// Package geokey derives symmetric keys bound to a geofence and time window.
//
// # Overview
//
// A location-bound key is derived with HKDF-SHA256 (RFC 5869) from a
// Diffie–Hellman shared secret and a LocationBinding. The binding is folded
// into the expand step's info parameter as a canonical, order-stable
// encoding, so two parties holding the same secret and the same binding
// always derive the same 32-byte key, and any single differing field yields
// an unrelated key.
//
// # Canonical encoding
//
// Coordinates enter the encoding as fixed-precision decimal strings
// (6 decimal places by default). The rounding is a deliberate fuzz factor:
// both sides quantise to the same grid, so sub-precision GPS jitter does not
// change the key. The precision is a parameter of DeriveKeyAt rather than a
// hidden constant.
//
// # Errors
//
// Expand fails when more than 255 hash-lengths of output are requested,
// which is a programming error at call sites, never a recoverable state.
package geokey

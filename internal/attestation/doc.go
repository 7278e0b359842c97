// Package attestation models signed presence claims and verifies them.
//
// # Overview
//
// A LocationAttestation is a device's signed claim of being at a coordinate
// at a point in time, optionally backed by a short movement history. The
// Verify pipeline runs a fixed-order series of checks over one attestation
// and a target binding, short-circuiting at the first failure:
//
//  1. Signature
//  2. Freshness (future timestamps rejected too)
//  3. Time window
//  4. Geofence (Haversine distance, inclusive radius)
//  5. Movement plausibility (speed ceiling over consecutive samples)
//  6. Continuous presence (optional, longest unbroken in-fence run)
//
// The order matters: the cheap, security-critical checks run first, and the
// measured distance is only attached to outcomes at or after the geofence
// stage, so a forged attestation cannot probe distances.
//
// # Signed payload
//
// The canonical payload covers device ID, fixed-precision coordinates,
// accuracy, timestamp, and a SHA-256 commitment of the full movement
// history. Binding the history into the signature stops an attacker from
// replaying a genuine claim with a fabricated track.
//
// Signature verification uses the attestation's own declared public key and
// therefore proves internal consistency only. Binding that key to a known
// device identity is the caller's job; see the device registry.
package attestation

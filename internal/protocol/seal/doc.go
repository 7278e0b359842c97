// Package seal wraps plaintext for location-locked delivery.
//
// # Flows
//
// Seal:
//  1. Generate a random 32-byte content key.
//  2. AEAD-encrypt the plaintext under the content key.
//  3. Derive the location-bound key from {shared secret, binding}.
//  4. AEAD-wrap the content key under the location-bound key.
//
// Unseal reverses the two stages. A failure at either stage surfaces as the
// same generic authentication error: a recipient at the wrong place, with
// the wrong secret, or holding tampered ciphertext learns nothing beyond
// "it did not open", and no partial plaintext is ever exposed.
package seal

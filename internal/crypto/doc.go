// Package crypto exposes the minimal primitives used by geoseal.
//
// Contents
//
//   - X25519 key generation, clamping and Diffie–Hellman (GenerateX25519,
//     DeriveSharedSecret)
//   - Ed25519 key generation, signing and verification (GenerateEd25519,
//     SignEd25519, VerifyEd25519)
//   - AES-256-GCM authenticated encryption with a fresh random 96-bit nonce
//     per call (AEADEncrypt, AEADDecrypt)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// All key material uses fixed-size array types defined in internal/domain to
// avoid accidental reallocations. Callers should treat returned secrets as
// sensitive and rely on memzero.Zero when practical to reduce lifetime in
// memory.
//
// AEADDecrypt reports every failure as ErrAuthentication with no further
// detail: a wrong key and tampered data are indistinguishable to callers.
package crypto

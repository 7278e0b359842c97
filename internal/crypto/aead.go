package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
)

const (
	// KeyBytes is the AES-256 key size.
	KeyBytes = 32
	// NonceBytes is the AES-GCM nonce size.
	NonceBytes = 12
	// TagBytes is the AES-GCM authentication tag size.
	TagBytes = 16
)

var (
	// ErrAuthentication is returned whenever decryption fails. It carries no
	// detail: a wrong key and a tampered ciphertext look identical.
	ErrAuthentication = errors.New("message authentication failed")

	// ErrInvalidKeySize is returned when the AEAD key is not 32 bytes.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidNonceSize is returned when the nonce is not 12 bytes.
	ErrInvalidNonceSize = errors.New("invalid nonce size")

	// ErrInvalidTagSize is returned when the tag is not 16 bytes.
	ErrInvalidTagSize = errors.New("invalid tag size")
)

// AEADEncrypt encrypts plaintext with AES-256-GCM under key, generating a
// fresh random 96-bit nonce. The tag is returned separately from the
// ciphertext. Nonce uniqueness per key is a hard invariant of the scheme;
// drawing nonces from crypto/rand keeps it without cross-worker coordination.
func AEADEncrypt(key, plaintext []byte) (ciphertext, nonce, tag []byte, err error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, nil, nil, err
	}
	nonce = make([]byte, NonceBytes)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, nil, err
	}
	sealed := aead.Seal(nil, nonce, plaintext, nil)
	split := len(sealed) - TagBytes
	return sealed[:split], nonce, sealed[split:], nil
}

// AEADDecrypt reverses AEADEncrypt. Any tag mismatch yields ErrAuthentication.
func AEADDecrypt(key, ciphertext, nonce, tag []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != NonceBytes {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidNonceSize, len(nonce), NonceBytes)
	}
	if len(tag) != TagBytes {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidTagSize, len(tag), TagBytes)
	}
	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrAuthentication
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeyBytes {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), KeyBytes)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

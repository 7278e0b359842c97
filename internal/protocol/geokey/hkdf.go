package geokey

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
)

// ErrOutputTooLong is returned when Expand is asked for more than
// 255 * sha256.Size bytes of output key material.
var ErrOutputTooLong = errors.New("hkdf: requested output exceeds 255 blocks")

// Extract computes the HKDF extract step: HMAC-SHA256(salt, ikm).
// A nil salt is replaced by a string of hash-length zero bytes per RFC 5869.
func Extract(salt, ikm []byte) []byte {
	if salt == nil {
		salt = make([]byte, sha256.Size)
	}
	return hmacSum(salt, ikm)
}

// Expand computes the HKDF expand step, iterating
// T(i) = HMAC-SHA256(prk, T(i-1) || info || byte(i)) and truncating the
// concatenation to length bytes.
func Expand(prk, info []byte, length int) ([]byte, error) {
	if length > 255*sha256.Size {
		return nil, ErrOutputTooLong
	}
	var (
		t   []byte
		okm []byte
		cnt byte = 1
	)
	for len(okm) < length {
		h := hmac.New(sha256.New, prk)
		h.Write(t)
		h.Write(info)
		h.Write([]byte{cnt})
		t = h.Sum(nil)
		okm = append(okm, t...)
		cnt++
	}
	return okm[:length], nil
}

func hmacSum(key, data []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(data)
	return h.Sum(nil)
}

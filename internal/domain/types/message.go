package types

// SealedMessage is the stored form of a location-locked message.
//
// The payload is encrypted under a random content key; the content key is
// wrapped under the location-bound key derived from {SharedSecret, Binding}.
// Neither the shared secret nor any derived key appears here.
type SealedMessage struct {
	ID MessageID `json:"id"`

	ContentCiphertext []byte `json:"content_ciphertext"`
	ContentNonce      []byte `json:"content_nonce"`
	ContentTag        []byte `json:"content_tag"`

	WrappedKey []byte `json:"wrapped_key"`
	WrapNonce  []byte `json:"wrap_nonce"`
	WrapTag    []byte `json:"wrap_tag"`

	Binding      LocationBinding `json:"binding"`
	SenderKey    X25519Public    `json:"sender_key"`
	RecipientKey X25519Public    `json:"recipient_key"`

	CreatedUTC int64             `json:"created_utc"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// UnlockGrant is what the server releases after a valid attestation: the
// wrapped-key fields needed for local unwrap, plus the measured distance.
type UnlockGrant struct {
	WrappedKey []byte  `json:"wrapped_key"`
	WrapNonce  []byte  `json:"wrap_nonce"`
	WrapTag    []byte  `json:"wrap_tag"`
	DistanceM  float64 `json:"distance_m"`
}

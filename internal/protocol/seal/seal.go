package seal

import (
	"crypto/rand"

	"geoseal/internal/crypto"
	"geoseal/internal/domain"
	"geoseal/internal/protocol/geokey"
	"geoseal/internal/util/memzero"
)

// Seal encrypts plaintext into a SealedMessage bound to the given binding.
// The caller assigns the message ID and metadata afterwards.
func Seal(
	plaintext []byte,
	secret domain.SharedSecret,
	binding domain.LocationBinding,
	sender domain.X25519Public,
	recipient domain.X25519Public,
) (domain.SealedMessage, error) {
	contentKey := make([]byte, crypto.KeyBytes)
	if _, err := rand.Read(contentKey); err != nil {
		return domain.SealedMessage{}, err
	}
	defer memzero.Zero(contentKey)

	contentCiphertext, contentNonce, contentTag, err := crypto.AEADEncrypt(contentKey, plaintext)
	if err != nil {
		return domain.SealedMessage{}, err
	}

	locationKey, err := geokey.DeriveKey(secret, binding)
	if err != nil {
		return domain.SealedMessage{}, err
	}
	wrappedKey, wrapNonce, wrapTag, err := crypto.AEADEncrypt(locationKey.Slice(), contentKey)
	if err != nil {
		return domain.SealedMessage{}, err
	}

	return domain.SealedMessage{
		ContentCiphertext: contentCiphertext,
		ContentNonce:      contentNonce,
		ContentTag:        contentTag,
		WrappedKey:        wrappedKey,
		WrapNonce:         wrapNonce,
		WrapTag:           wrapTag,
		Binding:           binding,
		SenderKey:         sender,
		RecipientKey:      recipient,
	}, nil
}

// Unseal re-derives the location-bound key from the message's own binding
// and reverses both stages. Any mismatch in the secret or binding fields
// surfaces as crypto.ErrAuthentication at the unwrap stage; this is the
// mechanism by which wrong-location attempts fail.
func Unseal(message domain.SealedMessage, secret domain.SharedSecret) ([]byte, error) {
	locationKey, err := geokey.DeriveKey(secret, message.Binding)
	if err != nil {
		return nil, err
	}
	return unsealWith(message, locationKey)
}

// UnsealGrant opens a message whose wrapped-key fields were released by a
// server after attestation verification. The content fields come from the
// earlier fetch; the grant supplies the wrap parameters.
func UnsealGrant(
	message domain.SealedMessage,
	grant domain.UnlockGrant,
	secret domain.SharedSecret,
) ([]byte, error) {
	message.WrappedKey = grant.WrappedKey
	message.WrapNonce = grant.WrapNonce
	message.WrapTag = grant.WrapTag
	return Unseal(message, secret)
}

func unsealWith(message domain.SealedMessage, locationKey domain.LocationKey) ([]byte, error) {
	contentKey, err := crypto.AEADDecrypt(
		locationKey.Slice(), message.WrappedKey, message.WrapNonce, message.WrapTag)
	if err != nil {
		return nil, crypto.ErrAuthentication
	}
	defer memzero.Zero(contentKey)

	plaintext, err := crypto.AEADDecrypt(
		contentKey, message.ContentCiphertext, message.ContentNonce, message.ContentTag)
	if err != nil {
		return nil, crypto.ErrAuthentication
	}
	return plaintext, nil
}

package seal_test

import (
	"bytes"
	"errors"
	"testing"

	"geoseal/internal/crypto"
	"geoseal/internal/domain"
	"geoseal/internal/protocol/seal"
)

func exchange(t *testing.T) (secret domain.SharedSecret, sender, recipient domain.X25519Public) {
	t.Helper()
	senderPriv, senderPub, err := crypto.GenerateX25519()
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}
	recipientPriv, recipientPub, err := crypto.GenerateX25519()
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}

	fromSender, err := crypto.DeriveSharedSecret(senderPriv, recipientPub)
	if err != nil {
		t.Fatalf("DeriveSharedSecret: %v", err)
	}
	fromRecipient, err := crypto.DeriveSharedSecret(recipientPriv, senderPub)
	if err != nil {
		t.Fatalf("DeriveSharedSecret: %v", err)
	}
	if fromSender != fromRecipient {
		t.Fatal("DH is not commutative")
	}
	return fromSender, senderPub, recipientPub
}

func testBinding() domain.LocationBinding {
	return domain.LocationBinding{
		Latitude:    -33.917300,
		Longitude:   151.231000,
		RadiusM:     150,
		WindowStart: 1_700_000_000_000,
		WindowEnd:   1_700_000_600_000,
		Nonce:       []byte("per-message-nonce"),
	}
}

func TestSealUnsealRoundTrip(t *testing.T) {
	secret, sender, recipient := exchange(t)
	plaintext := []byte("meet at the fig tree, noon")

	message, err := seal.Seal(plaintext, secret, testBinding(), sender, recipient)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if bytes.Contains(message.ContentCiphertext, plaintext) {
		t.Fatal("ciphertext contains plaintext")
	}

	got, err := seal.Unseal(message, secret)
	if err != nil {
		t.Fatalf("Unseal: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("round trip mismatch: got %q, want %q", got, plaintext)
	}
}

// Any single differing binding field must fail the unwrap with a generic
// authentication error, never corrupted plaintext.
func TestUnsealWrongBindingFails(t *testing.T) {
	secret, sender, recipient := exchange(t)

	message, err := seal.Seal([]byte("payload"), secret, testBinding(), sender, recipient)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	mutations := []struct {
		name   string
		mutate func(*domain.LocationBinding)
	}{
		{"latitude", func(b *domain.LocationBinding) { b.Latitude += 0.000001 }},
		{"longitude", func(b *domain.LocationBinding) { b.Longitude -= 0.000001 }},
		{"radius", func(b *domain.LocationBinding) { b.RadiusM += 1 }},
		{"window start", func(b *domain.LocationBinding) { b.WindowStart++ }},
		{"window end", func(b *domain.LocationBinding) { b.WindowEnd-- }},
		{"nonce", func(b *domain.LocationBinding) { b.Nonce = []byte("stolen-nonce") }},
	}
	for _, m := range mutations {
		tampered := message
		tampered.Binding = testBinding()
		m.mutate(&tampered.Binding)

		if _, err := seal.Unseal(tampered, secret); !errors.Is(err, crypto.ErrAuthentication) {
			t.Fatalf("%s perturbation: want ErrAuthentication, got %v", m.name, err)
		}
	}
}

func TestUnsealWrongSecretFails(t *testing.T) {
	secret, sender, recipient := exchange(t)
	message, err := seal.Seal([]byte("payload"), secret, testBinding(), sender, recipient)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	other, _, _ := exchange(t)
	if _, err := seal.Unseal(message, other); !errors.Is(err, crypto.ErrAuthentication) {
		t.Fatalf("want ErrAuthentication, got %v", err)
	}
}

func TestUnsealGrant(t *testing.T) {
	secret, sender, recipient := exchange(t)
	plaintext := []byte("released after attestation")

	message, err := seal.Seal(plaintext, secret, testBinding(), sender, recipient)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	// The server withholds the wrap fields until verification passes.
	grant := domain.UnlockGrant{
		WrappedKey: message.WrappedKey,
		WrapNonce:  message.WrapNonce,
		WrapTag:    message.WrapTag,
	}
	fetched := message
	fetched.WrappedKey, fetched.WrapNonce, fetched.WrapTag = nil, nil, nil

	got, err := seal.UnsealGrant(fetched, grant, secret)
	if err != nil {
		t.Fatalf("UnsealGrant: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("round trip mismatch: got %q, want %q", got, plaintext)
	}
}

func TestTamperedCiphertextFails(t *testing.T) {
	secret, sender, recipient := exchange(t)
	message, err := seal.Seal([]byte("payload"), secret, testBinding(), sender, recipient)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	message.ContentCiphertext[0] ^= 0x01
	if _, err := seal.Unseal(message, secret); !errors.Is(err, crypto.ErrAuthentication) {
		t.Fatalf("want ErrAuthentication, got %v", err)
	}
}

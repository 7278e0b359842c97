package messages_test

import (
	"bytes"
	"errors"
	"testing"

	"geoseal/internal/attestation"
	"geoseal/internal/crypto"
	"geoseal/internal/device"
	"geoseal/internal/domain"
	"geoseal/internal/protocol/seal"
	"geoseal/internal/services/messages"
	"geoseal/internal/store"
)

const (
	dropLat = 48.858400
	dropLon = 2.294500
	dropLo  = int64(1_700_000_000_000)
	dropHi  = int64(1_700_000_600_000)
)

func dropBinding() domain.LocationBinding {
	return domain.LocationBinding{
		Latitude:    dropLat,
		Longitude:   dropLon,
		RadiusM:     100,
		WindowStart: dropLo,
		WindowEnd:   dropHi,
		Nonce:       []byte("drop-nonce"),
	}
}

func newService(t *testing.T, devices domain.DeviceRegistry) *messages.Service {
	t.Helper()
	cfg := attestation.Config{Now: func() int64 { return dropLo + 2000 }}
	memStore := store.NewMemoryStoreWithClock(func() int64 { return dropLo + 2000 })
	return messages.New(memStore, devices, cfg)
}

func senderRecipient(t *testing.T) (domain.SharedSecret, domain.X25519Public, domain.X25519Public) {
	t.Helper()
	senderPriv, senderPub, err := crypto.GenerateX25519()
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}
	_, recipientPub, err := crypto.GenerateX25519()
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}
	secret, err := crypto.DeriveSharedSecret(senderPriv, recipientPub)
	if err != nil {
		t.Fatalf("DeriveSharedSecret: %v", err)
	}
	return secret, senderPub, recipientPub
}

func attestAt(t *testing.T, lat, lon float64, ts int64) domain.LocationAttestation {
	t.Helper()
	priv, pub, err := crypto.GenerateEd25519()
	if err != nil {
		t.Fatalf("GenerateEd25519: %v", err)
	}
	return attestation.Create("recipient-device", pub, priv, lat, lon, 5.0, ts, nil)
}

func TestDropUnlockUnseal(t *testing.T) {
	svc := newService(t, nil)
	secret, sender, recipient := senderRecipient(t)
	plaintext := []byte("under the clock at noon")

	message, err := svc.Drop(plaintext, secret, dropBinding(), sender, recipient)
	if err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if message.ID == "" {
		t.Fatal("Drop did not assign an ID")
	}

	res, err := svc.Unlock(message.ID, attestAt(t, dropLat, dropLon, dropLo+1000))
	if err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if !res.Valid {
		t.Fatalf("valid attestation denied: %+v", res)
	}

	grant := domain.UnlockGrant{
		WrappedKey: res.WrappedKey,
		WrapNonce:  res.WrapNonce,
		WrapTag:    res.WrapTag,
		DistanceM:  res.DistanceM,
	}
	got, err := seal.UnsealGrant(message, grant, secret)
	if err != nil {
		t.Fatalf("UnsealGrant: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("plaintext mismatch: got %q", got)
	}
}

func TestUnlockWrongPlaceDenied(t *testing.T) {
	svc := newService(t, nil)
	secret, sender, recipient := senderRecipient(t)

	message, err := svc.Drop([]byte("payload"), secret, dropBinding(), sender, recipient)
	if err != nil {
		t.Fatalf("Drop: %v", err)
	}

	// ~1.1 km north of the drop.
	res, err := svc.Unlock(message.ID, attestAt(t, dropLat+0.01, dropLon, dropLo+1000))
	if err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if res.Valid || res.Reason != domain.ReasonOutsideGeofence {
		t.Fatalf("want OutsideGeofence, got %+v", res)
	}
	if !res.DistanceComputed || res.DistanceM <= 100 {
		t.Fatalf("denial should carry the distance for navigation, got %+v", res)
	}
	if res.WrappedKey != nil || res.WrapNonce != nil || res.WrapTag != nil {
		t.Fatal("denied unlock leaked wrapped-key material")
	}
}

func TestUnlockUnknownMessage(t *testing.T) {
	svc := newService(t, nil)

	_, err := svc.Unlock("no-such-id", attestAt(t, dropLat, dropLon, dropLo+1000))
	if !errors.Is(err, messages.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestUnlockRegisteredDeviceKeyMismatch(t *testing.T) {
	registry := device.NewRegistry()
	svc := newService(t, registry)
	secret, sender, recipient := senderRecipient(t)

	message, err := svc.Drop([]byte("payload"), secret, dropBinding(), sender, recipient)
	if err != nil {
		t.Fatalf("Drop: %v", err)
	}

	// The registered key differs from whatever the attestation declares.
	var registered domain.Ed25519Public
	registered[0] = 0x7F
	if err := registry.Register("recipient-device", registered); err != nil {
		t.Fatalf("Register: %v", err)
	}

	res, err := svc.Unlock(message.ID, attestAt(t, dropLat, dropLon, dropLo+1000))
	if err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if res.Valid || res.Reason != domain.ReasonInvalidSignature {
		t.Fatalf("want InvalidSignature for key mismatch, got %+v", res)
	}
	if res.DistanceComputed {
		t.Fatal("distance must not leak on identity failure")
	}
}

func TestDropRejectsInvalidBindings(t *testing.T) {
	svc := newService(t, nil)
	secret, sender, recipient := senderRecipient(t)

	bad := []func(*domain.LocationBinding){
		func(b *domain.LocationBinding) { b.RadiusM = 0 },
		func(b *domain.LocationBinding) { b.RadiusM = -5 },
		func(b *domain.LocationBinding) { b.WindowStart, b.WindowEnd = b.WindowEnd, b.WindowStart },
		func(b *domain.LocationBinding) { b.Latitude = 91 },
		func(b *domain.LocationBinding) { b.Longitude = -181 },
		func(b *domain.LocationBinding) { b.Nonce = nil },
	}
	for i, mutate := range bad {
		binding := dropBinding()
		mutate(&binding)
		if _, err := svc.Drop([]byte("x"), secret, binding, sender, recipient); !errors.Is(err, messages.ErrInvalidBinding) {
			t.Fatalf("case %d: want ErrInvalidBinding, got %v", i, err)
		}
	}
}

package client_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"geoseal/internal/attestation"
	"geoseal/internal/client"
	"geoseal/internal/crypto"
	"geoseal/internal/device"
	"geoseal/internal/domain"
	"geoseal/internal/protocol/seal"
	"geoseal/internal/server"
	"geoseal/internal/services/messages"
	"geoseal/internal/store"
)

const (
	dropLat = 48.858400
	dropLon = 2.294500
	nowMs   = int64(1_700_000_900_000)
)

func startServer(t *testing.T) *client.HTTPClient {
	t.Helper()

	devices := device.NewRegistry()
	memStore := store.NewMemoryStoreWithClock(func() int64 { return nowMs })
	svc := messages.New(memStore, devices, attestation.Config{
		Now: func() int64 { return nowMs },
	})
	ts := httptest.NewServer(server.New("127.0.0.1:0", svc, devices).Router())
	t.Cleanup(ts.Close)
	return client.New(ts.URL)
}

func TestClientDropFetchUnlock(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()

	var secret domain.SharedSecret
	for i := range secret {
		secret[i] = byte(0x40 + i)
	}
	var sender, recipient domain.X25519Public
	sender[0] = 0x01
	recipient[0] = 0x02

	sealed, err := seal.Seal([]byte("under the east pillar"), secret, domain.LocationBinding{
		Latitude:    dropLat,
		Longitude:   dropLon,
		RadiusM:     100,
		WindowStart: nowMs - 1_000,
		WindowEnd:   nowMs + 600_000,
		Nonce:       []byte("client-test-nonce"),
	}, sender, recipient)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	id, err := c.PostMessage(ctx, sealed)
	if err != nil {
		t.Fatalf("PostMessage: %v", err)
	}
	if id == "" {
		t.Fatal("PostMessage returned empty id")
	}

	fetched, err := c.FetchMessage(ctx, id)
	if err != nil {
		t.Fatalf("FetchMessage: %v", err)
	}
	if len(fetched.WrappedKey) != 0 {
		t.Fatal("fetch exposed the wrapped key before unlock")
	}
	if fetched.Binding.Latitude != dropLat || fetched.Binding.RadiusM != 100 {
		t.Fatalf("fetched binding mismatch: %+v", fetched.Binding)
	}

	priv, pub, err := crypto.GenerateEd25519()
	if err != nil {
		t.Fatalf("GenerateEd25519: %v", err)
	}
	if err := c.RegisterDevice(ctx, "walker-7", pub); err != nil {
		t.Fatalf("RegisterDevice: %v", err)
	}

	att := attestation.Create("walker-7", pub, priv, dropLat, dropLon, 8, nowMs, nil)
	unlock, err := c.Unlock(ctx, id, att)
	if err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if !unlock.Valid {
		t.Fatalf("unlock denied: %s", unlock.Reason)
	}

	plaintext, err := seal.UnsealGrant(fetched, domain.UnlockGrant{
		WrappedKey: unlock.WrappedKey,
		WrapNonce:  unlock.WrapNonce,
		WrapTag:    unlock.WrapTag,
	}, secret)
	if err != nil {
		t.Fatalf("UnsealGrant: %v", err)
	}
	if string(plaintext) != "under the east pillar" {
		t.Fatalf("plaintext = %q", plaintext)
	}

	if err := c.DeleteMessage(ctx, id); err != nil {
		t.Fatalf("DeleteMessage: %v", err)
	}
	if _, err := c.FetchMessage(ctx, id); err == nil {
		t.Fatal("fetch after delete succeeded")
	}
}

func TestClientUnlockDenialIsNotAnError(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()

	var secret domain.SharedSecret
	secret[0] = 0x99
	var sender, recipient domain.X25519Public

	sealed, err := seal.Seal([]byte("x"), secret, domain.LocationBinding{
		Latitude:    dropLat,
		Longitude:   dropLon,
		RadiusM:     50,
		WindowStart: nowMs - 1_000,
		WindowEnd:   nowMs + 600_000,
		Nonce:       []byte("denial-nonce-123"),
	}, sender, recipient)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	id, err := c.PostMessage(ctx, sealed)
	if err != nil {
		t.Fatalf("PostMessage: %v", err)
	}

	priv, pub, err := crypto.GenerateEd25519()
	if err != nil {
		t.Fatalf("GenerateEd25519: %v", err)
	}
	att := attestation.Create("walker-7", pub, priv, dropLat+0.01, dropLon, 8, nowMs, nil)

	unlock, err := c.Unlock(ctx, id, att)
	if err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if unlock.Valid {
		t.Fatal("out-of-fence unlock accepted")
	}
	if unlock.Reason != domain.ReasonOutsideGeofence {
		t.Fatalf("reason = %s, want %s", unlock.Reason, domain.ReasonOutsideGeofence)
	}
	if len(unlock.WrappedKey) != 0 {
		t.Fatal("denial carried a wrapped key")
	}
}

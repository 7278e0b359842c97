package store

import (
	"errors"
	"testing"

	"geoseal/internal/domain"
)

func storedMessage(id string, windowEnd int64) domain.SealedMessage {
	return domain.SealedMessage{
		ID:                domain.MessageID(id),
		ContentCiphertext: []byte{1, 2, 3},
		Binding:           domain.LocationBinding{WindowEnd: windowEnd},
	}
}

func TestMemoryStorePutGetDelete(t *testing.T) {
	s := NewMemoryStore()

	if err := s.Put(storedMessage("m1", 0)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := s.Get("m1")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.ID != "m1" {
		t.Fatalf("got ID %q", got.ID)
	}

	if err := s.Delete("m1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.Get("m1"); ok {
		t.Fatal("deleted message still readable")
	}
	// Deleting again is not an error.
	if err := s.Delete("m1"); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
}

func TestMemoryStoreSingleWinningWriter(t *testing.T) {
	s := NewMemoryStore()

	if err := s.Put(storedMessage("m1", 0)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(storedMessage("m1", 0)); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("want ErrDuplicateID, got %v", err)
	}
	if err := s.Put(domain.SealedMessage{}); !errors.Is(err, ErrMissingID) {
		t.Fatalf("want ErrMissingID, got %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	now := int64(1000)
	s := NewMemoryStoreWithClock(func() int64 { return now })

	if err := s.Put(storedMessage("short", 2000)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(storedMessage("long", 9000)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if _, ok, _ := s.Get("short"); !ok {
		t.Fatal("unexpired message unreadable")
	}

	now = 2001
	if _, ok, _ := s.Get("short"); ok {
		t.Fatal("expired message still readable")
	}
	list, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].ID != "long" {
		t.Fatalf("List after expiry: %+v", list)
	}

	now = 10_000
	if dropped := s.Sweep(); dropped != 1 {
		t.Fatalf("Sweep dropped %d, want 1", dropped)
	}
	if s.Count() != 0 {
		t.Fatalf("Count after sweep: %d", s.Count())
	}
}

func TestIdentityFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewIdentityFileStore(dir)

	id := domain.Identity{}
	id.XPub[0] = 0xAA
	id.EdPub[0] = 0xBB

	if err := s.SaveIdentity("correct horse battery staple", id); err != nil {
		t.Fatalf("SaveIdentity: %v", err)
	}
	got, err := s.LoadIdentity("correct horse battery staple")
	if err != nil {
		t.Fatalf("LoadIdentity: %v", err)
	}
	if got != id {
		t.Fatal("identity round trip mismatch")
	}

	if _, err := s.LoadIdentity("wrong"); !errors.Is(err, ErrWrongPassphrase) {
		t.Fatalf("want ErrWrongPassphrase, got %v", err)
	}
}

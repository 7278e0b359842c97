package attestation_test

import (
	"testing"

	"geoseal/internal/attestation"
	"geoseal/internal/crypto"
	"geoseal/internal/domain"
)

func deviceKeys(t *testing.T) (domain.Ed25519Private, domain.Ed25519Public) {
	t.Helper()
	priv, pub, err := crypto.GenerateEd25519()
	if err != nil {
		t.Fatalf("GenerateEd25519: %v", err)
	}
	return priv, pub
}

func TestCreateAndVerifySignature(t *testing.T) {
	priv, pub := deviceKeys(t)

	att := attestation.Create(
		"device-1", pub, priv,
		-33.917300, 151.231000, 5.0, 1_700_000_000_000,
		[]domain.MovementSample{
			{Latitude: -33.917310, Longitude: 151.231010, TimestampMs: 1_699_999_990_000},
			{Latitude: -33.917300, Longitude: 151.231000, TimestampMs: 1_700_000_000_000},
		},
	)
	if !attestation.VerifySignature(att) {
		t.Fatal("freshly created attestation failed verification")
	}
}

func TestTamperedFieldsBreakSignature(t *testing.T) {
	priv, pub := deviceKeys(t)
	att := attestation.Create("device-1", pub, priv, 1.0, 2.0, 5.0, 1000, nil)

	cases := []struct {
		name   string
		mutate func(*domain.LocationAttestation)
	}{
		{"device id", func(a *domain.LocationAttestation) { a.DeviceID = "device-2" }},
		{"latitude", func(a *domain.LocationAttestation) { a.Latitude += 0.000001 }},
		{"longitude", func(a *domain.LocationAttestation) { a.Longitude += 0.000001 }},
		{"accuracy", func(a *domain.LocationAttestation) { a.AccuracyM += 1 }},
		{"timestamp", func(a *domain.LocationAttestation) { a.TimestampMs++ }},
		{"history appended", func(a *domain.LocationAttestation) {
			a.MovementHistory = append(a.MovementHistory,
				domain.MovementSample{Latitude: 1, Longitude: 2, TimestampMs: 999})
		}},
	}
	for _, c := range cases {
		tampered := att
		c.mutate(&tampered)
		if attestation.VerifySignature(tampered) {
			t.Fatalf("%s: tampered attestation still verifies", c.name)
		}
	}
}

// The movement history is part of the signed payload: swapping a genuine
// track for a fabricated one must invalidate the signature.
func TestHistoryCommitmentIsSigned(t *testing.T) {
	priv, pub := deviceKeys(t)
	history := []domain.MovementSample{
		{Latitude: 1.0, Longitude: 2.0, TimestampMs: 500},
		{Latitude: 1.00001, Longitude: 2.0, TimestampMs: 1000},
	}
	att := attestation.Create("device-1", pub, priv, 1.0, 2.0, 5.0, 1000, history)

	att.MovementHistory[1].TimestampMs = 900
	if attestation.VerifySignature(att) {
		t.Fatal("modified history sample still verifies")
	}
}

func TestDistanceKnownValues(t *testing.T) {
	// Same point.
	if d := attestation.Distance(10, 20, 10, 20); d != 0 {
		t.Fatalf("zero distance expected, got %f", d)
	}
	// One degree of latitude is ~111.2 km on a 6371 km sphere.
	d := attestation.Distance(0, 0, 1, 0)
	if d < 111_000 || d > 111_400 {
		t.Fatalf("one degree latitude: got %f m", d)
	}
	// Symmetry.
	if a, b := attestation.Distance(1, 2, 3, 4), attestation.Distance(3, 4, 1, 2); a != b {
		t.Fatalf("distance not symmetric: %f vs %f", a, b)
	}
}

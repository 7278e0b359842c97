package attestation

import (
	"sort"
	"time"

	"geoseal/internal/domain"
)

// Defaults for Config fields left zero.
const (
	DefaultMaxAgeMs  = 300_000 // five minutes
	DefaultMaxSpeedM = 200.0   // meters per second, generously above any road vehicle
)

// Config tunes the verification pipeline. The zero value plus Normalize is a
// usable default; Now is injectable so verification stays a pure function of
// its inputs under test.
type Config struct {
	// MaxAgeMs bounds how old an attestation may be. Future timestamps are
	// always rejected.
	MaxAgeMs int64
	// MaxSpeedMS is the ceiling on speed between consecutive history
	// samples, in meters per second.
	MaxSpeedMS float64
	// RequirePresence enables the continuous-presence check.
	RequirePresence bool
	// MinPresenceMs is the minimum span of an unbroken in-fence run when
	// RequirePresence is set.
	MinPresenceMs int64
	// Now returns the current epoch milliseconds. Defaults to wall time.
	Now func() int64
}

// Normalize fills zero fields with defaults and returns the result.
func (c Config) Normalize() Config {
	if c.MaxAgeMs == 0 {
		c.MaxAgeMs = DefaultMaxAgeMs
	}
	if c.MaxSpeedMS == 0 {
		c.MaxSpeedMS = DefaultMaxSpeedM
	}
	if c.Now == nil {
		c.Now = func() int64 { return time.Now().UnixMilli() }
	}
	return c
}

// Verify runs the pipeline over one attestation against a target binding.
//
// Checks run in fixed order and stop at the first failure. The distance is
// computed at the geofence stage and carried on every outcome from that
// stage on, pass or fail, but never earlier: a caller probing with an
// unsigned claim learns nothing about the target.
func Verify(
	att domain.LocationAttestation,
	binding domain.LocationBinding,
	cfg Config,
) domain.VerificationResult {
	cfg = cfg.Normalize()

	// 1. Signature. Fails closed before anything is measured.
	if !VerifySignature(att) {
		return reject(domain.ReasonInvalidSignature)
	}

	// 2. Freshness. Negative age means a timestamp from the future.
	age := cfg.Now() - att.TimestampMs
	if age < 0 || age > cfg.MaxAgeMs {
		return reject(domain.ReasonStaleAttestation)
	}

	// 3. Time window of the binding itself.
	if att.TimestampMs < binding.WindowStart || att.TimestampMs > binding.WindowEnd {
		return reject(domain.ReasonOutsideTimeWindow)
	}

	// 4. Geofence. The radius is inclusive; the distance is reported either way.
	distance := Distance(att.Latitude, att.Longitude, binding.Latitude, binding.Longitude)
	if distance > binding.RadiusM {
		return rejectAt(domain.ReasonOutsideGeofence, distance)
	}

	// 5. Movement plausibility, only with two or more samples.
	if len(att.MovementHistory) >= 2 {
		if !plausibleMovement(att.MovementHistory, cfg.MaxSpeedMS) {
			return rejectAt(domain.ReasonImplausibleMovement, distance)
		}

		// 6. Continuous presence over the sorted history.
		if cfg.RequirePresence && !sufficientPresence(att.MovementHistory, binding, cfg.MinPresenceMs) {
			return rejectAt(domain.ReasonInsufficientPresence, distance)
		}
	} else if cfg.RequirePresence {
		// Presence cannot be demonstrated without a history.
		return rejectAt(domain.ReasonInsufficientPresence, distance)
	}

	return domain.VerificationResult{
		Valid:            true,
		DistanceM:        distance,
		DistanceComputed: true,
	}
}

// plausibleMovement sorts the history by timestamp and rejects any
// consecutive pair exceeding the speed ceiling. Zero or negative time deltas
// between distinct samples are a data-integrity violation, not a division.
func plausibleMovement(history []domain.MovementSample, maxSpeedMS float64) bool {
	samples := sortedByTime(history)
	for i := 1; i < len(samples); i++ {
		prev, cur := samples[i-1], samples[i]
		deltaMs := cur.TimestampMs - prev.TimestampMs
		hop := Distance(prev.Latitude, prev.Longitude, cur.Latitude, cur.Longitude)
		if deltaMs <= 0 {
			// Sorted input, so this means coincident timestamps. Two distinct
			// positions at the same instant is corrupt data, not teleportation.
			if hop > 0 {
				return false
			}
			continue
		}
		speed := hop / (float64(deltaMs) / 1000)
		if speed > maxSpeedMS {
			return false
		}
	}
	return true
}

// sufficientPresence scans the sorted history for the longest contiguous run
// of in-fence samples, measured first-to-last; any excursion outside the
// fence resets the run.
func sufficientPresence(history []domain.MovementSample, binding domain.LocationBinding, minMs int64) bool {
	samples := sortedByTime(history)

	var runStart int64
	inRun := false
	for _, s := range samples {
		inside := Distance(s.Latitude, s.Longitude, binding.Latitude, binding.Longitude) <= binding.RadiusM
		if !inside {
			inRun = false
			continue
		}
		if !inRun {
			runStart = s.TimestampMs
			inRun = true
		}
		if s.TimestampMs-runStart >= minMs {
			return true
		}
	}
	return false
}

func sortedByTime(history []domain.MovementSample) []domain.MovementSample {
	samples := make([]domain.MovementSample, len(history))
	copy(samples, history)
	sort.Slice(samples, func(i, j int) bool {
		return samples[i].TimestampMs < samples[j].TimestampMs
	})
	return samples
}

func reject(reason domain.RejectReason) domain.VerificationResult {
	return domain.VerificationResult{Reason: reason}
}

func rejectAt(reason domain.RejectReason, distance float64) domain.VerificationResult {
	return domain.VerificationResult{
		Reason:           reason,
		DistanceM:        distance,
		DistanceComputed: true,
	}
}

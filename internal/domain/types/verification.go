package types

// RejectReason names why the verification pipeline denied an attestation.
type RejectReason string

// Reject reasons, in pipeline order.
const (
	ReasonInvalidSignature     RejectReason = "InvalidSignature"
	ReasonStaleAttestation     RejectReason = "StaleAttestation"
	ReasonOutsideTimeWindow    RejectReason = "OutsideTimeWindow"
	ReasonOutsideGeofence      RejectReason = "OutsideGeofence"
	ReasonImplausibleMovement  RejectReason = "ImplausibleMovement"
	ReasonInsufficientPresence RejectReason = "InsufficientPresence"
)

// VerificationResult is the discriminated outcome of the pipeline.
//
// Callers must treat any non-valid result as full denial. DistanceM is only
// meaningful when DistanceComputed is true; it is reported once the geofence
// stage has run, on success and failure alike, but never for earlier-stage
// failures.
type VerificationResult struct {
	Valid            bool         `json:"valid"`
	Reason           RejectReason `json:"reason,omitempty"`
	DistanceM        float64      `json:"distance_m,omitempty"`
	DistanceComputed bool         `json:"distance_computed"`
}

// UnlockResponse is the wire form of an unlock attempt's outcome. On success
// the wrapped-key fields are populated; on denial only the reason and, when
// computable, the distance.
type UnlockResponse struct {
	Valid            bool         `json:"valid"`
	Reason           RejectReason `json:"reason,omitempty"`
	DistanceM        float64      `json:"distance_m,omitempty"`
	DistanceComputed bool         `json:"distance_computed"`

	WrappedKey []byte `json:"wrapped_key,omitempty"`
	WrapNonce  []byte `json:"wrap_nonce,omitempty"`
	WrapTag    []byte `json:"wrap_tag,omitempty"`
}

package domain

import (
	interfaces "geoseal/internal/domain/interfaces"
	types "geoseal/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	MessageID           = types.MessageID
	DeviceID            = types.DeviceID
	Fingerprint         = types.Fingerprint
	Identity            = types.Identity
	SharedSecret        = types.SharedSecret
	LocationKey         = types.LocationKey
	LocationBinding     = types.LocationBinding
	SealedMessage       = types.SealedMessage
	UnlockGrant         = types.UnlockGrant
	MovementSample      = types.MovementSample
	LocationAttestation = types.LocationAttestation
	RejectReason        = types.RejectReason
	VerificationResult  = types.VerificationResult
	UnlockResponse      = types.UnlockResponse
	X25519Public        = types.X25519Public
	X25519Private       = types.X25519Private
	Ed25519Public       = types.Ed25519Public
	Ed25519Private      = types.Ed25519Private
)

// Reject reason constants re-exported for compact imports.
const (
	ReasonInvalidSignature     = types.ReasonInvalidSignature
	ReasonStaleAttestation     = types.ReasonStaleAttestation
	ReasonOutsideTimeWindow    = types.ReasonOutsideTimeWindow
	ReasonOutsideGeofence      = types.ReasonOutsideGeofence
	ReasonImplausibleMovement  = types.ReasonImplausibleMovement
	ReasonInsufficientPresence = types.ReasonInsufficientPresence
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	IdentityService = interfaces.IdentityService
	MessageService  = interfaces.MessageService
	IdentityStore   = interfaces.IdentityStore
	MessageStore    = interfaces.MessageStore
	DeviceRegistry  = interfaces.DeviceRegistry
	DropClient      = interfaces.DropClient
)

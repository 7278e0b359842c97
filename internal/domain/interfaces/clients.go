package interfaces

import (
	"context"

	domaintypes "geoseal/internal/domain/types"
)

// DropClient is how we talk to a geoseal drop server, all with context.
type DropClient interface {
	PostMessage(
		ctx context.Context,
		message domaintypes.SealedMessage,
	) (domaintypes.MessageID, error)
	FetchMessage(
		ctx context.Context,
		id domaintypes.MessageID,
	) (domaintypes.SealedMessage, error)
	Unlock(
		ctx context.Context,
		id domaintypes.MessageID,
		attestation domaintypes.LocationAttestation,
	) (domaintypes.UnlockResponse, error)
	ListMessages(ctx context.Context) ([]domaintypes.SealedMessage, error)
	DeleteMessage(ctx context.Context, id domaintypes.MessageID) error
	RegisterDevice(
		ctx context.Context,
		id domaintypes.DeviceID,
		key domaintypes.Ed25519Public,
	) error
}

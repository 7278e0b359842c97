package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"geoseal/internal/attestation"
	"geoseal/internal/crypto"
	"geoseal/internal/domain"
	"geoseal/internal/protocol/seal"
)

// unlock <message-id>: attest presence at the given coordinates and decrypt.
func unlockCmd() *cobra.Command {
	var (
		lat      float64
		lon      float64
		accuracy float64
	)

	cmd := &cobra.Command{
		Use:   "unlock <message-id>",
		Short: "Attest presence, collect the key grant, and decrypt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			id, err := appCtx.Identity.LoadIdentity(passphrase)
			if err != nil {
				return err
			}

			msgID := domain.MessageID(args[0])
			message, err := appCtx.Drop.FetchMessage(cmd.Context(), msgID)
			if err != nil {
				return err
			}

			deviceID := domain.DeviceID(crypto.Fingerprint(id.EdPub.Slice()))
			att := attestation.Create(
				deviceID, id.EdPub, id.EdPriv,
				lat, lon, accuracy,
				time.Now().UnixMilli(), nil,
			)

			unlock, err := appCtx.Drop.Unlock(cmd.Context(), msgID, att)
			if err != nil {
				return err
			}
			if !unlock.Valid {
				if unlock.DistanceComputed {
					return fmt.Errorf("unlock denied: %s (%.0fm from center)", unlock.Reason, unlock.DistanceM)
				}
				return fmt.Errorf("unlock denied: %s", unlock.Reason)
			}

			secret, err := crypto.DeriveSharedSecret(id.XPriv, message.SenderKey)
			if err != nil {
				return err
			}
			plaintext, err := seal.UnsealGrant(message, domain.UnlockGrant{
				WrappedKey: unlock.WrappedKey,
				WrapNonce:  unlock.WrapNonce,
				WrapTag:    unlock.WrapTag,
			}, secret)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", plaintext)
			return nil
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "your latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "your longitude")
	cmd.Flags().Float64Var(&accuracy, "accuracy", 10, "position accuracy in meters")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")
	return cmd
}

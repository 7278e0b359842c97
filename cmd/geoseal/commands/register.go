package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"geoseal/internal/crypto"
	"geoseal/internal/domain"
)

func registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Register this device's signing key with the drop server",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := appCtx.Identity.LoadIdentity(passphrase)
			if err != nil {
				return err
			}

			deviceID := domain.DeviceID(crypto.Fingerprint(id.EdPub.Slice()))
			if err := appCtx.Drop.RegisterDevice(cmd.Context(), deviceID, id.EdPub); err != nil {
				return err
			}
			fmt.Printf("Registered device %s\n", deviceID)
			return nil
		},
	}
}

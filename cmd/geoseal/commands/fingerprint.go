package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"geoseal/internal/crypto"
)

func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint",
		Short: "Print identity fingerprint and public key",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := appCtx.Identity.LoadIdentity(passphrase)
			if err != nil {
				return err
			}
			fmt.Printf("Fingerprint: %s\n", crypto.Fingerprint(id.XPub.Slice()))
			fmt.Printf("Public key:  %s\n", hex.EncodeToString(id.XPub.Slice()))
			return nil
		},
	}
}

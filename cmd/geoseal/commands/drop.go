package commands

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"geoseal/internal/crypto"
	"geoseal/internal/domain"
	"geoseal/internal/protocol/seal"
)

// drop <recipient-pub-hex> <message>: seal a message to a place and post it.
func dropCmd() *cobra.Command {
	var (
		lat      float64
		lon      float64
		radius   float64
		openFor  time.Duration
		openFrom string
	)

	cmd := &cobra.Command{
		Use:   "drop <recipient-pub-hex> <message>",
		Short: "Seal a message to a place and post it to the drop server",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			id, err := appCtx.Identity.LoadIdentity(passphrase)
			if err != nil {
				return err
			}

			recipient, err := parsePublicKey(args[0])
			if err != nil {
				return err
			}
			secret, err := crypto.DeriveSharedSecret(id.XPriv, recipient)
			if err != nil {
				return err
			}

			start := time.Now()
			if openFrom != "" {
				start, err = time.Parse(time.RFC3339, openFrom)
				if err != nil {
					return fmt.Errorf("parse --from: %w", err)
				}
			}

			nonce := make([]byte, 16)
			if _, err := rand.Read(nonce); err != nil {
				return err
			}

			binding := domain.LocationBinding{
				Latitude:    lat,
				Longitude:   lon,
				RadiusM:     radius,
				WindowStart: start.UnixMilli(),
				WindowEnd:   start.Add(openFor).UnixMilli(),
				Nonce:       nonce,
			}
			sealed, err := seal.Seal([]byte(args[1]), secret, binding, id.XPub, recipient)
			if err != nil {
				return err
			}

			msgID, err := appCtx.Drop.PostMessage(cmd.Context(), sealed)
			if err != nil {
				return err
			}
			fmt.Printf("Dropped %s\n", msgID)
			return nil
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "geofence center latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "geofence center longitude")
	cmd.Flags().Float64Var(&radius, "radius", 100, "geofence radius in meters")
	cmd.Flags().DurationVar(&openFor, "open-for", 24*time.Hour, "how long the window stays open")
	cmd.Flags().StringVar(&openFrom, "from", "", "window start, RFC 3339 (default now)")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")
	return cmd
}

func parsePublicKey(s string) (domain.X25519Public, error) {
	var pub domain.X25519Public
	raw, err := hex.DecodeString(s)
	if err != nil {
		return pub, fmt.Errorf("parse public key: %w", err)
	}
	if len(raw) != len(pub) {
		return pub, fmt.Errorf("public key must be %d bytes, got %d", len(pub), len(raw))
	}
	copy(pub[:], raw)
	return pub, nil
}

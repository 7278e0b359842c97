package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"geoseal/internal/app"
)

var (
	home       string
	passphrase string
	serverURL  string
	appCtx     *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:   "geoseal",
		Short: "Location-locked message CLI",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".geoseal")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}

			wire, err := app.NewWire(app.Config{
				Home:      home,
				ServerURL: serverURL,
			})
			if err != nil {
				return err
			}
			appCtx = wire
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.geoseal)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase to protect keys")
	root.PersistentFlags().StringVar(&serverURL, "server", "http://127.0.0.1:8750", "drop server base URL")

	root.AddCommand(initCmd(), fingerprintCmd(), registerCmd(), dropCmd(), listCmd(), unlockCmd())
	return root.Execute()
}

package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List messages stored on the drop server",
		RunE: func(cmd *cobra.Command, args []string) error {
			stored, err := appCtx.Drop.ListMessages(cmd.Context())
			if err != nil {
				return err
			}
			if len(stored) == 0 {
				fmt.Println("no messages")
				return nil
			}
			for _, m := range stored {
				until := time.UnixMilli(m.Binding.WindowEnd).UTC().Format(time.RFC3339)
				fmt.Printf("%s  (%.6f, %.6f) r=%.0fm  open until %s\n",
					m.ID, m.Binding.Latitude, m.Binding.Longitude, m.Binding.RadiusM, until)
			}
			return nil
		},
	}
}

package cli

import (
	"github.com/spf13/cobra"
)

func newLedgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger mirroring commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show per-category mirroring state and queue depth",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result LedgerStatusResult
			if err := client.Get("/api/ledger/status", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	})

	return cmd
}

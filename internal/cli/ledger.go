package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezkam/weekly/internal/application/ledger"
	"github.com/rezkam/weekly/internal/bootstrap"
	"github.com/rezkam/weekly/internal/clock"
	"github.com/rezkam/weekly/internal/config"
	"github.com/rezkam/weekly/internal/env"
)

// LedgerSettings is the environment configuration the ledger commands read.
type LedgerSettings struct {
	Ledger config.LedgerConfig
	Time   config.TimeConfig
}

func loadLedgerSettings() (LedgerSettings, error) {
	var s LedgerSettings
	if err := env.Load(&s); err != nil {
		return LedgerSettings{}, fmt.Errorf("failed to load ledger config: %w", err)
	}
	return s, nil
}

func newLedgerCommand(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Inspect the submission ledger configured by WEEKLY_LEDGER_*",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current period's ledger record as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := deps.LoadLedgerConfig()
			if err != nil {
				return err
			}
			loc, err := s.Time.Location()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			repo, closer, err := bootstrap.OpenLedger(ctx, s.Ledger)
			if err != nil {
				return err
			}
			defer func() { _ = closer.Close() }()

			clk := clock.Func(func() time.Time { return deps.Clock.Now().In(loc) })
			rec, err := ledger.NewService(repo, clk).Snapshot(ctx)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rec)
		},
	})
	return cmd
}

// Package cli provides the weeklyctl command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/rezkam/weekly/internal/clock"
)

// Deps are the collaborators commands need. Tests replace them.
type Deps struct {
	Clock clock.Clock
	// LoadLedgerConfig defaults to reading WEEKLY_* variables.
	LoadLedgerConfig func() (LedgerSettings, error)
}

// NewRootCommand creates the root command for weeklyctl.
func NewRootCommand(deps Deps, version string) *cobra.Command {
	if deps.Clock == nil {
		deps.Clock = clock.System{}
	}
	if deps.LoadLedgerConfig == nil {
		deps.LoadLedgerConfig = loadLedgerSettings
	}

	root := &cobra.Command{
		Use:   "weeklyctl",
		Short: "Operator tools for the weekly report service",
		Long: `weeklyctl inspects the weekly report service offline: it prints the
current reporting period, renders reports from task files without calling
any external service, checks roster files and shows the submission ledger.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newPeriodCommand(deps),
		newRenderCommand(),
		newRosterCommand(),
		newLedgerCommand(deps),
	)
	return root
}

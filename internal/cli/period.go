package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezkam/weekly/internal/domain"
)

func newPeriodCommand(deps Deps) *cobra.Command {
	var (
		at       string
		timezone string
	)

	cmd := &cobra.Command{
		Use:   "period",
		Short: "Print the period key and the range covered by the completed section",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loc := time.UTC
			if timezone != "" {
				l, err := time.LoadLocation(timezone)
				if err != nil {
					return fmt.Errorf("invalid timezone %q: %w", timezone, err)
				}
				loc = l
			}

			now := deps.Clock.Now().In(loc)
			if at != "" {
				t, err := time.ParseInLocation(domain.PeriodKeyLayout, at, loc)
				if err != nil {
					return fmt.Errorf("invalid --at date %q: %w", at, err)
				}
				now = t
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "period: %s\n", domain.PeriodKey(now))
			_, _ = fmt.Fprintf(out, "last week: %s\n", domain.PeriodRange(now))
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "date to evaluate (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&timezone, "tz", "", "IANA timezone, defaults to UTC")
	return cmd
}

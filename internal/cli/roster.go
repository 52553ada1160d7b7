package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rezkam/weekly/internal/config"
)

func newRosterCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Validate a roster file and list its members in page order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			members, err := config.LoadRoster(path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, m := range members {
				_, _ = fmt.Fprintf(out, "%d. %s (%s)\n", i+1, m.Name, m.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "file", config.DefaultRosterPath, "roster YAML file")
	return cmd
}

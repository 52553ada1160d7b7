package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rezkam/weekly/internal/domain"
	"github.com/rezkam/weekly/internal/report"
)

func newRenderCommand() *cobra.Command {
	var (
		tasksFile string
		tree      bool
		info      string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the built-in report for a task set file",
		Long: `Render reads a JSON task set ({"current": [...], "recentlyDone": [...]})
as returned by GET /api/v1/tasks and prints the deterministic report. With
--tree it also prints the block tree the report becomes on the weekly page.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, err := readTaskSet(tasksFile)
			if err != nil {
				return err
			}

			text := report.Fallback(set)
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprint(out, text)

			if tree {
				_, _ = fmt.Fprintln(out)
				writeTree(out, report.Parse(report.WithInfoSync(text, info)), 0)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tasksFile, "tasks", "", "task set JSON file (- for stdin)")
	cmd.Flags().BoolVar(&tree, "tree", false, "also print the parsed block tree")
	cmd.Flags().StringVar(&info, "info", "", "extra info for the info-sync section of the tree")
	_ = cmd.MarkFlagRequired("tasks")
	return cmd
}

func readTaskSet(path string) (domain.TaskSet, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return domain.TaskSet{}, fmt.Errorf("failed to read tasks: %w", err)
	}

	var set domain.TaskSet
	if err := json.Unmarshal(data, &set); err != nil {
		return domain.TaskSet{}, fmt.Errorf("failed to decode tasks: %w", err)
	}
	return set, nil
}

func writeTree(w io.Writer, blocks []domain.Block, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, b := range blocks {
		if b.Text == "" {
			_, _ = fmt.Fprintf(w, "%s[%s]\n", indent, b.Kind)
		} else {
			_, _ = fmt.Fprintf(w, "%s[%s] %s\n", indent, b.Kind, b.Text)
		}
		writeTree(w, b.Children, depth+1)
	}
}

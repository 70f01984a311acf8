package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tably-labs/tably/internal/source"
	"github.com/tably-labs/tably/pkg/frame"
)

// ShowOptions holds options for the show command.
type ShowOptions struct {
	Limit    int
	Table    string
	Query    string
	IndexCol string
}

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	opts := &ShowOptions{}

	cmd := &cobra.Command{
		Use:   "show <dataset|path>",
		Short: "Load a dataset and render it",
		Long: `Load a dataset and render it in the configured output format.

The argument is either the name of a dataset in the data directory, a
path to a CSV or database file, or a postgres:// connection string.`,
		Example: `  # Show a dataset from the data directory
  tably show wdi

  # Show a CSV file directly, first 5 rows
  tably show ./exports/cities.csv -n 5

  # Show a table from a SQLite database
  tably show state.db --table runs

  # Query a Postgres source
  tably show postgres://localhost/app --query "SELECT * FROM users"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "Maximum rows to display (0 = all)")
	cmd.Flags().StringVar(&opts.Table, "table", "", "Table to read from a database source")
	cmd.Flags().StringVar(&opts.Query, "query", "", "SQL query to run against a database source")
	cmd.Flags().StringVar(&opts.IndexCol, "index", "", "Column to use as the row labels")

	return cmd
}

func runShow(cmd *cobra.Command, target string, opts *ShowOptions) error {
	cc := newCommandContext(cmd)

	f, err := resolveFrame(cmd, cc, target, opts)
	if err != nil {
		return err
	}
	if opts.Limit > 0 {
		f = f.Head(opts.Limit)
	}

	return renderFrame(cmd.OutOrStdout(), f, renderOptions{
		Format:   cc.Cfg.Output,
		NullText: cc.Cfg.NullText,
	})
}

// resolveFrame loads the target as a file or connection string when it
// looks like one, and falls back to the named dataset in the data
// directory otherwise.
func resolveFrame(cmd *cobra.Command, cc *commandContext, target string, opts *ShowOptions) (*frame.Frame, error) {
	loadOpts := source.LoadOptions{
		Table:       opts.Table,
		Query:       opts.Query,
		IndexColumn: opts.IndexCol,
	}

	if isLocator(target) {
		return source.Load(cmd.Context(), target, loadOpts, cc.Logger)
	}

	e, err := cc.newEngine(cmd)
	if err != nil {
		return nil, err
	}
	f, err := e.Get(target)
	if err != nil {
		return nil, fmt.Errorf("dataset %q not found in %s: %w", target, cc.Cfg.DataDir, err)
	}
	if opts.IndexCol != "" {
		return f.SetIndex(opts.IndexCol)
	}
	return f, nil
}

// isLocator reports whether the target names a source directly rather
// than a dataset in the data directory.
func isLocator(target string) bool {
	if strings.Contains(target, "://") {
		return true
	}
	if _, err := os.Stat(target); err == nil {
		return true
	}
	return false
}

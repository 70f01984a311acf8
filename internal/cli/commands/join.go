package commands

import (
	"github.com/spf13/cobra"
	"github.com/tably-labs/tably/pkg/frame"
)

// JoinOptions holds the flag values for the join command.
type JoinOptions struct {
	On    []string
	How   string
	Limit int
}

// NewJoinCommand creates the join command.
func NewJoinCommand() *cobra.Command {
	opts := &JoinOptions{}

	cmd := &cobra.Command{
		Use:   "join <left> <right>",
		Short: "Join a dataset against another's row labels",
		Long: `Join the right dataset's row labels against columns of the left.

Without --on the left side is keyed by its own row labels. The default
policy is a left join, keeping every left row.`,
		Example: `  # Label-to-label join
  tably join wdi sq_miles

  # Key the left side by a column
  tably join wdi sq_miles --on country --how inner`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJoin(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.On, "on", nil, "Left-side key columns (default: row labels)")
	cmd.Flags().StringVar(&opts.How, "how", "left", "Join policy: left, right, inner, outer")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "Maximum rows to display (0 = all)")

	return cmd
}

func runJoin(cmd *cobra.Command, left, right string, opts *JoinOptions) error {
	cc := newCommandContext(cmd)

	how, err := frame.ParseHow(opts.How)
	if err != nil {
		return err
	}

	e, err := cc.newEngine(cmd)
	if err != nil {
		return err
	}
	result, err := e.Join(left, right, how, opts.On...)
	if err != nil {
		return err
	}
	if opts.Limit > 0 {
		result = result.Head(opts.Limit)
	}

	return renderFrame(cmd.OutOrStdout(), result, renderOptions{
		Format:   cc.Cfg.Output,
		NullText: cc.Cfg.NullText,
	})
}

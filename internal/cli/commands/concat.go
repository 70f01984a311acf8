package commands

import (
	"github.com/spf13/cobra"
	"github.com/tably-labs/tably/pkg/frame"
)

// ConcatOptions holds the flag values for the concat command.
type ConcatOptions struct {
	Axis  string
	Limit int
}

// NewConcatCommand creates the concat command.
func NewConcatCommand() *cobra.Command {
	opts := &ConcatOptions{}

	cmd := &cobra.Command{
		Use:   "concat <dataset>...",
		Short: "Stack datasets along an axis",
		Long: `Stack two or more datasets without any key matching.

Along rows (axis 0) the datasets are appended and their columns unioned.
Along columns (axis 1) they are placed side by side, aligned on row
labels. Cells absent from an input are filled with the missing marker.`,
		Example: `  # Append quarterly exports
  tably concat q1 q2 q3

  # Side-by-side by row label
  tably concat wdi sq_miles --axis columns`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConcat(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Axis, "axis", "rows", "Stack direction: 0/rows or 1/columns")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "Maximum rows to display (0 = all)")

	return cmd
}

func runConcat(cmd *cobra.Command, names []string, opts *ConcatOptions) error {
	cc := newCommandContext(cmd)

	axis, err := frame.ParseAxis(opts.Axis)
	if err != nil {
		return err
	}

	e, err := cc.newEngine(cmd)
	if err != nil {
		return err
	}
	result, err := e.Concat(axis, names...)
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

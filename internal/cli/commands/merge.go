package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tably-labs/tably/pkg/frame"
)

// MergeOptions holds the flag values for the merge command.
type MergeOptions struct {
	On         []string
	LeftOn     []string
	RightOn    []string
	LeftIndex  bool
	RightIndex bool
	How        string
	Suffixes   []string
	Limit      int
}

// NewMergeCommand creates the merge command.
func NewMergeCommand() *cobra.Command {
	opts := &MergeOptions{}

	cmd := &cobra.Command{
		Use:   "merge <left> <right>",
		Short: "Merge two datasets on key columns",
		Long: `Merge two datasets by aligning rows on key columns.

Without a key specification the datasets are merged on their common
column names. Unmatched rows are kept or dropped according to --how.`,
		Example: `  # Inner merge on shared columns
  tably merge wdi sq_miles

  # Outer merge on an explicit key
  tably merge wdi sq_miles --on country --how outer

  # Differently named keys
  tably merge orders customers --left-on customer_id --right-on id`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.On, "on", nil, "Key columns present on both sides")
	cmd.Flags().StringSliceVar(&opts.LeftOn, "left-on", nil, "Key columns on the left side")
	cmd.Flags().StringSliceVar(&opts.RightOn, "right-on", nil, "Key columns on the right side")
	cmd.Flags().BoolVar(&opts.LeftIndex, "left-index", false, "Use the left row labels as its key")
	cmd.Flags().BoolVar(&opts.RightIndex, "right-index", false, "Use the right row labels as its key")
	cmd.Flags().StringVar(&opts.How, "how", "", "Merge policy: left, right, inner, outer")
	cmd.Flags().StringSliceVar(&opts.Suffixes, "suffixes", nil, "Suffix pair for clashing column names")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "Maximum rows to display (0 = all)")

	_ = cmd.RegisterFlagCompletionFunc("how", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"left", "right", "inner", "outer"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runMerge(cmd *cobra.Command, left, right string, opts *MergeOptions) error {
	cc := newCommandContext(cmd)

	mergeOpts, err := opts.toFrameOptions(cc)
	if err != nil {
		return err
	}

	e, err := cc.newEngine(cmd)
	if err != nil {
		return err
	}
	result, err := e.Merge(left, right, mergeOpts)
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

// toFrameOptions translates flag values into merge options, filling
// unset fields from the configuration.
func (opts *MergeOptions) toFrameOptions(cc *commandContext) (frame.MergeOptions, error) {
	howText := opts.How
	if howText == "" {
		howText = cc.Cfg.How
	}
	how, err := frame.ParseHow(howText)
	if err != nil {
		return frame.MergeOptions{}, err
	}

	suffixes := cc.Cfg.SuffixPair()
	if len(opts.Suffixes) > 0 {
		if len(opts.Suffixes) != 2 {
			return frame.MergeOptions{}, fmt.Errorf("--suffixes wants exactly two entries, got %d", len(opts.Suffixes))
		}
		suffixes = [2]string{opts.Suffixes[0], opts.Suffixes[1]}
	}

	return frame.MergeOptions{
		On:         opts.On,
		LeftOn:     opts.LeftOn,
		RightOn:    opts.RightOn,
		LeftIndex:  opts.LeftIndex,
		RightIndex: opts.RightIndex,
		How:        how,
		Suffixes:   suffixes,
	}, nil
}

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/tably-labs/tably/internal/engine"
	"github.com/tably-labs/tably/internal/source"
	"github.com/tably-labs/tably/pkg/frame"
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive session over the data directory",
		Long: `Start an interactive session with all datasets loaded.

Statements operate on datasets by name (show, merge, join, concat, load,
drop); dot-commands inspect the session. The data directory is watched,
so CSV files edited while the session runs are reloaded.`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
}

func runREPL(cmd *cobra.Command, _ []string) error {
	cc := newCommandContext(cmd)
	e, err := cc.newEngine(cmd)
	if err != nil {
		return err
	}

	// Reload datasets edited while the session runs
	watchCtx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go func() {
		if err := e.Watch(watchCtx); err != nil && !errors.Is(err, context.Canceled) {
			cc.Logger.Warn("dataset watcher stopped", "error", err)
		}
	}()

	// History file lives next to the data it operates on
	historyFile := filepath.Join(cc.Cfg.DataDir, ".tably_history")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "tably> ",
		HistoryFile:     historyFile,
		AutoComplete:    newReplCompleter(e),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "tably session (data: %s, %d datasets)\n", cc.Cfg.DataDir, len(e.List()))
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	session := &replSession{cc: cc, engine: e}

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if session.handleDotCommand(cmd, line) {
				if line == ".quit" || line == ".exit" {
					break
				}
				continue
			}
		}

		if err := session.eval(cmd, line); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout())
	}

	return nil
}

// replSession evaluates statements against the workspace engine.
type replSession struct {
	cc     *commandContext
	engine *engine.Engine
}

func (s *replSession) render(cmd *cobra.Command, f *frame.Frame) error {
	return renderFrame(cmd.OutOrStdout(), f, renderOptions{
		Format:   s.cc.Cfg.Output,
		NullText: s.cc.Cfg.NullText,
	})
}

// eval parses and executes one statement. The grammar is positional
// words followed by keyword arguments (on, how, axis), e.g.
//
//	merge wdi sq_miles on country how outer
func (s *replSession) eval(cmd *cobra.Command, line string) error {
	words, kwargs, err := splitStatement(line)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return fmt.Errorf("empty statement")
	}

	verb := strings.ToLower(words[0])
	args := words[1:]

	switch verb {
	case "show":
		return s.evalShow(cmd, args, kwargs)
	case "merge":
		return s.evalCombine(cmd, args, kwargs, false)
	case "join":
		return s.evalCombine(cmd, args, kwargs, true)
	case "concat":
		return s.evalConcat(cmd, args, kwargs)
	case "load":
		return s.evalLoad(cmd, args)
	case "drop":
		if len(args) != 1 {
			return fmt.Errorf("usage: drop <dataset>")
		}
		s.engine.Drop(args[0])
		return nil
	default:
		return fmt.Errorf("unknown statement %q (type .help for syntax)", verb)
	}
}

func (s *replSession) evalShow(cmd *cobra.Command, args []string, kwargs map[string]string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: show <dataset> [rows]")
	}
	f, err := s.engine.Get(args[0])
	if err != nil {
		return err
	}
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid row count %q: %w", args[1], err)
		}
		f = f.Head(n)
	}
	if index, ok := kwargs["index"]; ok {
		if f, err = f.SetIndex(index); err != nil {
			return err
		}
	}
	return s.render(cmd, f)
}

func (s *replSession) evalCombine(cmd *cobra.Command, args []string, kwargs map[string]string, labelJoin bool) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: merge|join <left> <right> [on <cols>] [how <policy>]")
	}

	var on []string
	if v, ok := kwargs["on"]; ok {
		on = strings.Split(v, ",")
	}

	if labelJoin {
		how := frame.HowLeft
		if v, ok := kwargs["how"]; ok {
			parsed, err := frame.ParseHow(v)
			if err != nil {
				return err
			}
			how = parsed
		}
		result, err := s.engine.Join(args[0], args[1], how, on...)
		if err != nil {
			return err
		}
		return s.render(cmd, result)
	}

	how, err := frame.ParseHow(s.cc.Cfg.How)
	if err != nil {
		return err
	}
	if v, ok := kwargs["how"]; ok {
		if how, err = frame.ParseHow(v); err != nil {
			return err
		}
	}
	result, err := s.engine.Merge(args[0], args[1], frame.MergeOptions{
		On:       on,
		How:      how,
		Suffixes: s.cc.Cfg.SuffixPair(),
	})
	if err != nil {
		return err
	}
	return s.render(cmd, result)
}

func (s *replSession) evalConcat(cmd *cobra.Command, args []string, kwargs map[string]string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: concat <dataset> <dataset>... [axis rows|columns]")
	}
	axis := frame.AxisRows
	if v, ok := kwargs["axis"]; ok {
		parsed, err := frame.ParseAxis(v)
		if err != nil {
			return err
		}
		axis = parsed
	}
	result, err := s.engine.Concat(axis, args...)
	if err != nil {
		return err
	}
	return s.render(cmd, result)
}

func (s *replSession) evalLoad(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: load <name> <path>")
	}
	if err := s.engine.Load(cmd.Context(), args[0], args[1], source.LoadOptions{}); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Loaded %s\n", args[0])
	return nil
}

// replKeywords are statement words that consume the following token.
var replKeywords = map[string]bool{"on": true, "how": true, "axis": true, "index": true}

// splitStatement separates positional words from keyword arguments.
func splitStatement(line string) ([]string, map[string]string, error) {
	fields := strings.Fields(line)
	var words []string
	kwargs := make(map[string]string)
	for i := 0; i < len(fields); i++ {
		word := strings.ToLower(fields[i])
		if !replKeywords[word] {
			words = append(words, fields[i])
			continue
		}
		if i+1 >= len(fields) {
			return nil, nil, fmt.Errorf("%s wants an argument", word)
		}
		kwargs[word] = fields[i+1]
		i++
	}
	return words, kwargs, nil
}

func (s *replSession) handleDotCommand(cmd *cobra.Command, line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(cmd.OutOrStdout())
		return true

	case ".datasets":
		if err := s.printDatasets(cmd.OutOrStdout()); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return true

	case ".schema":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Usage: .schema <dataset>")
			return true
		}
		if err := s.printSchema(cmd.OutOrStdout(), parts[1]); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return true

	case ".clear":
		fmt.Print("\033[H\033[2J")
		return true

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type .help for commands)\n", command)
		return true
	}
}

func (s *replSession) printDatasets(w io.Writer) error {
	names := s.engine.List()
	if len(names) == 0 {
		_, _ = fmt.Fprintln(w, "(no datasets)")
		return nil
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Dataset", "Rows", "Columns"})
	for _, name := range names {
		f, err := s.engine.Get(name)
		if err != nil {
			return err
		}
		t.AppendRow(table.Row{name, f.RowCount(), f.NumColumns()})
	}
	t.Render()
	return nil
}

func (s *replSession) printSchema(w io.Writer, name string) error {
	f, err := s.engine.Get(name)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "Dataset: %s (%d rows)\n", name, f.RowCount())

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Column", "Kind"})
	index := f.Index()
	if !index.IsRange() {
		label := index.Name
		if label == "" {
			label = "(index)"
		}
		t.AppendRow(table.Row{label, "index"})
	}
	for _, c := range f.Columns() {
		t.AppendRow(table.Row{c.Name, c.Kind.String()})
	}
	t.Render()
	return nil
}

func printREPLHelp(w io.Writer) {
	help := `
Statements:
  show <dataset> [rows] [index <col>]        Render a dataset
  merge <l> <r> [on <cols>] [how <policy>]   Merge on key columns
  join <l> <r> [on <cols>] [how <policy>]    Join against right row labels
  concat <ds> <ds>... [axis rows|columns]    Stack datasets
  load <name> <path>                         Load a dataset from a file
  drop <name>                                Remove a dataset

Commands:
  .help              Show this help message
  .datasets          List datasets with shapes
  .schema <dataset>  Show column names and kinds
  .clear             Clear the screen
  .quit / .exit      Exit the session

Tips:
  - Key lists are comma separated: on country,year
  - Use arrow keys to navigate history
  - Tab completion works for dataset names
`
	_, _ = fmt.Fprintln(w, help)
}

// newReplCompleter creates a readline completer over dataset names.
func newReplCompleter(e *engine.Engine) *readline.PrefixCompleter {
	datasets := func(string) []string { return e.List() }

	items := []readline.PrefixCompleterInterface{
		readline.PcItem("show", readline.PcItemDynamic(datasets)),
		readline.PcItem("merge", readline.PcItemDynamic(datasets, readline.PcItemDynamic(datasets))),
		readline.PcItem("join", readline.PcItemDynamic(datasets, readline.PcItemDynamic(datasets))),
		readline.PcItem("concat", readline.PcItemDynamic(datasets, readline.PcItemDynamic(datasets))),
		readline.PcItem("load"),
		readline.PcItem("drop", readline.PcItemDynamic(datasets)),
		readline.PcItem(".help"),
		readline.PcItem(".datasets"),
		readline.PcItem(".schema", readline.PcItemDynamic(datasets)),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	}

	return readline.NewPrefixCompleter(items...)
}

package commands

import (
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewDatasetsCommand creates the datasets command.
func NewDatasetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List datasets in the data directory",
		Long:  `List the datasets loaded from the data directory with their shapes.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDatasets(cmd)
		},
	}
}

type datasetInfo struct {
	Name    string `json:"name"`
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
}

func runDatasets(cmd *cobra.Command) error {
	cc := newCommandContext(cmd)
	e, err := cc.newEngine(cmd)
	if err != nil {
		return err
	}

	var infos []datasetInfo
	for _, name := range e.List() {
		f, err := e.Get(name)
		if err != nil {
			return err
		}
		infos = append(infos, datasetInfo{Name: name, Rows: f.RowCount(), Columns: f.NumColumns()})
	}

	w := cmd.OutOrStdout()
	if cc.Cfg.Output == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	if len(infos) == 0 {
		_, _ = fmt.Fprintf(w, "No datasets found in %s\n", cc.Cfg.DataDir)
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Dataset", "Rows", "Columns"})
	for _, info := range infos {
		t.AppendRow(table.Row{info.Name, info.Rows, info.Columns})
	}
	t.Render()
	return nil
}

// Package commands implements the tably subcommands.
package commands

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/tably-labs/tably/internal/cli/config"
	"github.com/tably-labs/tably/internal/engine"
)

// commandContext bundles the pieces every subcommand needs.
type commandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
}

func newCommandContext(cmd *cobra.Command) *commandContext {
	return &commandContext{
		Cfg:    config.GetCurrentConfig(),
		Logger: config.GetLogger(cmd.Context()),
	}
}

// newEngine creates a workspace engine from the current configuration
// with all datasets in the data directory loaded.
func (cc *commandContext) newEngine(cmd *cobra.Command) (*engine.Engine, error) {
	e := engine.New(engine.Config{
		DataDir: cc.Cfg.DataDir,
		Logger:  cc.Logger,
	})
	if err := e.LoadDatasets(cmd.Context()); err != nil {
		return nil, err
	}
	return e, nil
}

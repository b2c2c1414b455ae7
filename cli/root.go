// Package cli implements the dock command tree.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tikz/dock/config"
	"github.com/tikz/dock/logging"
)

// Version is set at build time.
var Version = "dev"

type rootOptions struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
	Output     string
}

// app carries the loaded configuration and logger to the subcommands.
type app struct {
	opts rootOptions
	cfg  *config.Config
	log  *zap.Logger
	out  io.Writer
}

// NewRootCommand creates the dock root command with all subcommands.
func NewRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:     "dock",
		Short:   "Docking preparation and pose analysis",
		Long:    "dock prepares docking search boxes, assembles receptor-ligand complexes and\nprofiles docked poses: ligand efficiency and protein-ligand interactions.",
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&a.opts.ConfigPath, "config", "c", "", "config file path (YAML)")
	pf.StringVar(&a.opts.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&a.opts.LogFormat, "log-format", "", "log format (json, console)")
	pf.StringVarP(&a.opts.Output, "output", "o", "text", "output format (text, table, json, yaml)")

	cmd.AddCommand(
		newBoxCommand(a),
		newComplexCommand(a),
		newEfficiencyCommand(a),
		newInteractionsCommand(a),
		newFetchCommand(a),
		newCleanCommand(a),
	)
	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().ExecuteContext(context.Background())
}

func (a *app) init(cmd *cobra.Command) error {
	switch a.opts.Output {
	case "text", "table", "json", "yaml":
	default:
		return fmt.Errorf("invalid output format %q (must be text|table|json|yaml)", a.opts.Output)
	}

	var err error
	if a.opts.ConfigPath != "" {
		a.cfg, err = config.Load(a.opts.ConfigPath)
	} else {
		a.cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	if a.opts.LogLevel != "" {
		a.cfg.Log.Level = a.opts.LogLevel
	}
	if a.opts.LogFormat != "" {
		a.cfg.Log.Format = a.opts.LogFormat
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	a.log, err = logging.New(a.cfg.Log)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.WithContext(ctx, a.log))
	a.out = cmd.OutOrStdout()
	return nil
}

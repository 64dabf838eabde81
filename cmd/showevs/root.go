package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dshills/devinput/internal/config"
	"github.com/dshills/devinput/internal/logging"
)

// globalOptions are the persistent flags shared by all commands.
type globalOptions struct {
	logLevel  string
	logFormat string
	selection string
}

// apply overrides cfg with the log flags that were set.
func (o *globalOptions) apply(cfg config.LogConfig) config.LogConfig {
	if o.logLevel != "" {
		cfg.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Format = o.logFormat
	}
	return cfg
}

func (o *globalOptions) logger(cfg config.LogConfig, w io.Writer) (zerolog.Logger, error) {
	return logging.New(o.apply(cfg), w)
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:   "showevs",
		Short: "Show input events delivered to device manager listeners",
		Long: `showevs drives a device manager and prints every event delivered to its
listeners as one JSON object per line.

The replay command runs a scripted session against a simulated device
manager. The term command reads keyboard and mouse input from the terminal.`,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (trace, debug, info, warn, error, disabled)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format (json, console); default depends on whether stderr is a terminal")
	cmd.PersistentFlags().StringVar(&opts.selection, "select", "", "gjson path applied to every event line, such as '{listener,key,type}'")

	cmd.AddCommand(newReplayCmd(opts))
	cmd.AddCommand(newTermCmd(opts))
	return cmd
}

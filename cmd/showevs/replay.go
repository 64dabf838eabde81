package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/devinput/internal/config"
	"github.com/dshills/devinput/internal/session"
)

func newReplayCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <session-file>",
		Short: "Replay a scripted session against the simulated device manager",
		Long: `Replay loads a TOML or YAML session file, registers its listeners on a
simulated device manager and executes its script. Every event delivered to a
listener is printed to standard output as a JSON line.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := config.Load(args[0])
			if err != nil {
				return err
			}
			logger, err := opts.logger(s.Log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			out := session.NewSelectWriter(cmd.OutOrStdout(), opts.selection)
			r, err := session.New(s, out, session.WithLogger(logger))
			if err != nil {
				return err
			}
			defer r.Close()

			if err := r.Run(cmd.Context()); err != nil {
				return err
			}
			logger.Info().
				Int("steps", len(s.Script)).
				Int("rejected", r.Rejected()).
				Msg("session replayed")
			return nil
		},
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/devinput/internal/config"
	"github.com/dshills/devinput/internal/input"
	"github.com/dshills/devinput/internal/input/ev"
	terminput "github.com/dshills/devinput/internal/input/term"
	"github.com/dshills/devinput/internal/session"
)

// ErrNotTerminal is returned by the term command without an interactive
// terminal.
var ErrNotTerminal = errors.New("standard input is not a terminal")

type termOptions struct {
	output  string
	logFile string
}

func newTermCmd(opts *globalOptions) *cobra.Command {
	topts := &termOptions{}
	cmd := &cobra.Command{
		Use:   "term",
		Short: "Show keyboard and mouse events read from the terminal",
		Long: `Term takes over the terminal and shows the events of its keyboard and
pointer devices as JSON lines. Terminals report no key releases, so each key
is shown as a press immediately followed by a release.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return ErrNotTerminal
			}

			logger := zerolog.Nop()
			if topts.logFile != "" {
				f, err := os.OpenFile(topts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
				if err != nil {
					return fmt.Errorf("opening log file: %w", err)
				}
				defer f.Close()
				if logger, err = opts.logger(config.LogConfig{Level: "info", Format: "json"}, f); err != nil {
					return err
				}
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("creating screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("initializing screen: %w", err)
			}
			defer screen.Fini()
			screen.EnableMouse()

			view := newEventView(screen)
			view.draw()
			var sink io.Writer = view
			if topts.output != "" {
				f, err := os.Create(topts.output)
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				defer f.Close()
				sink = io.MultiWriter(view, f)
			}
			sink = session.NewSelectWriter(sink, opts.selection)

			return runTerm(cmd.Context(), screen, sink, logger)
		},
	}
	cmd.Flags().StringVarP(&topts.output, "output", "o", "", "also write event lines to this file")
	cmd.Flags().StringVar(&topts.logFile, "log-file", "", "write logs to this file")
	return cmd
}

// runTerm feeds screen events through a terminal device manager until q or
// Ctrl-C is pressed, ctx ends or the screen is finalized.
func runTerm(ctx context.Context, screen tcell.Screen, sink io.Writer, logger zerolog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := terminput.New(screen, terminput.WithLogger(logger))
	defer m.Close()

	seq := 0
	ctrl := false
	l := input.NewListener(func(e input.Event) {
		seq++
		if line, err := session.EncodeEvent("term", seq, e); err == nil {
			_, _ = sink.Write(append(line, '\n'))
		}
		k, ok := e.(*ev.KeyEvent)
		if !ok {
			return
		}
		switch {
		case k.Key() == ev.KeyLeftCtrl:
			ctrl = k.Type() == ev.KeyPress
		case k.Type() != ev.KeyPress:
		case k.Key() == ev.KeyQ, ctrl && k.Key() == ev.KeyC:
			cancel()
		}
	})
	defer runtime.KeepAlive(l)
	m.AddListener(l, nil)

	err := m.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/fonotes/internal/app"
	"github.com/example/fonotes/internal/hotkey"
	"github.com/example/fonotes/internal/native"
)

var newKeySource = hotkey.NewSource

type runCmd struct {
	*root
	fs      *flag.FlagSet
	backend string
}

func (c *runCmd) Program() string        { return c.subcommand("run") }
func (c *runCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseRunCmd(args []string, r *root) (*runCmd, error) {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	c := &runCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.backend, "backend", defaultBackend, "window backend (x11, shiny)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

// Run listens for the chord on its own goroutine and serves notes until
// interrupted or the display goes away.
func (c *runCmd) Run() error {
	chord, err := hotkey.ParseChord(c.config.Note.Chord)
	if err != nil {
		return fmt.Errorf("note chord: %w", err)
	}
	presenter, err := newPresenter(c.config.Note)
	if err != nil {
		return err
	}
	src, err := newKeySource()
	if err != nil {
		return fmt.Errorf("listen for keys: %w", err)
	}

	return withPlatform(c.backend, func(p native.Platform) error {
		d := app.New(p, presenter, app.WithNotifier(c.notifier))
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		l := &hotkey.Listener{
			Source:  src,
			Capture: captureClipboard,
			Submit:  d,
			Trigger: chord.Held,
			Window:  windowConfig(c.config.Note),
		}
		go func() {
			err := l.Run(ctx)
			if err != nil {
				slog.Error("key listener stopped", "err", err)
				p.Send(native.Shutdown{Err: err})
				return
			}
			p.Send(native.Shutdown{})
		}()

		slog.Info("listening", "chord", chord.String(), "backend", c.backend)
		return d.Run()
	})
}

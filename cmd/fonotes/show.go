package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/example/fonotes/internal/app"
	"github.com/example/fonotes/internal/native"
	"github.com/example/fonotes/internal/note"
	"github.com/example/fonotes/internal/snapshot"
)

type showCmd struct {
	*root
	fs      *flag.FlagSet
	text    string
	file    string
	backend string
}

func (c *showCmd) Program() string        { return c.subcommand("show") }
func (c *showCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseShowCmd(args []string, r *root) (*showCmd, error) {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	c := &showCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.text, "text", "", "show this text instead of the clipboard")
	fs.StringVar(&c.file, "file", "", "show this image file instead of the clipboard")
	fs.StringVar(&c.backend, "backend", defaultBackend, "window backend (x11, shiny)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 || (c.text != "" && c.file != "") {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *showCmd) content() (snapshot.Snapshot, error) {
	switch {
	case c.file != "":
		f, err := os.Open(c.file)
		if err != nil {
			return snapshot.Snapshot{}, err
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		if err != nil {
			return snapshot.Snapshot{}, fmt.Errorf("decode %s: %w", c.file, err)
		}
		return snapshot.FromImage(img), nil
	case c.text != "":
		return snapshot.Text(c.text), nil
	}
	return captureClipboard(), nil
}

// Run opens a single note and returns once it has been closed.
func (c *showCmd) Run() error {
	content, err := c.content()
	if err != nil {
		return err
	}
	presenter, err := newPresenter(c.config.Note)
	if err != nil {
		return err
	}
	return withPlatform(c.backend, func(p native.Platform) error {
		d := app.New(p, presenter, app.WithNotifier(c.notifier), app.WithExitWhenEmpty())
		d.Submit(note.NewRequest(windowConfig(c.config.Note), content))
		return d.Run()
	})
}

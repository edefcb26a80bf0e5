package main

import (
	"fmt"

	"github.com/example/fonotes/internal/clipboard"
	"github.com/example/fonotes/internal/config"
	"github.com/example/fonotes/internal/native"
	"github.com/example/fonotes/internal/native/shinydrv"
	"github.com/example/fonotes/internal/note"
	"github.com/example/fonotes/internal/render"
	"github.com/example/fonotes/internal/snapshot"
)

// withPlatform opens the named backend, runs f on it and releases it.
var withPlatform = func(backend string, f func(native.Platform) error) error {
	switch backend {
	case "shiny":
		var err error
		shinydrv.Main(func(p native.Platform) { err = f(p) })
		return err
	case "x11":
		p, err := openX11()
		if err != nil {
			return fmt.Errorf("open x11 display: %w", err)
		}
		defer p.Release()
		return f(p)
	}
	return fmt.Errorf("unknown backend %q", backend)
}

var captureClipboard = func() snapshot.Snapshot {
	return clipboard.Capture(clipboard.System{})
}

func windowConfig(n config.Note) native.WindowConfig {
	w := note.DefaultWindow()
	w.Width, w.Height = n.Width, n.Height
	w.MinWidth, w.MinHeight = n.MinWidth, n.MinHeight
	w.AlwaysOnTop = n.AlwaysOnTop
	w.Resizable = n.Resizable
	return w
}

func style(n config.Note) render.Style {
	s := render.DefaultStyle()
	s.Background = n.Background
	s.Foreground = n.Foreground
	s.CloseFill = n.CloseFill
	s.CloseGlyph = n.CloseGlyph
	s.LineSpacing = n.LineSpacing
	s.Fit = render.ParseFit(n.ImageFit)
	return s
}

func newPresenter(n config.Note) (*render.Presenter, error) {
	fonts, err := render.LoadFonts(n.Font)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return render.NewPresenter(style(n), fonts), nil
}

// Package config loads fonotes settings from an rc-format file.
package config

import (
	"fmt"
	"image/color"
	"strings"
)

// Note holds the window and drawing settings applied to every new note.
type Note struct {
	Width       int
	Height      int
	MinWidth    int
	MinHeight   int
	AlwaysOnTop bool
	Resizable   bool
	Background  color.NRGBA
	Foreground  color.NRGBA
	CloseFill   color.NRGBA
	CloseGlyph  color.NRGBA
	LineSpacing float64
	ImageFit    string
	Font        string
	Chord       string
}

// Notify holds notification settings.
type Notify struct {
	Capture bool
	Close   bool
}

// Log holds logger settings.
type Log struct {
	Level  string
	Format string
}

// Config holds the application configuration.
type Config struct {
	Note   Note
	Notify Notify
	Log    Log
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Note: Note{
			Width:       800,
			Height:      600,
			MinWidth:    50,
			MinHeight:   50,
			AlwaysOnTop: true,
			Resizable:   true,
			Background:  color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF},
			Foreground:  color.NRGBA{0x00, 0x00, 0x00, 0xFF},
			CloseFill:   color.NRGBA{220, 80, 80, 150},
			CloseGlyph:  color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF},
			LineSpacing: 1.2,
			ImageFit:    "stretch",
			Chord:       "ctrl+alt+n",
		},
		Log: Log{Level: "info", Format: "auto"},
	}
}

// ApplyEnv overlays environment settings read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("FONOTES_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder
	n := c.Note

	sb.WriteString("[note]\n")
	fmt.Fprintf(&sb, "width = %d\n", n.Width)
	fmt.Fprintf(&sb, "height = %d\n", n.Height)
	fmt.Fprintf(&sb, "min_width = %d\n", n.MinWidth)
	fmt.Fprintf(&sb, "min_height = %d\n", n.MinHeight)
	fmt.Fprintf(&sb, "always_on_top = %v\n", n.AlwaysOnTop)
	fmt.Fprintf(&sb, "resizable = %v\n", n.Resizable)
	fmt.Fprintf(&sb, "background = %s\n", toHex(n.Background))
	fmt.Fprintf(&sb, "foreground = %s\n", toHex(n.Foreground))
	fmt.Fprintf(&sb, "close_fill = %s\n", toHex(n.CloseFill))
	fmt.Fprintf(&sb, "close_glyph = %s\n", toHex(n.CloseGlyph))
	fmt.Fprintf(&sb, "line_spacing = %g\n", n.LineSpacing)
	fmt.Fprintf(&sb, "image_fit = %s\n", n.ImageFit)
	if n.Font != "" {
		fmt.Fprintf(&sb, "font = %s\n", n.Font)
	}
	fmt.Fprintf(&sb, "chord = %s\n", n.Chord)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "capture = %v\n", c.Notify.Capture)
	fmt.Fprintf(&sb, "close = %v\n", c.Notify.Close)
	sb.WriteString("\n")

	sb.WriteString("[log]\n")
	fmt.Fprintf(&sb, "level = %s\n", c.Log.Level)
	fmt.Fprintf(&sb, "format = %s\n", c.Log.Format)

	return sb.String()
}

func toHex(c color.NRGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

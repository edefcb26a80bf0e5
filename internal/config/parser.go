package config

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"
)

// Parse reads configuration from an io.Reader. Unknown sections and keys
// are ignored.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var section string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToLower(strings.TrimSpace(line[1 : len(line)-1]))
			continue
		}

		// key = value or key: value
		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.TrimSpace(parts[1])
		if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
			value = value[1 : len(value)-1]
		}

		var err error
		switch section {
		case "note":
			err = setNoteField(&cfg.Note, key, value)
		case "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case "log":
			setLogField(&cfg.Log, key, value)
		}
		if err != nil {
			return nil, fmt.Errorf("error in section [%s]: %w", section, err)
		}
	}

	return cfg, scanner.Err()
}

func setNoteField(n *Note, key, value string) error {
	var err error
	switch key {
	case "width":
		n.Width, err = parseSize(key, value)
	case "height":
		n.Height, err = parseSize(key, value)
	case "min_width":
		n.MinWidth, err = parseSize(key, value)
	case "min_height":
		n.MinHeight, err = parseSize(key, value)
	case "always_on_top":
		n.AlwaysOnTop, err = parseBool(key, value)
	case "resizable":
		n.Resizable, err = parseBool(key, value)
	case "background":
		n.Background, err = parseColor(key, value)
	case "foreground":
		n.Foreground, err = parseColor(key, value)
	case "close_fill":
		n.CloseFill, err = parseColor(key, value)
	case "close_glyph":
		n.CloseGlyph, err = parseColor(key, value)
	case "line_spacing":
		n.LineSpacing, err = strconv.ParseFloat(value, 64)
		if err == nil && n.LineSpacing <= 0 {
			err = fmt.Errorf("line_spacing must be positive")
		}
		if err != nil {
			err = fmt.Errorf("invalid value for key %s: %w", key, err)
		}
	case "image_fit":
		switch strings.ToLower(value) {
		case "stretch", "contain":
			n.ImageFit = strings.ToLower(value)
		default:
			err = fmt.Errorf("invalid image_fit %q", value)
		}
	case "font":
		n.Font = value
	case "chord":
		n.Chord = value
	}
	return err
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := parseBool(key, value)
	if err != nil {
		return err
	}
	switch key {
	case "capture":
		n.Capture = b
	case "close":
		n.Close = b
	}
	return nil
}

func setLogField(l *Log, key, value string) {
	switch key {
	case "level":
		l.Level = value
	case "format":
		l.Format = value
	}
}

func parseBool(key, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	return b, nil
}

func parseSize(key, value string) (int, error) {
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for key %s: %w", key, err)
	}
	if v <= 0 || v > 0xffff {
		return 0, fmt.Errorf("key %s out of range: %d", key, v)
	}
	return v, nil
}

// parseColor parses #RRGGBB or #RRGGBBAA. Alpha is straight, not
// premultiplied.
func parseColor(key, s string) (color.NRGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.NRGBA{}, fmt.Errorf("invalid color for key %s: must start with #", key)
	}
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color for key %s: invalid hex length", key)
	}
	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color for key %s: %w", key, err)
	}
	if len(hex) == 6 {
		return color.NRGBA{R: uint8(val >> 16), G: uint8(val >> 8), B: uint8(val), A: 0xFF}, nil
	}
	return color.NRGBA{R: uint8(val >> 24), G: uint8(val >> 16), B: uint8(val >> 8), A: uint8(val)}, nil
}

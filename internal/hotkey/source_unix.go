//go:build linux || freebsd || openbsd || netbsd || dragonfly

package hotkey

import (
	"context"
	"fmt"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"golang.org/x/mobile/event/key"
)

const pollInterval = 15 * time.Millisecond

type x11Source struct {
	interval time.Duration
}

// NewSource returns the global key source for this platform. On X11 it
// polls the server keymap on a private connection, so no grab is taken and
// other applications still receive the keys. A key pressed and released
// within one poll interval (15ms) is never seen, so a very fast tap of the
// chord's last key can be missed.
func NewSource() (Source, error) {
	return &x11Source{interval: pollInterval}, nil
}

func (s *x11Source) Listen(ctx context.Context, fn func(Event)) error {
	conn, err := xgb.NewConn()
	if err != nil {
		return fmt.Errorf("connect X server: %w", err)
	}
	defer conn.Close()

	table, err := keycodeTable(conn)
	if err != nil {
		return err
	}
	emit := translate(table, fn)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var prev []byte
	for {
		reply, err := xproto.QueryKeymap(conn).Reply()
		if err != nil {
			return fmt.Errorf("query keymap: %w", err)
		}
		// Keys already held at startup are the baseline, not presses.
		if prev != nil {
			diffKeymap(prev, reply.Keys, emit)
		}
		prev = reply.Keys

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func keycodeTable(conn *xgb.Conn) ([]key.Code, error) {
	setup := xproto.Setup(conn)
	if setup == nil {
		return nil, fmt.Errorf("xproto setup unavailable")
	}
	first, last := setup.MinKeycode, setup.MaxKeycode
	count := byte(last - first + 1)
	reply, err := xproto.GetKeyboardMapping(conn, first, count).Reply()
	if err != nil {
		return nil, fmt.Errorf("keyboard mapping: %w", err)
	}
	per := int(reply.KeysymsPerKeycode)
	if per == 0 {
		return nil, fmt.Errorf("keyboard mapping: no keysyms")
	}
	table := make([]key.Code, 256)
	for i := 0; i < int(count); i++ {
		row := reply.Keysyms[i*per : (i+1)*per]
		for _, sym := range row[:min(2, per)] {
			if code := codeForKeysym(uint32(sym)); code != key.CodeUnknown {
				table[int(first)+i] = code
				break
			}
		}
	}
	return table, nil
}

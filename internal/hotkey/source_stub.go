//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package hotkey

// NewSource reports that no global key source is available.
func NewSource() (Source, error) {
	return nil, ErrUnsupported
}

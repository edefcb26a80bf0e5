//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package main

import "github.com/example/fonotes/internal/native"

const defaultBackend = "shiny"

func openX11() (native.Platform, error) { return nil, native.ErrUnsupported }

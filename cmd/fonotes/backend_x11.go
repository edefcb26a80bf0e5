//go:build linux || freebsd || openbsd || netbsd || dragonfly

package main

import (
	"github.com/example/fonotes/internal/native"
	"github.com/example/fonotes/internal/native/x11"
)

const defaultBackend = "x11"

func openX11() (native.Platform, error) { return x11.Open() }

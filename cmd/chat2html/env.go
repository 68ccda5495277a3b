package main

import (
	"io"
	"os"
	"time"

	chat2html "github.com/alnah/go-chat2html"
	"github.com/alnah/go-chat2html/internal/config"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, base configuration, and converter construction.
type Environment struct {
	Now          func() time.Time
	Stdout       io.Writer
	Stderr       io.Writer
	Config       *config.Config // Used when no config file is named
	NewConverter func(opts ...chat2html.Option) (Converter, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:          time.Now,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Config:       config.DefaultConfig(),
		NewConverter: newLibraryConverter,
	}
}

// newLibraryConverter builds the library converter behind the CLI interface.
func newLibraryConverter(opts ...chat2html.Option) (Converter, error) {
	c, err := chat2html.NewConverter(opts...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

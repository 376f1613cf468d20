package main

import (
	"context"
	"io"
	"os"
	"time"

	paperexport "github.com/alnah/go-paperexport"
)

// exporter is the part of *paperexport.Exporter the commands use.
type exporter interface {
	Export(ctx context.Context, input paperexport.Input) (*paperexport.Result, error)
	Merge(ctx context.Context, files []paperexport.File) (*paperexport.MergeResult, error)
	Close() error
}

// Environment holds injectable dependencies for testability.
// Includes I/O, time, and the exporter constructor.
type Environment struct {
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
	NewExporter func(opts ...paperexport.Option) (exporter, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewExporter: func(opts ...paperexport.Option) (exporter, error) {
			return paperexport.NewExporter(opts...)
		},
	}
}

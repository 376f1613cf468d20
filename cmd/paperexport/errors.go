package main

import (
	"context"
	"errors"
	"fmt"

	paperexport "github.com/alnah/go-paperexport"
	"github.com/alnah/go-paperexport/internal/config"
	"github.com/alnah/go-paperexport/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("invalid usage")
	ErrNoVault        = errors.New("vault directory not set or not found")
	ErrOutsideVault   = errors.New("note is outside the vault")
	ErrInvalidTimeout = errors.New("invalid timeout")
	ErrWriteOutput    = errors.New("failed to write output file")
)

// withHint appends an actionable hint to err when one applies.
// The result still matches the original sentinels with errors.Is.
func withHint(err error, cfg *config.Config) error {
	if err == nil {
		return nil
	}
	var hint string
	switch {
	case errors.Is(err, paperexport.ErrBrowserConnect):
		hint = hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		hint = hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		hint = hints.ForConfigNotFound(userConfigPaths())
	case errors.Is(err, ErrNoVault):
		hint = hints.ForVault()
	case errors.Is(err, paperexport.ErrNoChapters):
		folder := ""
		if cfg != nil && cfg.Citations.Enabled {
			folder = cfg.Citations.SourcesFolderPath
		}
		hint = hints.ForNoChapters(folder)
	case errors.Is(err, ErrWriteOutput):
		hint = hints.ForOutputDirectory()
	}
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}

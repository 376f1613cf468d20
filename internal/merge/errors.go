package merge

import "errors"

// Sentinel errors for merge operations.
var (
	ErrReadFile  = errors.New("failed to read note")
	ErrListFiles = errors.New("failed to list notes")
	ErrNilStore  = errors.New("store cannot be nil")
)

package domain

import "errors"

var (
	ErrNoSamples     = errors.New("no samples")
	ErrInvalidNumber = errors.New("invalid number")
	ErrNonFinite     = errors.New("non-finite value")
	ErrNoMatch       = errors.New("no match")
	ErrInvalidRate   = errors.New("invalid rate")
	ErrZeroMean      = errors.New("zero mean")
	ErrInvalidSource = errors.New("invalid source")
)

package application

import "errors"

var (
	ErrCycleInProgress = errors.New("fetch cycle already in progress")
	ErrFetch           = errors.New("fetch failed")
	ErrBrowser         = errors.New("browser automation failed")
	ErrNoExtractor     = errors.New("no extractor for strategy")
)

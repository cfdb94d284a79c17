package shared

import "errors"

var (
	// Configuration errors
	ErrMissingConfig = errors.New("configuration not found")
	ErrInvalidConfig = errors.New("invalid configuration")

	// Lineup acquisition errors
	ErrAPIRequest         = errors.New("lineup request failed")
	ErrServiceUnavailable = errors.New("festival service unavailable")
	ErrDecode             = errors.New("unreadable lineup response")
	ErrSchema             = errors.New("unrecognized lineup shape")
	ErrNotFound           = errors.New("not found")

	// Export errors
	ErrExport           = errors.New("poster export failed")
	ErrExportInProgress = errors.New("poster export already in progress")

	// Input validation errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrMissingArgument = errors.New("missing required argument")
	ErrInvalidArgument = errors.New("invalid argument")
)

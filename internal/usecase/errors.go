package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("authentication required")
	ErrAmbiguous             = errors.New("ambiguous player name")
	ErrDataUnavailable       = errors.New("reference data not available")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

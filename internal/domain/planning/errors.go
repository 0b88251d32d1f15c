package planning

import "errors"

// Planning domain errors
var (
	ErrInvalidSheet = errors.New("planning sheet could not be parsed")
	ErrEmptySheet   = errors.New("planning sheet contains no entries")
)

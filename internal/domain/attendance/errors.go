package attendance

import "errors"

// Attendance domain errors
var (
	// Punch-in errors
	ErrAlreadyPunchedIn      = errors.New("entry already recorded for today")
	ErrAlreadyCompletedToday = errors.New("entry and exit already recorded for today")

	// Punch-out errors
	ErrNoEntryToday      = errors.New("no entry recorded for today")
	ErrAlreadyPunchedOut = errors.New("exit already recorded for today")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
)

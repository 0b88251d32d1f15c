package attendance

import (
	"time"
)

// DefaultShift labels records punched in without an explicit shift.
const DefaultShift = "JOUR"

// AttendanceRecord is one calendar-day presence window for one worker.
// Entry and exit are times of day in "HH:MM:SS" form; WorkedMinutes is set
// exactly once, at punch-out, together with ExitTime.
type AttendanceRecord struct {
	ID                string
	WorkerID          string
	Date              string // "2006-01-02"
	EntryTime         string
	ExitTime          *string
	Shift             string
	WorkedMinutes     *int
	EntrySignatureURL *string
	ExitSignatureURL  *string
	CreatedAt         time.Time

	// Joined worker columns
	WorkerCode     *string
	WorkerLastName string
	WorkerFirst    string
	WorkerCategory string
}

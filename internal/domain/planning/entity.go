package planning

import (
	"time"
)

// PlanningEntry is one planned shift for one worker on one calendar day,
// normalized out of the uploaded weekly spreadsheet.
type PlanningEntry struct {
	ID        string
	WorkerID  string
	Date      string // "2006-01-02"
	Shift     string
	CreatedAt time.Time

	// Joined worker columns
	WorkerCode     *string
	WorkerLastName string
	WorkerFirst    string
}

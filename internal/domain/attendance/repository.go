package attendance

import (
	"context"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create inserts a new record. A (worker, date) uniqueness violation is
	// returned as ErrAlreadyPunchedIn: the storage constraint is the backstop
	// against two concurrent punch-ins racing past the existence check.
	Create(ctx context.Context, rec AttendanceRecord) (AttendanceRecord, error)

	// GetByWorkerAndDate retrieves the record for a worker on a calendar day.
	// A nil record with a nil error means no record exists.
	GetByWorkerAndDate(ctx context.Context, workerID string, date string) (*AttendanceRecord, error)

	// Close sets exit time, worked minutes, and the exit signature on an open
	// record. The record is mutated exactly once; a second close must not
	// happen (the service guards it inside the same transaction).
	Close(ctx context.Context, id string, exitTime string, workedMinutes int, exitSignatureURL *string) error

	// History retrieves records matching the query ordered by date descending
	// then entry time descending, with the match count and the sum of worked
	// hours (null durations counted as zero).
	History(ctx context.Context, q HistoryQuery) ([]AttendanceRecord, int64, float64, error)
}

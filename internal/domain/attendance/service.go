package attendance

import (
	"context"
)

// AttendanceService defines business logic for the punch-clock workflow.
type AttendanceService interface {
	// PunchIn records the start of a worker's presence for the current day,
	// creating the worker if the identity is unknown.
	PunchIn(ctx context.Context, req PunchInRequest) (RecordResponse, error)

	// PunchOut closes the current day's presence window and computes the
	// worked duration. Never creates a worker.
	PunchOut(ctx context.Context, req PunchOutRequest) (RecordResponse, error)

	// TodayStatus returns the record for the current day, or nil when the
	// worker has not punched in yet. Absence is not an error.
	TodayStatus(ctx context.Context, q TodayStatusQuery) (*RecordResponse, error)

	// History retrieves filtered records with count and total worked hours.
	History(ctx context.Context, f HistoryFilter) (HistoryResponse, error)
}

package planning

import (
	"context"
)

// PlanningRepository defines data access methods for planned shifts.
type PlanningRepository interface {
	// ReplaceRange deletes existing entries in [startDate, endDate] and
	// inserts the given ones. Re-importing a week replaces it wholesale.
	ReplaceRange(ctx context.Context, startDate, endDate string, entries []PlanningEntry) (int, error)

	// GetRange retrieves entries in [startDate, endDate] ordered by date then
	// worker family name.
	GetRange(ctx context.Context, startDate, endDate string) ([]PlanningEntry, error)
}

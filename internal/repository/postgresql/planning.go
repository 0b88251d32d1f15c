package postgresql

import (
	"context"
	"fmt"

	"github.com/digitalis-hr/pointage-backend-go/internal/domain/planning"
	"github.com/digitalis-hr/pointage-backend-go/internal/pkg/database"
)

type planningRepository struct {
	db *database.DB
}

func NewPlanningRepository(db *database.DB) planning.PlanningRepository {
	return &planningRepository{db: db}
}

// ReplaceRange implements planning.PlanningRepository.
func (p *planningRepository) ReplaceRange(ctx context.Context, startDate, endDate string, entries []planning.PlanningEntry) (int, error) {
	q := GetQuerier(ctx, p.db)

	deleteQuery := `
		DELETE FROM planning_entries
		WHERE date >= $1::date AND date <= $2::date
	`
	if _, err := q.Exec(ctx, deleteQuery, startDate, endDate); err != nil {
		return 0, fmt.Errorf("failed to clear planning range: %w", err)
	}

	insertQuery := `
		INSERT INTO planning_entries (worker_id, date, shift)
		VALUES ($1, $2::date, $3)
	`
	inserted := 0
	for _, e := range entries {
		if _, err := q.Exec(ctx, insertQuery, e.WorkerID, e.Date, e.Shift); err != nil {
			return 0, fmt.Errorf("failed to insert planning entry: %w", err)
		}
		inserted++
	}

	return inserted, nil
}

// GetRange implements planning.PlanningRepository.
func (p *planningRepository) GetRange(ctx context.Context, startDate, endDate string) ([]planning.PlanningEntry, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT p.id, p.worker_id, p.date::text, p.shift, p.created_at,
			   w.code, w.last_name, w.first_name
		FROM planning_entries p
		JOIN workers w ON w.id = p.worker_id
		WHERE p.date >= $1::date AND p.date <= $2::date
		ORDER BY p.date, w.last_name, w.first_name
	`

	rows, err := q.Query(ctx, query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query planning entries: %w", err)
	}
	defer rows.Close()

	var entries []planning.PlanningEntry
	for rows.Next() {
		var e planning.PlanningEntry
		err := rows.Scan(
			&e.ID, &e.WorkerID, &e.Date, &e.Shift, &e.CreatedAt,
			&e.WorkerCode, &e.WorkerLastName, &e.WorkerFirst,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan planning entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, nil
}

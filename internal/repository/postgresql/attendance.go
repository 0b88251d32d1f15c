package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/digitalis-hr/pointage-backend-go/internal/domain/attendance"
	"github.com/digitalis-hr/pointage-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, rec attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (worker_id, date, entry_time, shift, entry_signature_url)
		VALUES ($1, $2::date, $3::time, $4, $5)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		rec.WorkerID,
		rec.Date,
		rec.EntryTime,
		rec.Shift,
		rec.EntrySignatureURL,
	).Scan(&rec.ID, &rec.CreatedAt)

	if err != nil {
		if isUniqueViolation(err, "uq_attendance_worker_date") {
			// The storage constraint closed the check-then-insert race.
			return attendance.AttendanceRecord{}, attendance.ErrAlreadyPunchedIn
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return rec, nil
}

// GetByWorkerAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByWorkerAndDate(ctx context.Context, workerID string, date string) (*attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, worker_id, date::text, entry_time::text, exit_time::text, shift,
			   worked_minutes, entry_signature_url, exit_signature_url, created_at
		FROM attendance_records
		WHERE worker_id = $1
		  AND date = $2::date
		LIMIT 1
	`

	var rec attendance.AttendanceRecord
	err := q.QueryRow(ctx, query, workerID, date).Scan(
		&rec.ID, &rec.WorkerID, &rec.Date, &rec.EntryTime, &rec.ExitTime, &rec.Shift,
		&rec.WorkedMinutes, &rec.EntrySignatureURL, &rec.ExitSignatureURL, &rec.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No record for that day
		}
		return nil, fmt.Errorf("failed to get attendance record by worker and date: %w", err)
	}

	return &rec, nil
}

// Close implements attendance.AttendanceRepository.
func (a *attendanceRepository) Close(ctx context.Context, id string, exitTime string, workedMinutes int, exitSignatureURL *string) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET exit_time = $2::time, worked_minutes = $3, exit_signature_url = $4
		WHERE id = $1 AND exit_time IS NULL
		RETURNING id
	`

	var closedID string
	if err := q.QueryRow(ctx, query, id, exitTime, workedMinutes, exitSignatureURL).Scan(&closedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either the record vanished or a concurrent close got there first.
			return attendance.ErrAlreadyPunchedOut
		}
		return fmt.Errorf("failed to close attendance record: %w", err)
	}

	return nil
}

// History implements attendance.AttendanceRepository.
func (a *attendanceRepository) History(ctx context.Context, filter attendance.HistoryQuery) ([]attendance.AttendanceRecord, int64, float64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d::date", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d::date", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.Code != nil && *filter.Code != "" {
		baseWhere += fmt.Sprintf(" AND w.code = $%d", argIdx)
		args = append(args, *filter.Code)
		argIdx++
	}

	// Name filters are independent case-insensitive substring matches.
	if filter.FamilyName != nil && *filter.FamilyName != "" {
		baseWhere += fmt.Sprintf(" AND w.last_name ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.FamilyName+"%")
		argIdx++
	}
	if filter.GivenName != nil && *filter.GivenName != "" {
		baseWhere += fmt.Sprintf(" AND w.first_name ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.GivenName+"%")
		argIdx++
	}

	if filter.Category != nil && *filter.Category != "" {
		baseWhere += fmt.Sprintf(" AND w.category = $%d", argIdx)
		args = append(args, *filter.Category)
		argIdx++
	}
	if filter.Shift != nil && *filter.Shift != "" {
		baseWhere += fmt.Sprintf(" AND a.shift = $%d", argIdx)
		args = append(args, *filter.Shift)
		argIdx++
	}

	aggregateQuery := `
		SELECT COUNT(*),
			   COALESCE(ROUND(SUM(COALESCE(a.worked_minutes, 0)) / 60.0, 2), 0)
		FROM attendance_records a
		JOIN workers w ON w.id = a.worker_id
		WHERE ` + baseWhere

	var total int64
	var totalHours float64
	if err := q.QueryRow(ctx, aggregateQuery, args...).Scan(&total, &totalHours); err != nil {
		return nil, 0, 0, fmt.Errorf("failed to aggregate attendance records: %w", err)
	}

	selectQuery := `
		SELECT a.id, a.worker_id, a.date::text, a.entry_time::text, a.exit_time::text, a.shift,
			   a.worked_minutes, a.entry_signature_url, a.exit_signature_url, a.created_at,
			   w.code, w.last_name, w.first_name, w.category
		FROM attendance_records a
		JOIN workers w ON w.id = a.worker_id
		WHERE ` + baseWhere + `
		ORDER BY a.date DESC, a.entry_time DESC
	`

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		var rec attendance.AttendanceRecord
		err := rows.Scan(
			&rec.ID, &rec.WorkerID, &rec.Date, &rec.EntryTime, &rec.ExitTime, &rec.Shift,
			&rec.WorkedMinutes, &rec.EntrySignatureURL, &rec.ExitSignatureURL, &rec.CreatedAt,
			&rec.WorkerCode, &rec.WorkerLastName, &rec.WorkerFirst, &rec.WorkerCategory,
		)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, total, totalHours, nil
}

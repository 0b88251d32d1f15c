package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/digitalis-hr/pointage-backend-go/internal/domain/worker"
	"github.com/digitalis-hr/pointage-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workerRepository struct {
	db *database.DB
}

func NewWorkerRepository(db *database.DB) worker.WorkerRepository {
	return &workerRepository{db: db}
}

const workerColumns = "id, code, last_name, first_name, category, signature_url, created_at"

func scanWorker(row pgx.Row) (worker.Worker, error) {
	var w worker.Worker
	err := row.Scan(&w.ID, &w.Code, &w.LastName, &w.FirstName, &w.Category, &w.SignatureURL, &w.CreatedAt)
	return w, err
}

// Create implements worker.WorkerRepository.
func (r *workerRepository) Create(ctx context.Context, newWorker worker.Worker) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO workers (code, last_name, first_name, category, signature_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		newWorker.Code,
		newWorker.LastName,
		newWorker.FirstName,
		newWorker.Category,
		newWorker.SignatureURL,
	).Scan(&newWorker.ID, &newWorker.CreatedAt)

	if err != nil {
		if isUniqueViolation(err, "idx_workers_code") {
			return worker.Worker{}, worker.ErrCodeExists
		}
		if isUniqueViolation(err, "uq_workers_names") {
			return worker.Worker{}, worker.ErrNameExists
		}
		return worker.Worker{}, fmt.Errorf("failed to create worker: %w", err)
	}

	return newWorker, nil
}

// GetByCode implements worker.WorkerRepository.
func (r *workerRepository) GetByCode(ctx context.Context, code string) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := "SELECT " + workerColumns + " FROM workers WHERE code = $1"

	w, err := scanWorker(q.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker by code: %w", err)
	}

	return w, nil
}

// GetByName implements worker.WorkerRepository.
func (r *workerRepository) GetByName(ctx context.Context, familyName, givenName string) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + workerColumns + `
		FROM workers
		WHERE last_name = $1 AND first_name = $2
		ORDER BY created_at
		LIMIT 1
	`

	w, err := scanWorker(q.QueryRow(ctx, query, familyName, givenName))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker by name: %w", err)
	}

	return w, nil
}

// GetByID implements worker.WorkerRepository.
func (r *workerRepository) GetByID(ctx context.Context, id string) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := "SELECT " + workerColumns + " FROM workers WHERE id = $1"

	w, err := scanWorker(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker by ID: %w", err)
	}

	return w, nil
}

// List implements worker.WorkerRepository.
func (r *workerRepository) List(ctx context.Context, filter worker.WorkerFilter) ([]worker.Worker, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.Name != nil && *filter.Name != "" {
		baseWhere += fmt.Sprintf(" AND (last_name ILIKE $%d OR first_name ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+*filter.Name+"%")
		argIdx++
	}

	if filter.Category != nil && *filter.Category != "" {
		baseWhere += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, *filter.Category)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM workers WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count workers: %w", err)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM workers
		WHERE %s
		ORDER BY last_name, first_name
		LIMIT $%d OFFSET $%d
	`, workerColumns, baseWhere, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query workers: %w", err)
	}
	defer rows.Close()

	var workers []worker.Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, w)
	}

	return workers, total, nil
}

// Update implements worker.WorkerRepository.
func (r *workerRepository) Update(ctx context.Context, code string, familyName, givenName, category, signatureURL *string) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if familyName != nil {
		updates = append(updates, fmt.Sprintf("last_name = $%d", argIdx))
		args = append(args, *familyName)
		argIdx++
	}
	if givenName != nil {
		updates = append(updates, fmt.Sprintf("first_name = $%d", argIdx))
		args = append(args, *givenName)
		argIdx++
	}
	if category != nil {
		updates = append(updates, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, *category)
		argIdx++
	}
	if signatureURL != nil {
		updates = append(updates, fmt.Sprintf("signature_url = $%d", argIdx))
		args = append(args, *signatureURL)
		argIdx++
	}

	if len(updates) == 0 {
		return r.GetByCode(ctx, code)
	}

	args = append(args, code)
	query := "UPDATE workers SET " + strings.Join(updates, ", ") +
		fmt.Sprintf(" WHERE code = $%d RETURNING %s", argIdx, workerColumns)

	w, err := scanWorker(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to update worker: %w", err)
	}

	return w, nil
}

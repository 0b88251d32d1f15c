package worker

import (
	"context"
)

// WorkerRepository defines data access methods for worker identities.
type WorkerRepository interface {
	// Create inserts a new worker. A unique-code collision surfaces as
	// ErrCodeExists so callers can re-resolve instead of failing.
	Create(ctx context.Context, w Worker) (Worker, error)

	// GetByCode retrieves a worker by external code.
	// Returns ErrWorkerNotFound when no worker carries the code.
	GetByCode(ctx context.Context, code string) (Worker, error)

	// GetByName retrieves a worker by exact (family name, given name) pair.
	// Returns ErrWorkerNotFound on no match.
	GetByName(ctx context.Context, familyName, givenName string) (Worker, error)

	// GetByID retrieves a worker by primary key.
	GetByID(ctx context.Context, id string) (Worker, error)

	// List retrieves workers with filters and pagination.
	List(ctx context.Context, filter WorkerFilter) ([]Worker, int64, error)

	// Update applies the non-nil fields of req to the worker with the given code.
	Update(ctx context.Context, code string, familyName, givenName, category, signatureURL *string) (Worker, error)
}

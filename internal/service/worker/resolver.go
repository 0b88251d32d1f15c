package worker

import (
	"context"
	"errors"

	"github.com/digitalis-hr/pointage-backend-go/internal/domain/worker"
)

// Resolver implements identity resolution over the worker repository. It is
// shared by the punch-in path and the planning import, which both follow the
// find-or-create rule; punch-out and status queries use the strict variant.
type Resolver struct {
	workerRepo worker.WorkerRepository
}

func NewResolver(workerRepo worker.WorkerRepository) *Resolver {
	return &Resolver{workerRepo: workerRepo}
}

// FindOrCreate returns the worker matching the identity, creating one when
// nothing matches. Resolution order: external code, then exact name pair.
// Absence is never an error on this path.
func (r *Resolver) FindOrCreate(ctx context.Context, id worker.Identity) (worker.Worker, error) {
	if id.Code != nil && *id.Code != "" {
		w, err := r.workerRepo.GetByCode(ctx, *id.Code)
		if err == nil {
			return w, nil
		}
		if !errors.Is(err, worker.ErrWorkerNotFound) {
			return worker.Worker{}, err
		}
	}

	w, err := r.workerRepo.GetByName(ctx, id.FamilyName, id.GivenName)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, worker.ErrWorkerNotFound) {
		return worker.Worker{}, err
	}

	code := id.Code
	if code == nil || *code == "" {
		generated := worker.GenerateCode()
		code = &generated
	}
	category := worker.DefaultCategory
	if id.Category != nil && *id.Category != "" {
		category = *id.Category
	}

	created, err := r.workerRepo.Create(ctx, worker.Worker{
		Code:      code,
		LastName:  id.FamilyName,
		FirstName: id.GivenName,
		Category:  category,
	})
	if err != nil {
		// A concurrent create won the race on one of the unique indexes;
		// reuse its row instead of failing the punch.
		if errors.Is(err, worker.ErrCodeExists) {
			return r.workerRepo.GetByCode(ctx, *code)
		}
		if errors.Is(err, worker.ErrNameExists) {
			return r.workerRepo.GetByName(ctx, id.FamilyName, id.GivenName)
		}
		return worker.Worker{}, err
	}

	return created, nil
}

// Resolve looks up a worker by code, falling back to the exact name pair.
// Unlike FindOrCreate it never creates: an unresolvable identity returns
// ErrWorkerNotFound.
func (r *Resolver) Resolve(ctx context.Context, code *string, familyName, givenName *string) (worker.Worker, error) {
	if code != nil && *code != "" {
		w, err := r.workerRepo.GetByCode(ctx, *code)
		if err == nil {
			return w, nil
		}
		if !errors.Is(err, worker.ErrWorkerNotFound) {
			return worker.Worker{}, err
		}
	}

	if familyName != nil && *familyName != "" && givenName != nil && *givenName != "" {
		return r.workerRepo.GetByName(ctx, *familyName, *givenName)
	}

	return worker.Worker{}, worker.ErrWorkerNotFound
}

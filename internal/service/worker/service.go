package worker

import (
	"context"

	"github.com/digitalis-hr/pointage-backend-go/internal/domain/worker"
	"github.com/digitalis-hr/pointage-backend-go/internal/service/file"
)

// WorkerService defines the admin-facing worker registry operations. Lookups
// here are strict: a missing worker is an error, never an implicit create.
type WorkerService interface {
	List(ctx context.Context, filter worker.WorkerFilter) ([]worker.WorkerResponse, int64, error)
	GetByCode(ctx context.Context, code string) (worker.WorkerResponse, error)
	Update(ctx context.Context, req worker.UpdateWorkerRequest) (worker.WorkerResponse, error)
}

type WorkerServiceImpl struct {
	workerRepo  worker.WorkerRepository
	fileService file.FileService
}

func NewWorkerService(workerRepo worker.WorkerRepository, fileService file.FileService) WorkerService {
	return &WorkerServiceImpl{
		workerRepo:  workerRepo,
		fileService: fileService,
	}
}

// List implements WorkerService.
func (s *WorkerServiceImpl) List(ctx context.Context, filter worker.WorkerFilter) ([]worker.WorkerResponse, int64, error) {
	workers, total, err := s.workerRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]worker.WorkerResponse, 0, len(workers))
	for _, w := range workers {
		responses = append(responses, worker.ToResponse(w))
	}

	return responses, total, nil
}

// GetByCode implements WorkerService.
func (s *WorkerServiceImpl) GetByCode(ctx context.Context, code string) (worker.WorkerResponse, error) {
	w, err := s.workerRepo.GetByCode(ctx, code)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	return worker.ToResponse(w), nil
}

// Update implements WorkerService.
func (s *WorkerServiceImpl) Update(ctx context.Context, req worker.UpdateWorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	var signatureURL *string
	var stored file.StoredFile
	if req.Signature != nil {
		var err error
		stored, err = s.fileService.StoreSignature(ctx, req.Code, "reference", *req.Signature)
		if err != nil {
			return worker.WorkerResponse{}, err
		}
		signatureURL = &stored.URL
	}

	w, err := s.workerRepo.Update(ctx, req.Code, req.FamilyName, req.GivenName, req.Category, signatureURL)
	if err != nil {
		if stored.Path != "" {
			_ = s.fileService.Remove(ctx, stored.Path)
		}
		return worker.WorkerResponse{}, err
	}

	return worker.ToResponse(w), nil
}

package worker

import "errors"

// Worker domain errors
var (
	ErrWorkerNotFound = errors.New("worker not found")
	ErrCodeExists     = errors.New("worker code already exists")
	ErrNameExists     = errors.New("worker name pair already exists")
)

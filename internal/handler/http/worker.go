package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/digitalis-hr/pointage-backend-go/internal/domain/worker"
	"github.com/digitalis-hr/pointage-backend-go/internal/handler/http/response"
	workerService "github.com/digitalis-hr/pointage-backend-go/internal/service/worker"
	"github.com/go-chi/chi/v5"
)

type WorkerHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type workerHandlerImpl struct {
	workerService workerService.WorkerService
}

func NewWorkerHandler(ws workerService.WorkerService) WorkerHandler {
	return &workerHandlerImpl{
		workerService: ws,
	}
}

// List implements WorkerHandler.
func (h *workerHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter := worker.WorkerFilter{
		Name:     queryParam(r, "name"),
		Category: queryParam(r, "category"),
		Page:     page,
		Limit:    limit,
	}

	workers, total, err := h.workerService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, workers, &response.Meta{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
	})
}

// Get implements WorkerHandler.
func (h *workerHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	result, err := h.workerService.GetByCode(r.Context(), code)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements WorkerHandler.
func (h *workerHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req worker.UpdateWorkerRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode worker update request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Code = chi.URLParam(r, "code")

	result, err := h.workerService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

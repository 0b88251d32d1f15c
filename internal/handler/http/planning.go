package http

import (
	"log/slog"
	"net/http"

	"github.com/digitalis-hr/pointage-backend-go/internal/handler/http/response"
	"github.com/digitalis-hr/pointage-backend-go/internal/service/planning"
)

type PlanningHandler interface {
	Import(w http.ResponseWriter, r *http.Request)
	Week(w http.ResponseWriter, r *http.Request)
}

type planningHandlerImpl struct {
	planningService planning.PlanningService
}

func NewPlanningHandler(planningService planning.PlanningService) PlanningHandler {
	return &planningHandlerImpl{
		planningService: planningService,
	}
}

// Import implements PlanningHandler.
func (h *planningHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	weekStart := r.FormValue("week_start")
	if weekStart == "" {
		response.BadRequest(w, "Field 'week_start' is required", nil)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Planning file is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	result, err := h.planningService.Import(r.Context(), file, weekStart)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Planning imported", result)
}

// Week implements PlanningHandler.
func (h *planningHandlerImpl) Week(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		response.BadRequest(w, "Query parameter 'date' is required", nil)
		return
	}

	result, err := h.planningService.Week(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

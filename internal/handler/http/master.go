package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/digitalis-hr/pointage-backend-go/internal/domain/master/campaign"
	"github.com/digitalis-hr/pointage-backend-go/internal/domain/master/role"
	"github.com/digitalis-hr/pointage-backend-go/internal/handler/http/response"
	"github.com/digitalis-hr/pointage-backend-go/internal/service/master"
	"github.com/go-chi/chi/v5"
)

type MasterHandler interface {
	ListCampaigns(w http.ResponseWriter, r *http.Request)
	CreateCampaign(w http.ResponseWriter, r *http.Request)
	UpdateCampaign(w http.ResponseWriter, r *http.Request)
	DeleteCampaign(w http.ResponseWriter, r *http.Request)

	ListRoles(w http.ResponseWriter, r *http.Request)
	CreateRole(w http.ResponseWriter, r *http.Request)
	UpdateRole(w http.ResponseWriter, r *http.Request)
	DeleteRole(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	masterService master.MasterService
}

func NewMasterHandler(masterService master.MasterService) MasterHandler {
	return &masterHandlerImpl{
		masterService: masterService,
	}
}

// ListCampaigns implements MasterHandler.
func (h *masterHandlerImpl) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.ListCampaigns(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateCampaign implements MasterHandler.
func (h *masterHandlerImpl) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req campaign.CreateCampaignRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode campaign create request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.masterService.CreateCampaign(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Campaign created", result)
}

// UpdateCampaign implements MasterHandler.
func (h *masterHandlerImpl) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	var req campaign.UpdateCampaignRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode campaign update request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.masterService.UpdateCampaign(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DeleteCampaign implements MasterHandler.
func (h *masterHandlerImpl) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.masterService.DeleteCampaign(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, nil)
}

// ListRoles implements MasterHandler.
func (h *masterHandlerImpl) ListRoles(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.ListRoles(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateRole implements MasterHandler.
func (h *masterHandlerImpl) CreateRole(w http.ResponseWriter, r *http.Request) {
	var req role.CreateRoleRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode role create request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.masterService.CreateRole(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Role created", result)
}

// UpdateRole implements MasterHandler.
func (h *masterHandlerImpl) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req role.UpdateRoleRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode role update request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.masterService.UpdateRole(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DeleteRole implements MasterHandler.
func (h *masterHandlerImpl) DeleteRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.masterService.DeleteRole(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, nil)
}

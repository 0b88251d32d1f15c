package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/digitalis-hr/pointage-backend-go/internal/domain/auth"
	"github.com/digitalis-hr/pointage-backend-go/internal/handler/http/response"
	authService "github.com/digitalis-hr/pointage-backend-go/internal/service/auth"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	authService authService.AuthService
}

func NewAuthHandler(as authService.AuthService) AuthHandler {
	return &authHandlerImpl{
		authService: as,
	}
}

// Login implements AuthHandler.
func (h *authHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode login request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

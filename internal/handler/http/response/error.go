package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/digitalis-hr/pointage-backend-go/internal/domain/attendance"
	"github.com/digitalis-hr/pointage-backend-go/internal/domain/auth"
	"github.com/digitalis-hr/pointage-backend-go/internal/domain/master/campaign"
	"github.com/digitalis-hr/pointage-backend-go/internal/domain/master/role"
	"github.com/digitalis-hr/pointage-backend-go/internal/domain/planning"
	"github.com/digitalis-hr/pointage-backend-go/internal/domain/worker"
	"github.com/digitalis-hr/pointage-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgconn"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Storage connectivity failures are retryable; keep them apart from the
	// generic 500 class. SQLSTATE class 08 is "connection exception".
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		ServiceUnavailable(w, "Storage temporarily unavailable")
		return
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "08") {
		ServiceUnavailable(w, "Storage temporarily unavailable")
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyPunchedIn):
		Conflict(w, "Worker already has an open entry today")
	case errors.Is(err, attendance.ErrAlreadyCompletedToday):
		Conflict(w, "Worker already completed a full record today")
	case errors.Is(err, attendance.ErrAlreadyPunchedOut):
		Conflict(w, "Record already has an exit time")
	case errors.Is(err, attendance.ErrNoEntryToday):
		Conflict(w, "No open entry found for today")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Worker domain errors
	case errors.Is(err, worker.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, worker.ErrCodeExists):
		Conflict(w, "Worker code already exists")

	// Planning domain errors
	case errors.Is(err, planning.ErrInvalidSheet):
		BadRequest(w, "Planning sheet could not be parsed", nil)
	case errors.Is(err, planning.ErrEmptySheet):
		BadRequest(w, "Planning sheet contains no rows", nil)

	// Master data errors
	case errors.Is(err, campaign.ErrCampaignNotFound):
		NotFound(w, "Campaign not found")
	case errors.Is(err, campaign.ErrCampaignExists):
		Conflict(w, "Campaign already exists")
	case errors.Is(err, role.ErrRoleNotFound):
		NotFound(w, "Role not found")
	case errors.Is(err, role.ErrRoleExists):
		Conflict(w, "Role already exists")

	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

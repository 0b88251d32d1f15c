package role

import (
	"time"

	"github.com/digitalis-hr/pointage-backend-go/internal/pkg/validator"
)

type Role struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// RoleResponse represents the response structure for a role.
type RoleResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func ToResponse(r Role) RoleResponse {
	return RoleResponse{ID: r.ID, Name: r.Name}
}

// CreateRoleRequest represents the request structure for creating a role.
type CreateRoleRequest struct {
	Name string `json:"name"`
}

func (r *CreateRoleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateRoleRequest represents the request structure for updating a role.
type UpdateRoleRequest struct {
	ID   string `json:"-"` // From URL
	Name string `json:"name"`
}

func (r *UpdateRoleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

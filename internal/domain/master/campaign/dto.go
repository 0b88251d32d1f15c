package campaign

import (
	"time"

	"github.com/digitalis-hr/pointage-backend-go/internal/pkg/validator"
)

type Campaign struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// CampaignResponse represents the response structure for a campaign.
type CampaignResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func ToResponse(c Campaign) CampaignResponse {
	return CampaignResponse{ID: c.ID, Name: c.Name}
}

// CreateCampaignRequest represents the request structure for creating a campaign.
type CreateCampaignRequest struct {
	Name string `json:"name"`
}

func (r *CreateCampaignRequest) Validate() error {
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

// UpdateCampaignRequest represents the request structure for updating a campaign.
type UpdateCampaignRequest struct {
	ID   string `json:"-"` // From URL
	Name string `json:"name"`
}

func (r *UpdateCampaignRequest) Validate() error {
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

package worker

import (
	"github.com/digitalis-hr/pointage-backend-go/internal/pkg/validator"
)

// ========================================
// WORKER DTOs
// ========================================

// Identity is the caller-supplied identification for find-or-create
// resolution: an optional external code plus the mandatory name pair.
type Identity struct {
	Code       *string
	FamilyName string
	GivenName  string
	Category   *string
}

func (i *Identity) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(i.FamilyName) {
		errs = append(errs, validator.ValidationError{
			Field:   "family_name",
			Message: "family_name is required",
		})
	}

	if validator.IsEmpty(i.GivenName) {
		errs = append(errs, validator.ValidationError{
			Field:   "given_name",
			Message: "given_name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WorkerResponse struct {
	ID           string  `json:"id"`
	Code         *string `json:"code,omitempty"`
	FamilyName   string  `json:"family_name"`
	GivenName    string  `json:"given_name"`
	Category     string  `json:"category"`
	SignatureURL *string `json:"signature_url,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

func ToResponse(w Worker) WorkerResponse {
	return WorkerResponse{
		ID:           w.ID,
		Code:         w.Code,
		FamilyName:   w.LastName,
		GivenName:    w.FirstName,
		Category:     w.Category,
		SignatureURL: w.SignatureURL,
		CreatedAt:    w.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// UpdateWorkerRequest represents the request structure for updating a worker.
type UpdateWorkerRequest struct {
	Code       string  `json:"-"` // From URL
	FamilyName *string `json:"family_name,omitempty"`
	GivenName  *string `json:"given_name,omitempty"`
	Category   *string `json:"category,omitempty"`
	Signature  *string `json:"signature,omitempty"` // base64 data URI
}

func (r *UpdateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code is required",
		})
	}

	if r.FamilyName != nil && validator.IsEmpty(*r.FamilyName) {
		errs = append(errs, validator.ValidationError{
			Field:   "family_name",
			Message: "family_name must not be empty",
		})
	}

	if r.GivenName != nil && validator.IsEmpty(*r.GivenName) {
		errs = append(errs, validator.ValidationError{
			Field:   "given_name",
			Message: "given_name must not be empty",
		})
	}

	if r.Category != nil && validator.IsEmpty(*r.Category) {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category must not be empty",
		})
	}

	if r.Signature != nil && !validator.IsSignatureDataURI(*r.Signature) {
		errs = append(errs, validator.ValidationError{
			Field:   "signature",
			Message: "signature must be a base64 image data URI",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// WorkerFilter narrows admin listings.
type WorkerFilter struct {
	Name     *string // substring match on family or given name
	Category *string
	Page     int
	Limit    int
}

package attendance

import (
	"github.com/digitalis-hr/pointage-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type PunchInRequest struct {
	Code           *string `json:"code,omitempty"`
	FamilyName     string  `json:"family_name"`
	GivenName      string  `json:"given_name"`
	Category       *string `json:"category,omitempty"`
	Shift          *string `json:"shift,omitempty"`
	EntryTime      *string `json:"entry_time,omitempty"` // "HH:MM:SS", defaults to now
	EntrySignature string  `json:"entry_signature"`      // base64 data URI
}

func (r *PunchInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FamilyName) {
		errs = append(errs, validator.ValidationError{
			Field:   "family_name",
			Message: "family_name is required",
		})
	}

	if validator.IsEmpty(r.GivenName) {
		errs = append(errs, validator.ValidationError{
			Field:   "given_name",
			Message: "given_name is required",
		})
	}

	if validator.IsEmpty(r.EntrySignature) {
		errs = append(errs, validator.ValidationError{
			Field:   "entry_signature",
			Message: "entry_signature is required",
		})
	} else if !validator.IsSignatureDataURI(r.EntrySignature) {
		errs = append(errs, validator.ValidationError{
			Field:   "entry_signature",
			Message: "entry_signature must be a base64 image data URI",
		})
	}

	if r.EntryTime != nil && !validator.IsValidTimeOfDay(*r.EntryTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "entry_time",
			Message: "entry_time must be HH:MM:SS",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PunchOutRequest struct {
	Code          *string `json:"code,omitempty"`
	FamilyName    *string `json:"family_name,omitempty"`
	GivenName     *string `json:"given_name,omitempty"`
	ExitTime      *string `json:"exit_time,omitempty"` // "HH:MM:SS", defaults to now
	ExitSignature string  `json:"exit_signature"`      // base64 data URI
}

func (r *PunchOutRequest) Validate() error {
	var errs validator.ValidationErrors

	// Either a code or a full name pair must identify the worker.
	hasCode := r.Code != nil && !validator.IsEmpty(*r.Code)
	hasNamePair := r.FamilyName != nil && !validator.IsEmpty(*r.FamilyName) &&
		r.GivenName != nil && !validator.IsEmpty(*r.GivenName)
	if !hasCode && !hasNamePair {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "either code or family_name and given_name are required",
		})
	}

	if validator.IsEmpty(r.ExitSignature) {
		errs = append(errs, validator.ValidationError{
			Field:   "exit_signature",
			Message: "exit_signature is required",
		})
	} else if !validator.IsSignatureDataURI(r.ExitSignature) {
		errs = append(errs, validator.ValidationError{
			Field:   "exit_signature",
			Message: "exit_signature must be a base64 image data URI",
		})
	}

	if r.ExitTime != nil && !validator.IsValidTimeOfDay(*r.ExitTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "exit_time",
			Message: "exit_time must be HH:MM:SS",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TodayStatusQuery struct {
	Code       *string
	FamilyName *string
	GivenName  *string
}

func (q *TodayStatusQuery) Validate() error {
	var errs validator.ValidationErrors

	hasCode := q.Code != nil && !validator.IsEmpty(*q.Code)
	hasNamePair := q.FamilyName != nil && !validator.IsEmpty(*q.FamilyName) &&
		q.GivenName != nil && !validator.IsEmpty(*q.GivenName)
	if !hasCode && !hasNamePair {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "either code or family_name and given_name are required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// HistoryFilter carries the raw query filters. Date-range and year/month are
// mutually substitutable; an explicit range wins when both are present.
type HistoryFilter struct {
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`
	Year       *int    `json:"year,omitempty"`
	Month      *int    `json:"month,omitempty"`
	Code       *string `json:"code,omitempty"`
	FamilyName *string `json:"family_name,omitempty"`
	GivenName  *string `json:"given_name,omitempty"`
	Category   *string `json:"category,omitempty"`
	Shift      *string `json:"shift,omitempty"`
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be YYYY-MM-DD",
			})
		}
	}
	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be YYYY-MM-DD",
			})
		}
	}

	hasRange := f.StartDate != nil && f.EndDate != nil
	if !hasRange && f.Year == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "either start_date and end_date or year are required",
		})
	}
	if f.Month != nil && (*f.Month < 1 || *f.Month > 12) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if f.Year != nil && (*f.Year < 2000 || *f.Year > 2100) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// HistoryQuery is the resolved form handed to the repository: the year/month
// shorthand has already been expanded into a concrete date range.
type HistoryQuery struct {
	StartDate  *string
	EndDate    *string
	Code       *string
	FamilyName *string
	GivenName  *string
	Category   *string
	Shift      *string
}

type RecordResponse struct {
	ID           string   `json:"id"`
	WorkerID     string   `json:"worker_id"`
	WorkerCode   *string  `json:"worker_code,omitempty"`
	FamilyName   string   `json:"family_name"`
	GivenName    string   `json:"given_name"`
	Category     string   `json:"category"`
	Date         string   `json:"date"`
	EntryTime    string   `json:"entry_time"`
	ExitTime     *string  `json:"exit_time,omitempty"`
	Shift        string   `json:"shift"`
	WorkedHours  *float64 `json:"worked_hours,omitempty"`
	EntrySignURL *string  `json:"entry_signature_url,omitempty"`
	ExitSignURL  *string  `json:"exit_signature_url,omitempty"`
}

func ToRecordResponse(rec AttendanceRecord) RecordResponse {
	var hours *float64
	if rec.WorkedMinutes != nil {
		h := Hours(*rec.WorkedMinutes)
		hours = &h
	}
	return RecordResponse{
		ID:           rec.ID,
		WorkerID:     rec.WorkerID,
		WorkerCode:   rec.WorkerCode,
		FamilyName:   rec.WorkerLastName,
		GivenName:    rec.WorkerFirst,
		Category:     rec.WorkerCategory,
		Date:         rec.Date,
		EntryTime:    rec.EntryTime,
		ExitTime:     rec.ExitTime,
		Shift:        rec.Shift,
		WorkedHours:  hours,
		EntrySignURL: rec.EntrySignatureURL,
		ExitSignURL:  rec.ExitSignatureURL,
	}
}

type HistoryResponse struct {
	Records    []RecordResponse `json:"records"`
	Count      int64            `json:"count"`
	TotalHours float64          `json:"total_hours"`
}

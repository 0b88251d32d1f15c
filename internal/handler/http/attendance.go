package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/digitalis-hr/pointage-backend-go/internal/domain/attendance"
	"github.com/digitalis-hr/pointage-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	PunchIn(w http.ResponseWriter, r *http.Request)
	PunchOut(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// PunchIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) PunchIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.PunchInRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode punch-in request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.PunchIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punch in successful", result)
}

// PunchOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) PunchOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.PunchOutRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode punch-out request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.PunchOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	q := attendance.TodayStatusQuery{
		Code:       queryParam(r, "code"),
		FamilyName: queryParam(r, "family_name"),
		GivenName:  queryParam(r, "given_name"),
	}

	result, err := h.attendanceService.TodayStatus(r.Context(), q)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// result is nil when the worker has not punched in yet
	response.Success(w, result)
}

// History implements AttendanceHandler.
func (h *attendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	f := historyFilterFromQuery(r)

	result, err := h.attendanceService.History(r.Context(), f)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Records, &response.Meta{
		TotalItems: result.Count,
		TotalHours: &result.TotalHours,
	})
}

func historyFilterFromQuery(r *http.Request) attendance.HistoryFilter {
	return attendance.HistoryFilter{
		StartDate:  queryParam(r, "start_date"),
		EndDate:    queryParam(r, "end_date"),
		Year:       queryIntParam(r, "year"),
		Month:      queryIntParam(r, "month"),
		Code:       queryParam(r, "code"),
		FamilyName: queryParam(r, "family_name"),
		GivenName:  queryParam(r, "given_name"),
		Category:   queryParam(r, "category"),
		Shift:      queryParam(r, "shift"),
	}
}

func queryParam(r *http.Request, key string) *string {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	return &v
}

func queryIntParam(r *http.Request, key string) *int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

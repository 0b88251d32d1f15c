package planning

type EntryResponse struct {
	ID         string  `json:"id"`
	WorkerID   string  `json:"worker_id"`
	WorkerCode *string `json:"worker_code,omitempty"`
	FamilyName string  `json:"family_name"`
	GivenName  string  `json:"given_name"`
	Date       string  `json:"date"`
	Shift      string  `json:"shift"`
}

func ToEntryResponse(e PlanningEntry) EntryResponse {
	return EntryResponse{
		ID:         e.ID,
		WorkerID:   e.WorkerID,
		WorkerCode: e.WorkerCode,
		FamilyName: e.WorkerLastName,
		GivenName:  e.WorkerFirst,
		Date:       e.Date,
		Shift:      e.Shift,
	}
}

type ImportResult struct {
	WeekStart string `json:"week_start"`
	WeekEnd   string `json:"week_end"`
	Imported  int    `json:"imported"`
	Workers   int    `json:"workers"`
}

type WeekResponse struct {
	WeekStart string          `json:"week_start"`
	WeekEnd   string          `json:"week_end"`
	Entries   []EntryResponse `json:"entries"`
}

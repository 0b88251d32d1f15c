package planning

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/digitalis-hr/pointage-backend-go/internal/domain/planning"
	"github.com/digitalis-hr/pointage-backend-go/internal/domain/worker"
	workerService "github.com/digitalis-hr/pointage-backend-go/internal/service/worker"
	"github.com/xuri/excelize/v2"
)

// PlanningService ingests weekly planning spreadsheets and serves week views.
type PlanningService interface {
	// Import parses an xlsx planning sheet for the week containing weekStart
	// and replaces that week's entries. Workers referenced by the sheet are
	// resolved through the same find-or-create path as punch-in.
	Import(ctx context.Context, sheet io.Reader, weekStart string) (planning.ImportResult, error)

	// Week returns the planning entries for the week containing the date.
	Week(ctx context.Context, date string) (planning.WeekResponse, error)
}

type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type PlanningServiceImpl struct {
	planningRepo planning.PlanningRepository
	resolver     *workerService.Resolver
	inTx         TxRunner
}

func NewPlanningService(planningRepo planning.PlanningRepository, resolver *workerService.Resolver, inTx TxRunner) PlanningService {
	return &PlanningServiceImpl{
		planningRepo: planningRepo,
		resolver:     resolver,
		inTx:         inTx,
	}
}

// Sheet layout: one header row, then one row per worker with
// code | family name | given name | monday .. sunday shift cells.
const dayColumns = 7

// offDayMarkers are cell values meaning "no shift planned".
var offDayMarkers = []string{"", "-", "OFF", "REPOS"}

// Import implements PlanningService.
func (s *PlanningServiceImpl) Import(ctx context.Context, sheet io.Reader, weekStart string) (planning.ImportResult, error) {
	monday, err := mondayOf(weekStart)
	if err != nil {
		return planning.ImportResult{}, err
	}
	sunday := monday.AddDate(0, 0, 6)

	f, err := excelize.OpenReader(sheet)
	if err != nil {
		return planning.ImportResult{}, planning.ErrInvalidSheet
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return planning.ImportResult{}, planning.ErrInvalidSheet
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return planning.ImportResult{}, planning.ErrInvalidSheet
	}
	if len(rows) < 2 {
		return planning.ImportResult{}, planning.ErrEmptySheet
	}

	var result planning.ImportResult
	err = s.inTx(ctx, func(ctx context.Context) error {
		var entries []planning.PlanningEntry
		workers := 0

		for _, row := range rows[1:] { // skip header
			familyName := cell(row, 1)
			givenName := cell(row, 2)
			if familyName == "" || givenName == "" {
				continue
			}

			var code *string
			if c := cell(row, 0); c != "" {
				code = &c
			}

			w, err := s.resolver.FindOrCreate(ctx, worker.Identity{
				Code:       code,
				FamilyName: familyName,
				GivenName:  givenName,
			})
			if err != nil {
				return fmt.Errorf("failed to resolve worker %q %q: %w", familyName, givenName, err)
			}
			workers++

			for day := 0; day < dayColumns; day++ {
				shift := cell(row, 3+day)
				if isOffDay(shift) {
					continue
				}
				entries = append(entries, planning.PlanningEntry{
					WorkerID: w.ID,
					Date:     monday.AddDate(0, 0, day).Format("2006-01-02"),
					Shift:    shift,
				})
			}
		}

		if len(entries) == 0 {
			return planning.ErrEmptySheet
		}

		inserted, err := s.planningRepo.ReplaceRange(ctx,
			monday.Format("2006-01-02"), sunday.Format("2006-01-02"), entries)
		if err != nil {
			return err
		}

		result = planning.ImportResult{
			WeekStart: monday.Format("2006-01-02"),
			WeekEnd:   sunday.Format("2006-01-02"),
			Imported:  inserted,
			Workers:   workers,
		}
		return nil
	})
	if err != nil {
		return planning.ImportResult{}, err
	}

	return result, nil
}

// Week implements PlanningService.
func (s *PlanningServiceImpl) Week(ctx context.Context, date string) (planning.WeekResponse, error) {
	monday, err := mondayOf(date)
	if err != nil {
		return planning.WeekResponse{}, err
	}
	sunday := monday.AddDate(0, 0, 6)

	entries, err := s.planningRepo.GetRange(ctx,
		monday.Format("2006-01-02"), sunday.Format("2006-01-02"))
	if err != nil {
		return planning.WeekResponse{}, err
	}

	responses := make([]planning.EntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, planning.ToEntryResponse(e))
	}

	return planning.WeekResponse{
		WeekStart: monday.Format("2006-01-02"),
		WeekEnd:   sunday.Format("2006-01-02"),
		Entries:   responses,
	}, nil
}

// mondayOf normalizes any date to the Monday of its ISO week.
func mondayOf(date string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", date)
	}
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	return t.AddDate(0, 0, 1-weekday), nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isOffDay(shift string) bool {
	upper := strings.ToUpper(shift)
	for _, marker := range offDayMarkers {
		if upper == marker {
			return true
		}
	}
	return false
}

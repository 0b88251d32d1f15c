package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/digitalis-hr/pointage-backend-go/internal/domain/attendance"
	"github.com/digitalis-hr/pointage-backend-go/internal/domain/worker"
	"github.com/digitalis-hr/pointage-backend-go/internal/service/file"
	workerService "github.com/digitalis-hr/pointage-backend-go/internal/service/worker"
)

// TxRunner wraps a check-then-act sequence in a storage transaction. The
// production runner binds postgresql.WithTransaction; tests substitute a
// passthrough.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	resolver       *workerService.Resolver
	fileService    file.FileService

	// now is swapped in tests for deterministic dates.
	now func() time.Time

	inTx TxRunner
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	resolver *workerService.Resolver,
	fileService file.FileService,
	inTx TxRunner,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		resolver:       resolver,
		fileService:    fileService,
		now:            time.Now,
		inTx:           inTx,
	}
}

// PunchIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) PunchIn(ctx context.Context, req attendance.PunchInRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	now := a.now()
	date := now.Format("2006-01-02")
	entryTime := now.Format("15:04:05")
	if req.EntryTime != nil {
		entryTime = *req.EntryTime
	}

	var result attendance.AttendanceRecord
	var resolved worker.Worker
	var stored file.StoredFile

	err := a.inTx(ctx, func(ctx context.Context) error {
		w, err := a.resolver.FindOrCreate(ctx, worker.Identity{
			Code:       req.Code,
			FamilyName: req.FamilyName,
			GivenName:  req.GivenName,
			Category:   req.Category,
		})
		if err != nil {
			return fmt.Errorf("failed to resolve worker: %w", err)
		}
		resolved = w

		existing, err := a.attendanceRepo.GetByWorkerAndDate(ctx, w.ID, date)
		if err != nil {
			return err
		}
		if existing != nil {
			if existing.ExitTime == nil {
				return attendance.ErrAlreadyPunchedIn
			}
			return attendance.ErrAlreadyCompletedToday
		}

		stored, err = a.fileService.StoreSignature(ctx, w.ID, date+"-in", req.EntrySignature)
		if err != nil {
			return err
		}

		shift := attendance.DefaultShift
		if req.Shift != nil && *req.Shift != "" {
			shift = *req.Shift
		}

		result, err = a.attendanceRepo.Create(ctx, attendance.AttendanceRecord{
			WorkerID:          w.ID,
			Date:              date,
			EntryTime:         entryTime,
			Shift:             shift,
			EntrySignatureURL: &stored.URL,
		})
		return err
	})
	if err != nil {
		// The signature write is not transactional; undo it so a rolled-back
		// punch leaves no orphaned file behind.
		if stored.Path != "" {
			_ = a.fileService.Remove(ctx, stored.Path)
		}
		return attendance.RecordResponse{}, err
	}

	attachWorker(&result, resolved)
	return attendance.ToRecordResponse(result), nil
}

// PunchOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) PunchOut(ctx context.Context, req attendance.PunchOutRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	now := a.now()
	date := now.Format("2006-01-02")
	exitTime := now.Format("15:04:05")
	if req.ExitTime != nil {
		exitTime = *req.ExitTime
	}

	var result attendance.AttendanceRecord
	var resolved worker.Worker
	var stored file.StoredFile

	err := a.inTx(ctx, func(ctx context.Context) error {
		// Punch-out never creates a worker; resolution is strict.
		w, err := a.resolver.Resolve(ctx, req.Code, req.FamilyName, req.GivenName)
		if err != nil {
			return err
		}
		resolved = w

		rec, err := a.attendanceRepo.GetByWorkerAndDate(ctx, w.ID, date)
		if err != nil {
			return err
		}
		if rec == nil {
			return attendance.ErrNoEntryToday
		}
		if rec.ExitTime != nil {
			return attendance.ErrAlreadyPunchedOut
		}

		workedMinutes, err := attendance.WorkedMinutes(rec.EntryTime, exitTime)
		if err != nil {
			return err
		}

		stored, err = a.fileService.StoreSignature(ctx, w.ID, date+"-out", req.ExitSignature)
		if err != nil {
			return err
		}

		if err := a.attendanceRepo.Close(ctx, rec.ID, exitTime, workedMinutes, &stored.URL); err != nil {
			return err
		}

		rec.ExitTime = &exitTime
		rec.WorkedMinutes = &workedMinutes
		rec.ExitSignatureURL = &stored.URL
		result = *rec
		return nil
	})
	if err != nil {
		if stored.Path != "" {
			_ = a.fileService.Remove(ctx, stored.Path)
		}
		return attendance.RecordResponse{}, err
	}

	attachWorker(&result, resolved)
	return attendance.ToRecordResponse(result), nil
}

// TodayStatus implements attendance.AttendanceService. Absence of a record
// (including an unknown worker) is reported as nil, not an error, so callers
// can tell "not yet punched in" apart from a failure.
func (a *AttendanceServiceImpl) TodayStatus(ctx context.Context, q attendance.TodayStatusQuery) (*attendance.RecordResponse, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	w, err := a.resolver.Resolve(ctx, q.Code, q.FamilyName, q.GivenName)
	if err != nil {
		if errors.Is(err, worker.ErrWorkerNotFound) {
			return nil, nil
		}
		return nil, err
	}

	date := a.now().Format("2006-01-02")
	rec, err := a.attendanceRepo.GetByWorkerAndDate(ctx, w.ID, date)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}

	attachWorker(rec, w)
	resp := attendance.ToRecordResponse(*rec)
	return &resp, nil
}

// History implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) History(ctx context.Context, f attendance.HistoryFilter) (attendance.HistoryResponse, error) {
	if err := f.Validate(); err != nil {
		return attendance.HistoryResponse{}, err
	}

	q := resolveHistoryQuery(f)

	records, count, totalHours, err := a.attendanceRepo.History(ctx, q)
	if err != nil {
		return attendance.HistoryResponse{}, err
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.ToRecordResponse(rec))
	}

	return attendance.HistoryResponse{
		Records:    responses,
		Count:      count,
		TotalHours: totalHours,
	}, nil
}

// resolveHistoryQuery expands the year/month shorthand into an explicit date
// range. An explicit range wins when both forms are supplied.
func resolveHistoryQuery(f attendance.HistoryFilter) attendance.HistoryQuery {
	q := attendance.HistoryQuery{
		Code:       f.Code,
		FamilyName: f.FamilyName,
		GivenName:  f.GivenName,
		Category:   f.Category,
		Shift:      f.Shift,
	}

	if f.StartDate != nil && f.EndDate != nil {
		q.StartDate = f.StartDate
		q.EndDate = f.EndDate
		return q
	}

	if f.Year != nil {
		startMonth, endMonth := time.January, time.December
		if f.Month != nil {
			startMonth = time.Month(*f.Month)
			endMonth = startMonth
		}
		start := time.Date(*f.Year, startMonth, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(*f.Year, endMonth+1, 0, 0, 0, 0, 0, time.UTC) // day 0 = last of month
		s := start.Format("2006-01-02")
		e := end.Format("2006-01-02")
		q.StartDate = &s
		q.EndDate = &e
	}

	return q
}

func attachWorker(rec *attendance.AttendanceRecord, w worker.Worker) {
	rec.WorkerCode = w.Code
	rec.WorkerLastName = w.LastName
	rec.WorkerFirst = w.FirstName
	rec.WorkerCategory = w.Category
}

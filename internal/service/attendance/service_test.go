package attendance

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/digitalis-hr/pointage-backend-go/internal/domain/attendance"
	"github.com/digitalis-hr/pointage-backend-go/internal/domain/worker"
	"github.com/digitalis-hr/pointage-backend-go/internal/pkg/validator"
	"github.com/digitalis-hr/pointage-backend-go/internal/service/file"
	workerService "github.com/digitalis-hr/pointage-backend-go/internal/service/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSignature = "data:image/png;base64,aGVsbG8="

// fakeWorkerRepo keeps workers in memory for service tests.
type fakeWorkerRepo struct {
	workers []worker.Worker
	nextID  int
}

func (f *fakeWorkerRepo) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	for _, existing := range f.workers {
		if w.Code != nil && existing.Code != nil && *existing.Code == *w.Code {
			return worker.Worker{}, worker.ErrCodeExists
		}
		if existing.LastName == w.LastName && existing.FirstName == w.FirstName {
			return worker.Worker{}, worker.ErrNameExists
		}
	}
	f.nextID++
	w.ID = fmt.Sprintf("worker-%d", f.nextID)
	w.CreatedAt = time.Now()
	f.workers = append(f.workers, w)
	return w, nil
}

func (f *fakeWorkerRepo) GetByCode(ctx context.Context, code string) (worker.Worker, error) {
	for _, w := range f.workers {
		if w.Code != nil && *w.Code == code {
			return w, nil
		}
	}
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func (f *fakeWorkerRepo) GetByName(ctx context.Context, familyName, givenName string) (worker.Worker, error) {
	for _, w := range f.workers {
		if w.LastName == familyName && w.FirstName == givenName {
			return w, nil
		}
	}
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func (f *fakeWorkerRepo) GetByID(ctx context.Context, id string) (worker.Worker, error) {
	for _, w := range f.workers {
		if w.ID == id {
			return w, nil
		}
	}
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func (f *fakeWorkerRepo) List(ctx context.Context, filter worker.WorkerFilter) ([]worker.Worker, int64, error) {
	return f.workers, int64(len(f.workers)), nil
}

func (f *fakeWorkerRepo) Update(ctx context.Context, code string, familyName, givenName, category, signatureURL *string) (worker.Worker, error) {
	for i, w := range f.workers {
		if w.Code != nil && *w.Code == code {
			if familyName != nil {
				f.workers[i].LastName = *familyName
			}
			if givenName != nil {
				f.workers[i].FirstName = *givenName
			}
			if category != nil {
				f.workers[i].Category = *category
			}
			if signatureURL != nil {
				f.workers[i].SignatureURL = signatureURL
			}
			return f.workers[i], nil
		}
	}
	return worker.Worker{}, worker.ErrWorkerNotFound
}

// fakeAttendanceRepo keeps records in memory, enforcing the per-day
// uniqueness the storage constraint provides in production. createErr, when
// set, makes Create fail the way a lost insert race does.
type fakeAttendanceRepo struct {
	records   []attendance.AttendanceRecord
	nextID    int
	createErr error
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, rec attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	if f.createErr != nil {
		return attendance.AttendanceRecord{}, f.createErr
	}
	for _, existing := range f.records {
		if existing.WorkerID == rec.WorkerID && existing.Date == rec.Date {
			return attendance.AttendanceRecord{}, attendance.ErrAlreadyPunchedIn
		}
	}
	f.nextID++
	rec.ID = fmt.Sprintf("record-%d", f.nextID)
	rec.CreatedAt = time.Now()
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeAttendanceRepo) GetByWorkerAndDate(ctx context.Context, workerID string, date string) (*attendance.AttendanceRecord, error) {
	for _, rec := range f.records {
		if rec.WorkerID == workerID && rec.Date == date {
			found := rec
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) Close(ctx context.Context, id string, exitTime string, workedMinutes int, exitSignatureURL *string) error {
	for i, rec := range f.records {
		if rec.ID == id {
			if rec.ExitTime != nil {
				return attendance.ErrAlreadyPunchedOut
			}
			f.records[i].ExitTime = &exitTime
			f.records[i].WorkedMinutes = &workedMinutes
			f.records[i].ExitSignatureURL = exitSignatureURL
			return nil
		}
	}
	return attendance.ErrAlreadyPunchedOut
}

func (f *fakeAttendanceRepo) History(ctx context.Context, q attendance.HistoryQuery) ([]attendance.AttendanceRecord, int64, float64, error) {
	var total float64
	for _, rec := range f.records {
		if rec.WorkedMinutes != nil {
			total += attendance.Hours(*rec.WorkedMinutes)
		}
	}
	return f.records, int64(len(f.records)), total, nil
}

// fakeFileService returns deterministic URLs without touching disk.
type fakeFileService struct {
	stored  []string
	removed []string
}

func (f *fakeFileService) StoreSignature(ctx context.Context, ownerKey string, name string, dataURI string) (file.StoredFile, error) {
	path := fmt.Sprintf("signatures/%s/%s.png", ownerKey, name)
	f.stored = append(f.stored, path)
	return file.StoredFile{Path: path, URL: "http://localhost:8080/uploads/" + path}, nil
}

func (f *fakeFileService) Remove(ctx context.Context, path string) error {
	f.removed = append(f.removed, path)
	return nil
}

func passthroughTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(at time.Time) (*AttendanceServiceImpl, *fakeWorkerRepo, *fakeAttendanceRepo) {
	workerRepo := &fakeWorkerRepo{}
	attendanceRepo := &fakeAttendanceRepo{}
	svc := &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		resolver:       workerService.NewResolver(workerRepo),
		fileService:    &fakeFileService{},
		now:            func() time.Time { return at },
		inTx:           passthroughTx,
	}
	return svc, workerRepo, attendanceRepo
}

func strPtr(s string) *string { return &s }

func TestPunchIn_CreatesUnknownWorker(t *testing.T) {
	ctx := context.Background()
	svc, workerRepo, _ := newTestService(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))

	result, err := svc.PunchIn(ctx, attendance.PunchInRequest{
		FamilyName:     "Dupont",
		GivenName:      "Jean",
		EntrySignature: testSignature,
	})
	require.NoError(t, err)

	assert.Equal(t, "Dupont", result.FamilyName)
	assert.Equal(t, "Jean", result.GivenName)
	assert.Equal(t, "AGENT", result.Category)
	assert.Equal(t, "JOUR", result.Shift)
	assert.Equal(t, "2026-03-02", result.Date)
	assert.Equal(t, "08:00:00", result.EntryTime)
	assert.Nil(t, result.ExitTime)
	assert.Nil(t, result.WorkedHours)
	require.NotNil(t, result.EntrySignURL)

	require.Len(t, workerRepo.workers, 1)
	created := workerRepo.workers[0]
	require.NotNil(t, created.Code)
	assert.Regexp(t, regexp.MustCompile(`^AG-[0-9a-f]{8}$`), *created.Code)
}

func TestPunchIn_ReusesWorkerByCode(t *testing.T) {
	ctx := context.Background()
	svc, workerRepo, _ := newTestService(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))

	existing, err := workerRepo.Create(ctx, worker.Worker{
		Code:      strPtr("AG-12ab34cd"),
		LastName:  "Martin",
		FirstName: "Claire",
		Category:  "SUPERVISEUR",
	})
	require.NoError(t, err)

	result, err := svc.PunchIn(ctx, attendance.PunchInRequest{
		Code:           strPtr("AG-12ab34cd"),
		FamilyName:     "Martin",
		GivenName:      "Claire",
		EntrySignature: testSignature,
	})
	require.NoError(t, err)

	assert.Equal(t, existing.ID, result.WorkerID)
	assert.Equal(t, "SUPERVISEUR", result.Category)
	assert.Len(t, workerRepo.workers, 1)
}

func TestPunchIn_ExplicitEntryTime(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC))

	result, err := svc.PunchIn(ctx, attendance.PunchInRequest{
		FamilyName:     "Dupont",
		GivenName:      "Jean",
		EntryTime:      strPtr("08:30:00"),
		EntrySignature: testSignature,
	})
	require.NoError(t, err)
	assert.Equal(t, "08:30:00", result.EntryTime)
}

func TestPunchIn_AlreadyPunchedIn(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))

	req := attendance.PunchInRequest{
		FamilyName:     "Dupont",
		GivenName:      "Jean",
		EntrySignature: testSignature,
	}
	_, err := svc.PunchIn(ctx, req)
	require.NoError(t, err)

	_, err = svc.PunchIn(ctx, req)
	assert.ErrorIs(t, err, attendance.ErrAlreadyPunchedIn)
}

func TestPunchIn_AlreadyCompletedToday(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))

	_, err := svc.PunchIn(ctx, attendance.PunchInRequest{
		FamilyName:     "Dupont",
		GivenName:      "Jean",
		EntrySignature: testSignature,
	})
	require.NoError(t, err)

	_, err = svc.PunchOut(ctx, attendance.PunchOutRequest{
		FamilyName:    strPtr("Dupont"),
		GivenName:     strPtr("Jean"),
		ExitTime:      strPtr("16:00:00"),
		ExitSignature: testSignature,
	})
	require.NoError(t, err)

	_, err = svc.PunchIn(ctx, attendance.PunchInRequest{
		FamilyName:     "Dupont",
		GivenName:      "Jean",
		EntrySignature: testSignature,
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCompletedToday)
}

func TestPunchIn_ValidationFailure(t *testing.T) {
	ctx := context.Background()
	svc, workerRepo, _ := newTestService(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))

	_, err := svc.PunchIn(ctx, attendance.PunchInRequest{
		FamilyName: "Dupont",
		GivenName:  "Jean",
		// entry_signature missing
	})
	require.Error(t, err)

	var validationErrs validator.ValidationErrors
	assert.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, validationErrs.ToMap(), "entry_signature")
	// No worker is created on a rejected request
	assert.Empty(t, workerRepo.workers)
}

func TestPunchIn_RemovesSignatureWhenInsertFails(t *testing.T) {
	ctx := context.Background()
	workerRepo := &fakeWorkerRepo{}
	attendanceRepo := &fakeAttendanceRepo{createErr: attendance.ErrAlreadyPunchedIn}
	fileSvc := &fakeFileService{}
	svc := &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		resolver:       workerService.NewResolver(workerRepo),
		fileService:    fileSvc,
		now:            func() time.Time { return time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC) },
		inTx:           passthroughTx,
	}

	_, err := svc.PunchIn(ctx, attendance.PunchInRequest{
		FamilyName:     "Dupont",
		GivenName:      "Jean",
		EntrySignature: testSignature,
	})
	require.ErrorIs(t, err, attendance.ErrAlreadyPunchedIn)

	// The signature written before the failed insert must not be left behind.
	require.Len(t, fileSvc.stored, 1)
	assert.Equal(t, fileSvc.stored, fileSvc.removed)
}

func TestPunchOut_ComputesWorkedHours(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))

	_, err := svc.PunchIn(ctx, attendance.PunchInRequest{
		FamilyName:     "Dupont",
		GivenName:      "Jean",
		EntrySignature: testSignature,
	})
	require.NoError(t, err)

	result, err := svc.PunchOut(ctx, attendance.PunchOutRequest{
		FamilyName:    strPtr("Dupont"),
		GivenName:     strPtr("Jean"),
		ExitTime:      strPtr("16:00:00"),
		ExitSignature: testSignature,
	})
	require.NoError(t, err)

	require.NotNil(t, result.ExitTime)
	assert.Equal(t, "16:00:00", *result.ExitTime)
	require.NotNil(t, result.WorkedHours)
	assert.Equal(t, 8.0, *result.WorkedHours)
	require.NotNil(t, result.ExitSignURL)
}

func TestPunchOut_NightShiftCrossesMidnight(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(time.Date(2026, 3, 2, 22, 0, 0, 0, time.UTC))

	_, err := svc.PunchIn(ctx, attendance.PunchInRequest{
		FamilyName:     "Nguyen",
		GivenName:      "Linh",
		Shift:          strPtr("NUIT"),
		EntrySignature: testSignature,
	})
	require.NoError(t, err)

	result, err := svc.PunchOut(ctx, attendance.PunchOutRequest{
		FamilyName:    strPtr("Nguyen"),
		GivenName:     strPtr("Linh"),
		ExitTime:      strPtr("06:00:00"),
		ExitSignature: testSignature,
	})
	require.NoError(t, err)

	require.NotNil(t, result.WorkedHours)
	assert.Equal(t, 8.0, *result.WorkedHours)
}

func TestPunchOut_UnknownWorker(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(time.Date(2026, 3, 2, 16, 0, 0, 0, time.UTC))

	_, err := svc.PunchOut(ctx, attendance.PunchOutRequest{
		FamilyName:    strPtr("Inconnu"),
		GivenName:     strPtr("Personne"),
		ExitSignature: testSignature,
	})
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
}

func TestPunchOut_NoEntryToday(t *testing.T) {
	ctx := context.Background()
	svc, workerRepo, _ := newTestService(time.Date(2026, 3, 2, 16, 0, 0, 0, time.UTC))

	_, err := workerRepo.Create(ctx, worker.Worker{
		Code:      strPtr("AG-12ab34cd"),
		LastName:  "Dupont",
		FirstName: "Jean",
		Category:  worker.DefaultCategory,
	})
	require.NoError(t, err)

	_, err = svc.PunchOut(ctx, attendance.PunchOutRequest{
		Code:          strPtr("AG-12ab34cd"),
		ExitSignature: testSignature,
	})
	assert.ErrorIs(t, err, attendance.ErrNoEntryToday)
}

func TestPunchOut_AlreadyPunchedOut(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))

	_, err := svc.PunchIn(ctx, attendance.PunchInRequest{
		FamilyName:     "Dupont",
		GivenName:      "Jean",
		EntrySignature: testSignature,
	})
	require.NoError(t, err)

	req := attendance.PunchOutRequest{
		FamilyName:    strPtr("Dupont"),
		GivenName:     strPtr("Jean"),
		ExitTime:      strPtr("16:00:00"),
		ExitSignature: testSignature,
	}
	_, err = svc.PunchOut(ctx, req)
	require.NoError(t, err)

	_, err = svc.PunchOut(ctx, req)
	assert.ErrorIs(t, err, attendance.ErrAlreadyPunchedOut)
}

func TestTodayStatus_NilWhenNotPunchedIn(t *testing.T) {
	ctx := context.Background()
	svc, workerRepo, _ := newTestService(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))

	_, err := workerRepo.Create(ctx, worker.Worker{
		Code:      strPtr("AG-12ab34cd"),
		LastName:  "Dupont",
		FirstName: "Jean",
		Category:  worker.DefaultCategory,
	})
	require.NoError(t, err)

	result, err := svc.TodayStatus(ctx, attendance.TodayStatusQuery{Code: strPtr("AG-12ab34cd")})
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestTodayStatus_NilForUnknownWorker(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))

	result, err := svc.TodayStatus(ctx, attendance.TodayStatusQuery{
		FamilyName: strPtr("Inconnu"),
		GivenName:  strPtr("Personne"),
	})
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestTodayStatus_ReturnsOpenRecord(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))

	punched, err := svc.PunchIn(ctx, attendance.PunchInRequest{
		FamilyName:     "Dupont",
		GivenName:      "Jean",
		EntrySignature: testSignature,
	})
	require.NoError(t, err)

	result, err := svc.TodayStatus(ctx, attendance.TodayStatusQuery{
		FamilyName: strPtr("Dupont"),
		GivenName:  strPtr("Jean"),
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, punched.ID, result.ID)
	assert.Nil(t, result.ExitTime)
}

func TestHistory_RequiresRangeOrYear(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))

	_, err := svc.History(ctx, attendance.HistoryFilter{})
	var validationErrs validator.ValidationErrors
	assert.ErrorAs(t, err, &validationErrs)
}

func TestResolveHistoryQuery(t *testing.T) {
	year := 2026
	month := 2

	t.Run("year and month expand to the calendar month", func(t *testing.T) {
		q := resolveHistoryQuery(attendance.HistoryFilter{Year: &year, Month: &month})
		require.NotNil(t, q.StartDate)
		require.NotNil(t, q.EndDate)
		assert.Equal(t, "2026-02-01", *q.StartDate)
		assert.Equal(t, "2026-02-28", *q.EndDate)
	})

	t.Run("year alone expands to the full year", func(t *testing.T) {
		q := resolveHistoryQuery(attendance.HistoryFilter{Year: &year})
		require.NotNil(t, q.StartDate)
		require.NotNil(t, q.EndDate)
		assert.Equal(t, "2026-01-01", *q.StartDate)
		assert.Equal(t, "2026-12-31", *q.EndDate)
	})

	t.Run("explicit range wins over year and month", func(t *testing.T) {
		q := resolveHistoryQuery(attendance.HistoryFilter{
			StartDate: strPtr("2026-03-01"),
			EndDate:   strPtr("2026-03-07"),
			Year:      &year,
			Month:     &month,
		})
		require.NotNil(t, q.StartDate)
		assert.Equal(t, "2026-03-01", *q.StartDate)
		assert.Equal(t, "2026-03-07", *q.EndDate)
	})
}

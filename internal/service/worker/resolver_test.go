package worker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/digitalis-hr/pointage-backend-go/internal/domain/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memWorkerRepo struct {
	workers []worker.Worker
	nextID  int

	// createHook runs before each Create, letting tests inject a
	// concurrent writer.
	createHook func()
}

func (m *memWorkerRepo) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	if m.createHook != nil {
		hook := m.createHook
		m.createHook = nil
		hook()
	}
	for _, existing := range m.workers {
		if w.Code != nil && existing.Code != nil && *existing.Code == *w.Code {
			return worker.Worker{}, worker.ErrCodeExists
		}
		if existing.LastName == w.LastName && existing.FirstName == w.FirstName {
			return worker.Worker{}, worker.ErrNameExists
		}
	}
	m.nextID++
	w.ID = fmt.Sprintf("worker-%d", m.nextID)
	w.CreatedAt = time.Now()
	m.workers = append(m.workers, w)
	return w, nil
}

func (m *memWorkerRepo) GetByCode(ctx context.Context, code string) (worker.Worker, error) {
	for _, w := range m.workers {
		if w.Code != nil && *w.Code == code {
			return w, nil
		}
	}
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func (m *memWorkerRepo) GetByName(ctx context.Context, familyName, givenName string) (worker.Worker, error) {
	for _, w := range m.workers {
		if w.LastName == familyName && w.FirstName == givenName {
			return w, nil
		}
	}
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func (m *memWorkerRepo) GetByID(ctx context.Context, id string) (worker.Worker, error) {
	for _, w := range m.workers {
		if w.ID == id {
			return w, nil
		}
	}
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func (m *memWorkerRepo) List(ctx context.Context, filter worker.WorkerFilter) ([]worker.Worker, int64, error) {
	return m.workers, int64(len(m.workers)), nil
}

func (m *memWorkerRepo) Update(ctx context.Context, code string, familyName, givenName, category, signatureURL *string) (worker.Worker, error) {
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func ptr(s string) *string { return &s }

func TestFindOrCreate_ByCode(t *testing.T) {
	ctx := context.Background()
	repo := &memWorkerRepo{}
	existing, err := repo.Create(ctx, worker.Worker{
		Code:      ptr("AG-aabbccdd"),
		LastName:  "Dupont",
		FirstName: "Jean",
		Category:  worker.DefaultCategory,
	})
	require.NoError(t, err)

	resolver := NewResolver(repo)
	w, err := resolver.FindOrCreate(ctx, worker.Identity{
		Code: ptr("AG-aabbccdd"),
		// Names differ from the stored row: the code takes precedence.
		FamilyName: "Autre",
		GivenName:  "Nom",
	})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, w.ID)
	assert.Len(t, repo.workers, 1)
}

func TestFindOrCreate_ByNameWhenCodeUnknown(t *testing.T) {
	ctx := context.Background()
	repo := &memWorkerRepo{}
	existing, err := repo.Create(ctx, worker.Worker{
		Code:      ptr("AG-aabbccdd"),
		LastName:  "Dupont",
		FirstName: "Jean",
		Category:  worker.DefaultCategory,
	})
	require.NoError(t, err)

	resolver := NewResolver(repo)
	w, err := resolver.FindOrCreate(ctx, worker.Identity{
		FamilyName: "Dupont",
		GivenName:  "Jean",
	})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, w.ID)
	assert.Len(t, repo.workers, 1)
}

func TestFindOrCreate_CreatesWithDefaults(t *testing.T) {
	ctx := context.Background()
	repo := &memWorkerRepo{}

	resolver := NewResolver(repo)
	w, err := resolver.FindOrCreate(ctx, worker.Identity{
		FamilyName: "Martin",
		GivenName:  "Claire",
	})
	require.NoError(t, err)

	assert.Equal(t, worker.DefaultCategory, w.Category)
	require.NotNil(t, w.Code)
	assert.Regexp(t, `^AG-[0-9a-f]{8}$`, *w.Code)
}

func TestFindOrCreate_KeepsSuppliedCodeAndCategory(t *testing.T) {
	ctx := context.Background()
	repo := &memWorkerRepo{}

	resolver := NewResolver(repo)
	w, err := resolver.FindOrCreate(ctx, worker.Identity{
		Code:       ptr("EXT-001"),
		FamilyName: "Martin",
		GivenName:  "Claire",
		Category:   ptr("SUPERVISEUR"),
	})
	require.NoError(t, err)

	require.NotNil(t, w.Code)
	assert.Equal(t, "EXT-001", *w.Code)
	assert.Equal(t, "SUPERVISEUR", w.Category)
}

func TestFindOrCreate_LostRaceReusesWinner(t *testing.T) {
	ctx := context.Background()
	repo := &memWorkerRepo{}

	// Another request inserts the same code between the lookup and the
	// create; the unique index rejects ours and we reuse the winner's row.
	repo.createHook = func() {
		_, err := repo.Create(ctx, worker.Worker{
			Code:      ptr("EXT-001"),
			LastName:  "Martin",
			FirstName: "Claire",
			Category:  worker.DefaultCategory,
		})
		require.NoError(t, err)
	}

	resolver := NewResolver(repo)
	w, err := resolver.FindOrCreate(ctx, worker.Identity{
		Code:       ptr("EXT-001"),
		FamilyName: "Martin",
		GivenName:  "Claire",
	})
	require.NoError(t, err)
	assert.Len(t, repo.workers, 1)
	assert.Equal(t, repo.workers[0].ID, w.ID)
}

func TestFindOrCreate_LostNameRaceReusesWinner(t *testing.T) {
	ctx := context.Background()
	repo := &memWorkerRepo{}

	// Two no-code punch-ins for the same name pair race: both lookups miss,
	// the other request inserts first with its own generated code, and our
	// insert is rejected by the name index, not the code index.
	repo.createHook = func() {
		_, err := repo.Create(ctx, worker.Worker{
			Code:      ptr(worker.GenerateCode()),
			LastName:  "Dupont",
			FirstName: "Jean",
			Category:  worker.DefaultCategory,
		})
		require.NoError(t, err)
	}

	resolver := NewResolver(repo)
	w, err := resolver.FindOrCreate(ctx, worker.Identity{
		FamilyName: "Dupont",
		GivenName:  "Jean",
	})
	require.NoError(t, err)
	require.Len(t, repo.workers, 1)
	assert.Equal(t, repo.workers[0].ID, w.ID)
}

func TestResolve_NeverCreates(t *testing.T) {
	ctx := context.Background()
	repo := &memWorkerRepo{}

	resolver := NewResolver(repo)
	_, err := resolver.Resolve(ctx, nil, ptr("Inconnu"), ptr("Personne"))
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
	assert.Empty(t, repo.workers)
}

func TestResolve_CodeFallsBackToNames(t *testing.T) {
	ctx := context.Background()
	repo := &memWorkerRepo{}
	existing, err := repo.Create(ctx, worker.Worker{
		Code:      ptr("AG-aabbccdd"),
		LastName:  "Dupont",
		FirstName: "Jean",
		Category:  worker.DefaultCategory,
	})
	require.NoError(t, err)

	resolver := NewResolver(repo)
	w, err := resolver.Resolve(ctx, ptr("AG-wrong000"), ptr("Dupont"), ptr("Jean"))
	require.NoError(t, err)
	assert.Equal(t, existing.ID, w.ID)
}

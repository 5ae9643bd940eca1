package memstore

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/course-evaluator/internal/apperrors"
	"alfredoptarigan/course-evaluator/internal/models"
	"alfredoptarigan/course-evaluator/internal/repositories"
	"alfredoptarigan/course-evaluator/internal/scoring"
)

func TestEvaluations_InsertIfAbsent(t *testing.T) {
	ctx := context.Background()
	store := New()

	first := &models.EvaluationRecord{StudentID: "S1", OfferingID: "O1", PeriodID: "P1", Scores: scoring.ScoreMap{"A": 80}}
	require.NoError(t, store.Evaluations.InsertIfAbsent(ctx, first))
	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.Equal(t, `{"A":80}`, first.ScoreText)

	second := &models.EvaluationRecord{StudentID: "S1", OfferingID: "O1", PeriodID: "P1", Scores: scoring.ScoreMap{"A": 10}}
	var dup *apperrors.DuplicateSubmissionError
	require.ErrorAs(t, store.Evaluations.InsertIfAbsent(ctx, second), &dup)

	got, err := store.Evaluations.FindByTriple(ctx, "S1", "O1", "P1")
	require.NoError(t, err)
	assert.Equal(t, scoring.ScoreMap{"A": 80}, got.Scores)

	n, _ := store.Evaluations.CountByPeriod(ctx, "P1")
	assert.Equal(t, int64(1), n)
}

func TestEvaluations_ConcurrentInsertsKeepOne(t *testing.T) {
	ctx := context.Background()
	store := New()

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.Evaluations.InsertIfAbsent(ctx, &models.EvaluationRecord{StudentID: "S", OfferingID: "O", PeriodID: "P"})
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	n, _ := store.Evaluations.CountByPeriod(ctx, "P")
	assert.Equal(t, int64(1), n)
}

func TestEvaluations_FindByTripleMissing(t *testing.T) {
	got, err := New().Evaluations.FindByTriple(context.Background(), "S", "O", "P")

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestEvaluations_ListFiltersAndOrder(t *testing.T) {
	ctx := context.Background()
	store := New()
	for _, e := range []models.EvaluationRecord{
		{StudentID: "S1", OfferingID: "O1", PeriodID: "P1"},
		{StudentID: "S2", OfferingID: "O1", PeriodID: "P1"},
		{StudentID: "S1", OfferingID: "O2", PeriodID: "P1"},
		{StudentID: "S1", OfferingID: "O1", PeriodID: "P2"},
	} {
		e := e
		require.NoError(t, store.Evaluations.InsertIfAbsent(ctx, &e))
	}

	all, _ := store.Evaluations.List(ctx, "P1", repositories.EvaluationFilter{})
	assert.Len(t, all, 3)
	assert.Equal(t, "S1", all[0].StudentID)
	assert.Equal(t, "S2", all[1].StudentID)

	mine, _ := store.Evaluations.List(ctx, "P1", repositories.EvaluationFilter{StudentID: "S1", OfferingIDs: []string{"O2"}})
	require.Len(t, mine, 1)
	assert.Equal(t, "O2", mine[0].OfferingID)
}

func TestEvaluations_PutRawDecodesLegacyText(t *testing.T) {
	store := New()
	id := uuid.New()
	store.Evaluations.PutRaw(models.EvaluationRecord{ID: id, StudentID: "S", OfferingID: "O", PeriodID: "P", ScoreText: `{A:90, 'B':"70", broken}`})

	got, err := store.Evaluations.FindByID(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, scoring.ScoreMap{"A": 90, "B": 70}, got.Scores)
}

func TestCriteria_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	store := New()
	catalog, err := scoring.NewCatalog(
		scoring.Criterion{ID: "A", Weight: 60, MaxScore: 100},
		scoring.Criterion{ID: "B", Weight: 40, MaxScore: 100},
	)
	require.NoError(t, err)

	require.NoError(t, store.Criteria.SaveCatalog(ctx, "lecture", catalog))
	require.NoError(t, catalog.RemoveCriterion("A"))

	loaded, err := store.Criteria.GetCatalog(ctx, "lecture")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Len(), "stored catalog is a copy")

	empty, err := store.Criteria.GetCatalog(ctx, "lab")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())

	types, _ := store.Criteria.ListCourseTypes(ctx)
	assert.Equal(t, []string{"lecture"}, types)
}

func TestPeriods_CRUD(t *testing.T) {
	ctx := context.Background()
	store := New()

	p := &models.EvaluationPeriod{ID: "P1", Name: "Spring", Status: models.PeriodNotStarted}
	require.NoError(t, store.Periods.Create(ctx, p))

	var dup *apperrors.DuplicateIDError
	assert.ErrorAs(t, store.Periods.Create(ctx, p), &dup)

	p.Status = models.PeriodActive
	require.NoError(t, store.Periods.Save(ctx, p))
	got, err := store.Periods.FindByID(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, models.PeriodActive, got.Status)

	require.NoError(t, store.Periods.Delete(ctx, "P1"))
	var nf *apperrors.NotFoundError
	_, err = store.Periods.FindByID(ctx, "P1")
	assert.ErrorAs(t, err, &nf)
}

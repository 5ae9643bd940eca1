package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/course-evaluator/internal/apperrors"
	"alfredoptarigan/course-evaluator/internal/models"
	"alfredoptarigan/course-evaluator/internal/repositories"
	"alfredoptarigan/course-evaluator/internal/scoring"
)

func TestSubmit_StoresWeightedTotal(t *testing.T) {
	e := newEnv(t)

	eval := e.submit(t, "S1", "O1", 80, 90)

	assert.InDelta(t, 84.0, eval.TotalScore, 1e-9)
	assert.Equal(t, scoring.GradeGood, eval.Grade())
	assert.Equal(t, "lecture", eval.CourseType)

	stored, err := e.submissions.Get(context.Background(), eval.ID)
	require.NoError(t, err)
	assert.Equal(t, scoring.ScoreMap{"A": 80, "B": 90}, stored.Scores)
	assert.InDelta(t, 84.0, stored.TotalScore, 1e-9)
}

func TestSubmit_DuplicateRejected(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.submit(t, "S1", "O1", 80, 90)

	_, err := e.submissions.Submit(ctx, SubmitInput{
		StudentID: "S1", OfferingID: "O1", PeriodID: "P1",
		Scores: scoring.ScoreMap{"A": 10, "B": 10},
	})

	var dup *apperrors.DuplicateSubmissionError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "S1", dup.StudentID)

	n, err := e.store.Evaluations.CountByPeriod(ctx, "P1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestSubmit_ConcurrentDuplicatesStoreOnce(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	const callers = 32
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		dups     int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			_, err := e.submissions.Submit(ctx, SubmitInput{
				StudentID: "S2", OfferingID: "O3", PeriodID: "P1",
				Scores: scoring.ScoreMap{"A": score, "B": score},
			})
			mu.Lock()
			defer mu.Unlock()
			var dup *apperrors.DuplicateSubmissionError
			switch {
			case err == nil:
				accepted++
			case assert.ErrorAs(t, err, &dup):
				dups++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, accepted)
	assert.Equal(t, callers-1, dups)
	records, err := e.store.Evaluations.List(ctx, "P1", repositories.EvaluationFilter{StudentID: "S2"})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestSubmit_OutOfRangeStoresNothing(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.submissions.Submit(ctx, SubmitInput{
		StudentID: "S1", OfferingID: "O1", PeriodID: "P1",
		Scores: scoring.ScoreMap{"A": 101, "B": 90},
	})

	var oor *apperrors.OutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, "A", oor.CriterionID)

	existing, err := e.store.Evaluations.FindByTriple(ctx, "S1", "O1", "P1")
	require.NoError(t, err)
	assert.Nil(t, existing)
}

func TestSubmit_UnknownKeysIgnoredButKept(t *testing.T) {
	e := newEnv(t)

	eval, err := e.submissions.Submit(context.Background(), SubmitInput{
		StudentID: "S1", OfferingID: "O1", PeriodID: "P1",
		Scores: scoring.ScoreMap{"A": 80, "B": 90, "extra": 500},
	})

	require.NoError(t, err)
	assert.InDelta(t, 84.0, eval.TotalScore, 1e-9)
	stored, err := e.submissions.Get(context.Background(), eval.ID)
	require.NoError(t, err)
	assert.Equal(t, 500, stored.Scores["extra"])
}

func TestSubmit_PeriodNotOpen(t *testing.T) {
	tests := []struct {
		name  string
		today time.Time
		want  models.PeriodStatus
	}{
		{"before start", day(2024, time.December, 31), models.PeriodNotStarted},
		{"after end", day(2025, time.February, 1), models.PeriodCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			e.now = tt.today

			_, err := e.submissions.Submit(context.Background(), SubmitInput{
				StudentID: "S1", OfferingID: "O1", PeriodID: "P1",
				Scores: scoring.ScoreMap{"A": 80},
			})

			var closed *apperrors.PeriodNotOpenError
			require.ErrorAs(t, err, &closed)
			assert.Equal(t, string(tt.want), closed.Status)
		})
	}
}

func TestSubmit_ForceClosedPeriodRejects(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, err := e.periods.ForceClose(ctx, "P1")
	require.NoError(t, err)

	_, err = e.submissions.Submit(ctx, SubmitInput{
		StudentID: "S1", OfferingID: "O1", PeriodID: "P1",
		Scores: scoring.ScoreMap{"A": 80},
	})

	var closed *apperrors.PeriodNotOpenError
	assert.ErrorAs(t, err, &closed)
}

func TestSubmit_InvalidCatalogRejects(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, err := e.criteria.AddCriterion(ctx, "lab", scoring.Criterion{ID: "safety", Name: "Safety", Weight: 50, MaxScore: 10})
	require.NoError(t, err)

	_, err = e.submissions.Submit(ctx, SubmitInput{
		StudentID: "S3", OfferingID: "O4", PeriodID: "P1",
		Scores: scoring.ScoreMap{"safety": 5},
	})

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "criteria", verr.Field)
}

func TestSubmit_MissingFields(t *testing.T) {
	e := newEnv(t)
	tests := []struct {
		name  string
		in    SubmitInput
		field string
	}{
		{"student", SubmitInput{OfferingID: "O1", PeriodID: "P1", Scores: scoring.ScoreMap{"A": 1}}, "student_id"},
		{"offering", SubmitInput{StudentID: "S1", PeriodID: "P1", Scores: scoring.ScoreMap{"A": 1}}, "offering_id"},
		{"period", SubmitInput{StudentID: "S1", OfferingID: "O1", Scores: scoring.ScoreMap{"A": 1}}, "period_id"},
		{"scores", SubmitInput{StudentID: "S1", OfferingID: "O1", PeriodID: "P1"}, "scores"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.submissions.Submit(context.Background(), tt.in)

			var verr *apperrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestSubmit_UnknownOffering(t *testing.T) {
	e := newEnv(t)

	_, err := e.submissions.Submit(context.Background(), SubmitInput{
		StudentID: "S1", OfferingID: "nope", PeriodID: "P1",
		Scores: scoring.ScoreMap{"A": 1},
	})

	var nf *apperrors.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "offering", nf.Kind)
}

func TestPendingOfferings(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	pending, err := e.submissions.PendingOfferings(ctx, "S1", "P1")
	require.NoError(t, err)
	assert.Equal(t, []string{"O1", "O3"}, offeringIDs(pending))

	e.submit(t, "S1", "O1", 70, 70)

	pending, err = e.submissions.PendingOfferings(ctx, "S1", "P1")
	require.NoError(t, err)
	assert.Equal(t, []string{"O3"}, offeringIDs(pending))

	mine, err := e.submissions.ListForStudent(ctx, "S1", "P1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "O1", mine[0].OfferingID)
}

func TestPendingOfferings_RequiresStudent(t *testing.T) {
	e := newEnv(t)

	_, err := e.submissions.PendingOfferings(context.Background(), "T1", "P1")

	var verr *apperrors.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestBreakdown(t *testing.T) {
	e := newEnv(t)
	eval := e.submit(t, "S1", "O1", 80, 90)

	parts, err := e.submissions.Breakdown(context.Background(), eval)

	require.NoError(t, err)
	require.Len(t, parts, 2)
	sum := 0.0
	for _, p := range parts {
		sum += p.Contribution
	}
	assert.InDelta(t, eval.TotalScore, sum, 1e-9)
}

func offeringIDs(os []models.Offering) []string {
	out := make([]string, 0, len(os))
	for _, o := range os {
		out = append(out, o.ID)
	}
	return out
}

func TestSubmit_StoredTotalMatchesReturnedTotal(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, err := e.criteria.ReplaceCatalog(ctx, "lecture", []scoring.Criterion{
		{ID: "A", Name: "Teaching", Weight: 33.33, MaxScore: 100},
		{ID: "B", Name: "Materials", Weight: 66.67, MaxScore: 100},
	})
	require.NoError(t, err)

	submitted := e.submit(t, "S1", "O1", 100, 85)
	stored, err := e.submissions.Get(ctx, submitted.ID)
	require.NoError(t, err)

	assert.InDelta(t, 89.9995, submitted.TotalScore, 1e-9)
	assert.Equal(t, submitted.TotalScore, stored.TotalScore)
	assert.Equal(t, scoring.GradeGood, submitted.Grade())
	assert.Equal(t, submitted.Grade(), stored.Grade())
}

func TestSubmit_RejectsKeysThatBreakStoredScores(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.submissions.Submit(ctx, SubmitInput{
		StudentID: "S1", OfferingID: "O1", PeriodID: "P1",
		Scores: scoring.ScoreMap{"A": 50, "B:100,C": 1},
	})

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "scores", verr.Field)

	existing, err := e.store.Evaluations.FindByTriple(ctx, "S1", "O1", "P1")
	require.NoError(t, err)
	assert.Nil(t, existing)
}

func TestSubmit_ReadBackTotalMatchesRecomputed(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	eval, err := e.submissions.Submit(ctx, SubmitInput{
		StudentID: "S1", OfferingID: "O1", PeriodID: "P1",
		Scores: scoring.ScoreMap{"A": 50, "extra_1": 7},
	})
	require.NoError(t, err)

	stored, err := e.submissions.Get(ctx, eval.ID)
	require.NoError(t, err)
	assert.Equal(t, scoring.ScoreMap{"A": 50, "extra_1": 7}, stored.Scores)

	catalog, err := e.store.Criteria.GetCatalog(ctx, "lecture")
	require.NoError(t, err)
	recomputed, err := scoring.ComputeTotal(catalog, stored.Scores)
	require.NoError(t, err)
	assert.InDelta(t, stored.TotalScore, recomputed, 1e-9)
}

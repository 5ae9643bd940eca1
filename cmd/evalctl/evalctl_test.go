package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/course-evaluator/internal/app"
	"alfredoptarigan/course-evaluator/internal/config"
	"alfredoptarigan/course-evaluator/internal/models"
	"alfredoptarigan/course-evaluator/internal/scoring"
	"alfredoptarigan/course-evaluator/internal/services"
)

func memoryServices(t *testing.T) (*app.Repositories, *app.Services) {
	t.Helper()
	cfg := &config.Config{
		Database:   config.DatabaseConfig{Driver: config.DriverMemory},
		Evaluation: config.EvaluationConfig{MinTeacherSamples: 1, MinCourseSamples: 1},
		Export:     config.ExportConfig{Path: t.TempDir()},
	}
	repos, err := app.OpenRepositories(cfg)
	require.NoError(t, err)
	clock := func() time.Time { return time.Date(2025, time.January, 10, 12, 0, 0, 0, time.UTC) }
	return repos, app.NewServices(cfg, repos, clock)
}

func TestSeedFiles(t *testing.T) {
	ctx := context.Background()
	repos, svc := memoryServices(t)

	var criteria criteriaFile
	require.NoError(t, readYAML("../../configs/criteria.yaml", &criteria))
	require.NoError(t, seedCriteria(ctx, svc.Criteria, criteria))

	types, err := svc.Criteria.CourseTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"lab", "lecture"}, types)
	lab, err := svc.Criteria.Catalog(ctx, "lab")
	require.NoError(t, err)
	assert.True(t, lab.IsValid())
	guidance, ok := lab.Get("guidance")
	require.True(t, ok)
	assert.Equal(t, 10, guidance.MaxScore)

	var dir directoryFile
	require.NoError(t, readYAML("../../configs/directory.yaml", &dir))
	require.NoError(t, seedDirectory(ctx, repos.Directory, svc.Accounts, dir))
	// Seeding twice only upserts.
	require.NoError(t, seedDirectory(ctx, repos.Directory, svc.Accounts, dir))

	offering, err := repos.Directory.FindOffering(ctx, "CS101-A")
	require.NoError(t, err)
	assert.Equal(t, "2024-2", offering.Semester)
	student, err := svc.Accounts.Get(ctx, "S001")
	require.NoError(t, err)
	require.NotNil(t, student.Student)
	assert.Equal(t, "CS-2024-1", student.Student.ClassID)
}

func TestSeedCriteria_RejectsInvalidCatalog(t *testing.T) {
	_, svc := memoryServices(t)

	err := seedCriteria(context.Background(), svc.Criteria, criteriaFile{
		CourseTypes: map[string][]scoring.Criterion{
			"seminar": {{ID: "a", Name: "A", Weight: 80, MaxScore: 10}},
		},
	})

	assert.ErrorContains(t, err, "seminar")
}

func TestReport(t *testing.T) {
	ctx := context.Background()
	repos, svc := memoryServices(t)
	var criteria criteriaFile
	require.NoError(t, readYAML("../../configs/criteria.yaml", &criteria))
	require.NoError(t, seedCriteria(ctx, svc.Criteria, criteria))
	var dir directoryFile
	require.NoError(t, readYAML("../../configs/directory.yaml", &dir))
	require.NoError(t, seedDirectory(ctx, repos.Directory, svc.Accounts, dir))

	_, err := svc.Periods.Create(ctx, services.CreatePeriodInput{
		ID: "2024-2-final", Name: "Final", Semester: "2024-2",
		StartDate: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	_, err = svc.Submissions.Submit(ctx, services.SubmitInput{
		StudentID: "S001", OfferingID: "CS101-A", PeriodID: "2024-2-final",
		Scores: scoring.ScoreMap{"teaching": 90, "materials": 80, "feedback": 70, "workload": 100},
	})
	require.NoError(t, err)

	periodID = "2024-2-final"
	reportCSV = true
	t.Cleanup(func() { periodID, reportCSV = "", false })

	var out bytes.Buffer
	require.NoError(t, report(ctx, &out, svc, "teachers"))
	assert.Contains(t, out.String(), "Dr. Ada Lin")
	assert.Contains(t, out.String(), "86.00")
	assert.Contains(t, out.String(), "💾 Written 2024-2-final_teachers_")

	out.Reset()
	require.NoError(t, report(ctx, &out, svc, "participation"))
	assert.Contains(t, out.String(), "33.3%")

	assert.Error(t, report(ctx, &out, svc, "horoscope"))
}

func TestPrintPeriods(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printPeriods(&out, []models.EvaluationPeriod{{
		ID: "P1", Name: "Spring", Semester: "2024-2",
		StartDate: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC),
		Status:    models.PeriodActive,
	}}))

	assert.Contains(t, out.String(), "2025-01-31")
	assert.Contains(t, out.String(), "active")
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"alfredoptarigan/course-evaluator/internal/models"
	"alfredoptarigan/course-evaluator/internal/repositories/memstore"
	"alfredoptarigan/course-evaluator/internal/scoring"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

// env is a fully seeded in-memory deployment with the clock pinned inside
// period P1 (2025-01-01 .. 2025-01-31).
type env struct {
	store       *memstore.Store
	now         time.Time
	periods     PeriodService
	criteria    CriteriaService
	submissions SubmissionService
	statistics  StatisticsService
	accounts    AccountService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	e := &env{store: memstore.New(), now: day(2025, time.January, 15)}
	clock := func() time.Time { return e.now }

	e.periods = NewPeriodService(e.store.Periods, e.store.Evaluations, clock)
	e.criteria = NewCriteriaService(e.store.Criteria)
	e.submissions = NewSubmissionService(e.store.Evaluations, e.store.Criteria, e.store.Directory, e.store.Users, e.periods)
	e.statistics = NewStatisticsService(e.store.Evaluations, e.store.Directory, e.store.Users, e.periods,
		StatisticsConfig{MinTeacherSamples: 2, MinCourseSamples: 2})
	e.accounts = NewAccountService(e.store.Users, NewAccountPolicy())

	_, err := e.periods.Create(ctx, CreatePeriodInput{
		ID:        "P1",
		Name:      "Spring midterm",
		Semester:  "2024-2",
		StartDate: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = e.criteria.ReplaceCatalog(ctx, "lecture", []scoring.Criterion{
		{ID: "A", Name: "Teaching", Weight: 60, MaxScore: 100},
		{ID: "B", Name: "Materials", Weight: 40, MaxScore: 100},
	})
	require.NoError(t, err)

	dir := e.store.Directory
	for _, c := range []models.College{{ID: "CS", Name: "Computing"}, {ID: "EE", Name: "Electrical"}} {
		require.NoError(t, dir.UpsertCollege(ctx, &c))
	}
	for _, c := range []models.Class{{ID: "K1", Name: "CS-1", CollegeID: "CS"}, {ID: "K2", Name: "EE-1", CollegeID: "EE"}} {
		require.NoError(t, dir.UpsertClass(ctx, &c))
	}
	for _, c := range []models.Course{
		{ID: "C1", Name: "Algorithms", CourseType: "lecture", CollegeID: "CS"},
		{ID: "C2", Name: "Circuits", CourseType: "lecture", CollegeID: "EE"},
		{ID: "C3", Name: "Lab", CourseType: "lab", CollegeID: "EE"},
	} {
		require.NoError(t, dir.UpsertCourse(ctx, &c))
	}
	for _, o := range []models.Offering{
		{ID: "O1", CourseID: "C1", TeacherID: "T1", ClassID: "K1", Semester: "2024-2"},
		{ID: "O2", CourseID: "C2", TeacherID: "T2", ClassID: "K2", Semester: "2024-2"},
		{ID: "O3", CourseID: "C1", TeacherID: "T2", ClassID: "K1", Semester: "2024-2"},
		{ID: "O4", CourseID: "C3", TeacherID: "T2", ClassID: "K2", Semester: "2024-2"},
		{ID: "O9", CourseID: "C1", TeacherID: "T1", ClassID: "K1", Semester: "2023-1"},
	} {
		require.NoError(t, dir.UpsertOffering(ctx, &o))
	}

	users := []models.UserRecord{
		{ID: "S1", Name: "Ana", Role: models.RoleStudent, Student: &models.StudentProfile{ClassID: "K1", CollegeID: "CS"}},
		{ID: "S2", Name: "Ben", Role: models.RoleStudent, Student: &models.StudentProfile{ClassID: "K1", CollegeID: "CS"}},
		{ID: "S3", Name: "Cai", Role: models.RoleStudent, Student: &models.StudentProfile{ClassID: "K2", CollegeID: "EE"}},
		{ID: "S4", Name: "Dee", Role: models.RoleStudent, Student: &models.StudentProfile{ClassID: "K2", CollegeID: "EE"}},
		{ID: "T1", Name: "Prof. Lin", Role: models.RoleTeacher, Teacher: &models.TeacherProfile{CollegeID: "CS"}},
		{ID: "T2", Name: "Prof. Moe", Role: models.RoleTeacher, Teacher: &models.TeacherProfile{CollegeID: "EE"}},
		{ID: "ADMIN001", Name: "Root", Role: models.RoleAdministrator},
	}
	for i := range users {
		require.NoError(t, e.accounts.Register(ctx, &users[i]))
	}
	return e
}

func (e *env) submit(t *testing.T, student, offering string, a, b int) *models.EvaluationRecord {
	t.Helper()
	eval, err := e.submissions.Submit(context.Background(), SubmitInput{
		StudentID:  student,
		OfferingID: offering,
		PeriodID:   "P1",
		Scores:     scoring.ScoreMap{"A": a, "B": b},
	})
	require.NoError(t, err)
	return eval
}

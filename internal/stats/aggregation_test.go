package stats

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/course-evaluator/internal/scoring"
)

const period = "P1"

func row(student, teacher, course, class, college string, total float64) Row {
	return Row{
		EvaluationID: fmt.Sprintf("%s-%s-%s", student, teacher, course),
		StudentID:    student,
		OfferingID:   teacher + "/" + course,
		PeriodID:     period,
		TeacherID:    teacher,
		CourseID:     course,
		ClassID:      class,
		CollegeID:    college,
		TotalScore:   total,
	}
}

func fixture() []Row {
	return []Row{
		row("s1", "T1", "C1", "K1", "CS", 90),
		row("s2", "T1", "C1", "K1", "CS", 80),
		row("s3", "T1", "C1", "K2", "CS", 70),
		row("s1", "T2", "C2", "K1", "CS", 95),
		row("s2", "T2", "C2", "K1", "CS", 85),
		row("s1", "T3", "C3", "K3", "EE", 80),
		row("s4", "T3", "C3", "K3", "EE", 80),
		row("s5", "T4", "C4", "K3", "EE", 80),
		row("s6", "T4", "C4", "K3", "EE", 80),
		{StudentID: "s9", PeriodID: "other", TeacherID: "T1", CourseID: "C1", TotalScore: 10},
	}
}

func keys(groups []GroupStat) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Key
	}
	return out
}

func TestByTeacher_Summary(t *testing.T) {
	groups := ByTeacher(fixture(), period)

	require.Len(t, groups, 4)
	assert.Equal(t, []string{"T2", "T1", "T3", "T4"}, keys(groups))

	t1 := groups[1]
	assert.Equal(t, "T1", t1.Key)
	assert.Equal(t, 3, t1.Count)
	assert.InDelta(t, 80.0, t1.Average, 1e-9)
	assert.Equal(t, 70.0, t1.Min)
	assert.Equal(t, 90.0, t1.Max)
	assert.Equal(t, scoring.GradeGood, t1.Grade)
	assert.Equal(t, 2, t1.Rank)
}

func TestByTeacher_TieBreaks(t *testing.T) {
	rows := []Row{
		row("a", "TB", "C", "K", "X", 80),
		row("b", "TB", "C", "K", "X", 80),
		row("c", "TA", "C", "K", "X", 80),
		row("d", "TC", "C", "K", "X", 80),
		row("e", "TC", "C", "K", "X", 80),
	}

	groups := ByTeacher(rows, period)

	assert.Equal(t, []string{"TB", "TC", "TA"}, keys(groups), "equal averages: more evaluations first, then id")
	assert.Equal(t, []int{1, 2, 3}, []int{groups[0].Rank, groups[1].Rank, groups[2].Rank})
}

func TestByTeacher_OrderIndependent(t *testing.T) {
	rows := fixture()
	// Scores chosen so naive summation order changes the low bits.
	for i := 0; i < 40; i++ {
		rows = append(rows, row(fmt.Sprintf("x%d", i), "T5", "C5", "K5", "ME", 60+float64(i)*0.1+1e-13*float64(i%7)))
	}
	want := ByTeacher(rows, period)

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]Row(nil), rows...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, ByTeacher(shuffled, period))
	}
}

func TestGroupBy_DoesNotMutateInput(t *testing.T) {
	rows := fixture()
	before := append([]Row(nil), rows...)

	ByTeacher(rows, period)
	ByCollege(rows, period)
	GradeDistribution(rows)

	assert.Equal(t, before, rows)
}

func TestGroupBy_SkipsOtherPeriodsAndEmptyKeys(t *testing.T) {
	rows := append(fixture(), Row{StudentID: "s7", PeriodID: period, TotalScore: 50})

	groups := ByTeacher(rows, period)

	for _, g := range groups {
		assert.NotEmpty(t, g.Key)
		if g.Key == "T1" {
			assert.Equal(t, 3, g.Count, "row from another period must not be counted")
		}
	}
}

func TestAggregations_EmptyInput(t *testing.T) {
	assert.Empty(t, ByTeacher(nil, period))
	assert.Empty(t, ByCourse([]Row{}, period))
	assert.Empty(t, ByClass(nil, period))
	assert.Empty(t, ByCollege(nil, period))
	assert.Empty(t, RankTeachers(nil, period, MinTeacherSamples))
	assert.Equal(t, 0, ParticipatedStudents(nil, period))
	assert.Equal(t, 0, GradeDistribution(nil).Total)
}

func TestByCourseAndClass(t *testing.T) {
	courses := ByCourse(fixture(), period)
	assert.Equal(t, []string{"C2", "C1", "C3", "C4"}, keys(courses))

	classes := ByClass(fixture(), period)
	require.Len(t, classes, 3)
	assert.Equal(t, "K1", classes[0].Key)
	assert.Equal(t, 4, classes[0].Count)
}

func TestByCollege_Denominators(t *testing.T) {
	colleges := ByCollege(fixture(), period)

	require.Len(t, colleges, 2)
	cs := colleges[0]
	assert.Equal(t, "CS", cs.Key)
	assert.Equal(t, 5, cs.Count)
	assert.Equal(t, 2, cs.TeacherCount)
	assert.Equal(t, 2, cs.CourseCount)
	assert.InDelta(t, 2.5, cs.EvaluationsPerTeacher, 1e-9)

	ee := colleges[1]
	assert.Equal(t, "EE", ee.Key)
	assert.Equal(t, 4, ee.Count)
	assert.InDelta(t, 80.0, ee.Average, 1e-9)
}

func TestWithNames(t *testing.T) {
	groups := ByTeacher(fixture(), period)

	named := WithNames(groups, map[string]string{"T1": "Dr. Rivera"})

	assert.Equal(t, "Dr. Rivera", named[1].Name)
	assert.Empty(t, groups[1].Name, "original slice is untouched")
}

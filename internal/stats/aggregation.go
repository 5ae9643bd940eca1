// Package stats aggregates evaluation records into grouped, ranked
// statistics.
//
// Every function is pure: inputs are never modified and results depend only
// on the input values, not on their order. Empty input yields empty results.
package stats

import (
	"sort"

	"alfredoptarigan/course-evaluator/internal/scoring"
)

// Row is an evaluation record joined with its offering's dimensions.
type Row struct {
	EvaluationID string
	StudentID    string
	OfferingID   string
	PeriodID     string
	TeacherID    string
	CourseID     string
	ClassID      string
	CollegeID    string
	TotalScore   float64
}

// GroupStat summarises the records sharing one grouping key.
type GroupStat struct {
	Key     string        `json:"key"`
	Name    string        `json:"name,omitempty"`
	Count   int           `json:"count"`
	Average float64       `json:"average"`
	Min     float64       `json:"min"`
	Max     float64       `json:"max"`
	Grade   scoring.Grade `json:"grade"`
	Rank    int           `json:"rank"`
}

// CollegeStat adds the denominators used for per-teacher and per-course
// rates.
type CollegeStat struct {
	GroupStat
	TeacherCount          int     `json:"teacher_count"`
	CourseCount           int     `json:"course_count"`
	EvaluationsPerTeacher float64 `json:"evaluations_per_teacher"`
	EvaluationsPerCourse  float64 `json:"evaluations_per_course"`
}

// Dimension selects the grouping key of a row.
type Dimension func(Row) string

var (
	TeacherKey Dimension = func(r Row) string { return r.TeacherID }
	CourseKey  Dimension = func(r Row) string { return r.CourseID }
	ClassKey   Dimension = func(r Row) string { return r.ClassID }
	CollegeKey Dimension = func(r Row) string { return r.CollegeID }
)

// ByTeacher groups the period's rows by teacher.
func ByTeacher(rows []Row, periodID string) []GroupStat {
	return GroupBy(rows, periodID, TeacherKey)
}

// ByCourse groups the period's rows by course.
func ByCourse(rows []Row, periodID string) []GroupStat {
	return GroupBy(rows, periodID, CourseKey)
}

// ByClass groups the period's rows by class.
func ByClass(rows []Row, periodID string) []GroupStat {
	return GroupBy(rows, periodID, ClassKey)
}

// ByCollege groups the period's rows by college and counts the distinct
// teachers and courses evaluated in each.
func ByCollege(rows []Row, periodID string) []CollegeStat {
	groups := GroupBy(rows, periodID, CollegeKey)
	teachers := map[string]map[string]struct{}{}
	courses := map[string]map[string]struct{}{}
	for _, r := range rows {
		if r.PeriodID != periodID || r.CollegeID == "" {
			continue
		}
		addTo(teachers, r.CollegeID, r.TeacherID)
		addTo(courses, r.CollegeID, r.CourseID)
	}

	out := make([]CollegeStat, 0, len(groups))
	for _, g := range groups {
		cs := CollegeStat{
			GroupStat:    g,
			TeacherCount: len(teachers[g.Key]),
			CourseCount:  len(courses[g.Key]),
		}
		cs.EvaluationsPerTeacher = ratio(g.Count, cs.TeacherCount)
		cs.EvaluationsPerCourse = ratio(g.Count, cs.CourseCount)
		out = append(out, cs)
	}
	return out
}

// GroupBy groups the rows of periodID by key and returns one GroupStat per
// non-empty key, sorted by average descending, then count descending, then
// key ascending. Rank is the 1-based position in that order.
func GroupBy(rows []Row, periodID string, key Dimension) []GroupStat {
	scores := map[string][]float64{}
	for _, r := range rows {
		if r.PeriodID != periodID {
			continue
		}
		k := key(r)
		if k == "" {
			continue
		}
		scores[k] = append(scores[k], r.TotalScore)
	}

	out := make([]GroupStat, 0, len(scores))
	for k, s := range scores {
		out = append(out, summarize(k, s))
	}
	sortGroups(out)
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

func summarize(key string, scores []float64) GroupStat {
	// Summing in sorted order keeps the average bit-identical whatever order
	// the rows arrived in.
	sort.Float64s(scores)
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	avg := sum / float64(len(scores))
	return GroupStat{
		Key:     key,
		Count:   len(scores),
		Average: avg,
		Min:     scores[0],
		Max:     scores[len(scores)-1],
		Grade:   scoring.GradeFor(avg),
	}
}

func sortGroups(groups []GroupStat) {
	sort.Slice(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		if a.Average != b.Average {
			return a.Average > b.Average
		}
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Key < b.Key
	})
}

func addTo(sets map[string]map[string]struct{}, group, member string) {
	if member == "" {
		return
	}
	s, ok := sets[group]
	if !ok {
		s = map[string]struct{}{}
		sets[group] = s
	}
	s[member] = struct{}{}
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// WithNames returns a copy of groups with Name filled from names.
func WithNames(groups []GroupStat, names map[string]string) []GroupStat {
	out := make([]GroupStat, len(groups))
	copy(out, groups)
	for i := range out {
		out[i].Name = names[out[i].Key]
	}
	return out
}

func sortParticipation(ps []Participation) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Rate != ps[j].Rate {
			return ps[i].Rate > ps[j].Rate
		}
		return ps[i].Scope < ps[j].Scope
	})
}

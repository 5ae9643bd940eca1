package stats

import "alfredoptarigan/course-evaluator/internal/scoring"

// ParticipationRate returns participated/total as a percentage, or 0 when
// there are no students.
func ParticipationRate(participated, total int) float64 {
	return percent(participated, total)
}

func percent(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// ParticipatedStudents counts the distinct students with at least one
// evaluation in periodID.
func ParticipatedStudents(rows []Row, periodID string) int {
	seen := map[string]struct{}{}
	for _, r := range rows {
		if r.PeriodID == periodID && r.StudentID != "" {
			seen[r.StudentID] = struct{}{}
		}
	}
	return len(seen)
}

// Participation is the participation summary of one period or one college.
type Participation struct {
	Scope        string  `json:"scope"`
	Participated int     `json:"participated"`
	Total        int     `json:"total"`
	Rate         float64 `json:"rate"`
}

// ParticipationByCollege computes per-college participation. totals maps
// college id to its student count; colleges without students are reported
// with a rate of 0.
func ParticipationByCollege(rows []Row, periodID string, totals map[string]int) []Participation {
	students := map[string]map[string]struct{}{}
	for _, r := range rows {
		if r.PeriodID != periodID {
			continue
		}
		addTo(students, r.CollegeID, r.StudentID)
	}

	keys := map[string]struct{}{}
	for k := range totals {
		keys[k] = struct{}{}
	}
	for k := range students {
		keys[k] = struct{}{}
	}

	out := make([]Participation, 0, len(keys))
	for k := range keys {
		if k == "" {
			continue
		}
		p := Participation{Scope: k, Participated: len(students[k]), Total: totals[k]}
		p.Rate = ParticipationRate(p.Participated, p.Total)
		out = append(out, p)
	}
	sortParticipation(out)
	return out
}

// Bucket is the number of records in one grade band.
type Bucket struct {
	Grade   scoring.Grade `json:"grade"`
	Count   int           `json:"count"`
	Percent float64       `json:"percent"`
}

// Distribution counts records per grade band. The bucket counts always sum
// to Total.
type Distribution struct {
	Buckets []Bucket `json:"buckets"`
	Total   int      `json:"total"`
}

// Count returns the number of records in band g.
func (d Distribution) Count(g scoring.Grade) int {
	for _, b := range d.Buckets {
		if b.Grade == g {
			return b.Count
		}
	}
	return 0
}

// GradeDistribution places every row in exactly one of the five bands.
func GradeDistribution(rows []Row) Distribution {
	counts := make(map[scoring.Grade]int, len(scoring.Grades))
	for _, r := range rows {
		counts[scoring.GradeFor(r.TotalScore)]++
	}
	d := Distribution{Buckets: make([]Bucket, 0, len(scoring.Grades)), Total: len(rows)}
	for _, g := range scoring.Grades {
		d.Buckets = append(d.Buckets, Bucket{
			Grade:   g,
			Count:   counts[g],
			Percent: percent(counts[g], len(rows)),
		})
	}
	return d
}

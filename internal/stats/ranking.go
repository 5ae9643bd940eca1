package stats

// Minimum evaluation counts below which a group is left out of rankings.
const (
	MinTeacherSamples = 3
	MinCourseSamples  = 5
)

// RankTeachers returns the teachers of periodID with at least minSamples
// evaluations, ranked.
func RankTeachers(rows []Row, periodID string, minSamples int) []GroupStat {
	return Rank(ByTeacher(rows, periodID), minSamples)
}

// RankCourses returns the courses of periodID with at least minSamples
// evaluations, ranked.
func RankCourses(rows []Row, periodID string, minSamples int) []GroupStat {
	return Rank(ByCourse(rows, periodID), minSamples)
}

// Rank drops groups with fewer than minSamples evaluations and renumbers the
// remainder. groups must already be in ranking order, as GroupBy returns it.
func Rank(groups []GroupStat, minSamples int) []GroupStat {
	out := make([]GroupStat, 0, len(groups))
	for _, g := range groups {
		if g.Count < minSamples {
			continue
		}
		g.Rank = len(out) + 1
		out = append(out, g)
	}
	return out
}

// Top returns at most n leading groups.
func Top(groups []GroupStat, n int) []GroupStat {
	if n < 0 || n >= len(groups) {
		return groups
	}
	return groups[:n]
}

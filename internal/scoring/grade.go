package scoring

// Grade is the letter band derived from a weighted total.
type Grade string

const (
	GradeExcellent Grade = "Excellent"
	GradeGood      Grade = "Good"
	GradeAverage   Grade = "Average"
	GradePass      Grade = "Pass"
	GradeFail      Grade = "Fail"
)

// Lower bounds of each band, inclusive.
const (
	ExcellentThreshold = 90.0
	GoodThreshold      = 80.0
	AverageThreshold   = 70.0
	PassThreshold      = 60.0
)

// Grades lists every band from best to worst.
var Grades = []Grade{GradeExcellent, GradeGood, GradeAverage, GradePass, GradeFail}

// GradeFor maps a total to its band. Lower bounds are inclusive.
func GradeFor(total float64) Grade {
	switch {
	case total >= ExcellentThreshold:
		return GradeExcellent
	case total >= GoodThreshold:
		return GradeGood
	case total >= AverageThreshold:
		return GradeAverage
	case total >= PassThreshold:
		return GradePass
	default:
		return GradeFail
	}
}

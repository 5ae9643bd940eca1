package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"alfredoptarigan/course-evaluator/internal/models"
	"alfredoptarigan/course-evaluator/internal/repositories"
	"alfredoptarigan/course-evaluator/internal/stats"
)

// Overview bundles the headline statistics of one period.
type Overview struct {
	Period           *models.EvaluationPeriod `json:"period"`
	TotalEvaluations int                      `json:"total_evaluations"`
	Participation    stats.Participation      `json:"participation"`
	ByCollege        []stats.CollegeStat      `json:"by_college"`
	CollegeTurnout   []stats.Participation    `json:"college_participation"`
	Distribution     stats.Distribution       `json:"distribution"`
	TopTeachers      []stats.GroupStat        `json:"top_teachers"`
	TopCourses       []stats.GroupStat        `json:"top_courses"`
}

type StatisticsService interface {
	ByTeacher(ctx context.Context, periodID string) ([]stats.GroupStat, error)
	ByCourse(ctx context.Context, periodID string) ([]stats.GroupStat, error)
	ByClass(ctx context.Context, periodID string) ([]stats.GroupStat, error)
	ByCollege(ctx context.Context, periodID string) ([]stats.CollegeStat, error)
	TeacherRanking(ctx context.Context, periodID string) ([]stats.GroupStat, error)
	CourseRanking(ctx context.Context, periodID string) ([]stats.GroupStat, error)
	Participation(ctx context.Context, periodID string) (stats.Participation, []stats.Participation, error)
	Distribution(ctx context.Context, periodID string) (stats.Distribution, error)
	Overview(ctx context.Context, periodID string, top int) (*Overview, error)
}

type StatisticsConfig struct {
	MinTeacherSamples int
	MinCourseSamples  int
}

type statisticsService struct {
	evalRepo      repositories.EvaluationRepository
	directoryRepo repositories.DirectoryRepository
	userRepo      repositories.UserRepository
	periods       PeriodService
	cfg           StatisticsConfig
}

func NewStatisticsService(
	evalRepo repositories.EvaluationRepository,
	directoryRepo repositories.DirectoryRepository,
	userRepo repositories.UserRepository,
	periods PeriodService,
	cfg StatisticsConfig,
) StatisticsService {
	if cfg.MinTeacherSamples <= 0 {
		cfg.MinTeacherSamples = stats.MinTeacherSamples
	}
	if cfg.MinCourseSamples <= 0 {
		cfg.MinCourseSamples = stats.MinCourseSamples
	}
	return &statisticsService{
		evalRepo:      evalRepo,
		directoryRepo: directoryRepo,
		userRepo:      userRepo,
		periods:       periods,
		cfg:           cfg,
	}
}

// names holds display names per dimension; ids are only unique within one.
type names struct {
	teachers, courses, classes, colleges map[string]string
}

// snapshot is everything one report needs, loaded once.
type snapshot struct {
	period   *models.EvaluationPeriod
	rows     []stats.Row
	names    names
	students map[string]int
	enrolled int
}

func (s *statisticsService) load(ctx context.Context, periodID string) (*snapshot, error) {
	period, err := s.periods.Get(ctx, periodID)
	if err != nil {
		return nil, err
	}

	var (
		records   []models.EvaluationRecord
		offerings []models.Offering
		courses   []models.Course
		classes   []models.Class
		colleges  []models.College
		teachers  []models.UserRecord
		students  []models.UserRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		records, err = s.evalRepo.List(gctx, periodID, repositories.EvaluationFilter{})
		return err
	})
	g.Go(func() (err error) {
		offerings, err = s.directoryRepo.ListOfferings(gctx, "")
		return err
	})
	g.Go(func() (err error) {
		courses, err = s.directoryRepo.ListCourses(gctx)
		return err
	})
	g.Go(func() (err error) {
		classes, err = s.directoryRepo.ListClasses(gctx)
		return err
	})
	g.Go(func() (err error) {
		colleges, err = s.directoryRepo.ListColleges(gctx)
		return err
	})
	g.Go(func() (err error) {
		teachers, err = s.userRepo.ListByRole(gctx, models.RoleTeacher)
		return err
	})
	g.Go(func() (err error) {
		students, err = s.userRepo.ListByRole(gctx, models.RoleStudent)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := &snapshot{
		period:   period,
		names: names{
			teachers: make(map[string]string, len(teachers)),
			courses:  make(map[string]string, len(courses)),
			classes:  make(map[string]string, len(classes)),
			colleges: make(map[string]string, len(colleges)),
		},
		students: make(map[string]int),
		enrolled: len(students),
	}
	for _, c := range colleges {
		snap.names.colleges[c.ID] = c.Name
		snap.students[c.ID] = 0
	}
	for _, c := range classes {
		snap.names.classes[c.ID] = c.Name
	}
	courseByID := make(map[string]models.Course, len(courses))
	for _, c := range courses {
		courseByID[c.ID] = c
		snap.names.courses[c.ID] = c.Name
	}
	for _, t := range teachers {
		snap.names.teachers[t.ID] = t.Name
	}
	for i := range students {
		if id := students[i].CollegeID(); id != "" {
			snap.students[id]++
		}
	}

	offeringByID := make(map[string]models.Offering, len(offerings))
	for _, o := range offerings {
		offeringByID[o.ID] = o
	}
	classCollege := make(map[string]string, len(classes))
	for _, c := range classes {
		classCollege[c.ID] = c.CollegeID
	}

	snap.rows = make([]stats.Row, 0, len(records))
	for _, r := range records {
		row := stats.Row{
			EvaluationID: r.ID.String(),
			StudentID:    r.StudentID,
			OfferingID:   r.OfferingID,
			PeriodID:     r.PeriodID,
			TotalScore:   r.TotalScore,
		}
		if o, ok := offeringByID[r.OfferingID]; ok {
			row.TeacherID = o.TeacherID
			row.CourseID = o.CourseID
			row.ClassID = o.ClassID
			// Colleges are attributed through the class so that
			// participation compares against the college's own students.
			row.CollegeID = classCollege[o.ClassID]
			if row.CollegeID == "" {
				row.CollegeID = courseByID[o.CourseID].CollegeID
			}
		}
		snap.rows = append(snap.rows, row)
	}
	return snap, nil
}

func observe(report string) func() {
	start := time.Now()
	return func() {
		aggregationDuration.WithLabelValues(report).Observe(time.Since(start).Seconds())
	}
}

func (s *statisticsService) groups(
	ctx context.Context,
	periodID, report string,
	pick func(names) map[string]string,
	build func([]stats.Row, string) []stats.GroupStat,
) ([]stats.GroupStat, error) {
	defer observe(report)()
	snap, err := s.load(ctx, periodID)
	if err != nil {
		return nil, err
	}
	return stats.WithNames(build(snap.rows, periodID), pick(snap.names)), nil
}

func teacherNames(n names) map[string]string { return n.teachers }
func courseNames(n names) map[string]string  { return n.courses }
func classNames(n names) map[string]string   { return n.classes }

func (s *statisticsService) ByTeacher(ctx context.Context, periodID string) ([]stats.GroupStat, error) {
	return s.groups(ctx, periodID, "teacher", teacherNames, stats.ByTeacher)
}

func (s *statisticsService) ByCourse(ctx context.Context, periodID string) ([]stats.GroupStat, error) {
	return s.groups(ctx, periodID, "course", courseNames, stats.ByCourse)
}

func (s *statisticsService) ByClass(ctx context.Context, periodID string) ([]stats.GroupStat, error) {
	return s.groups(ctx, periodID, "class", classNames, stats.ByClass)
}

func (s *statisticsService) TeacherRanking(ctx context.Context, periodID string) ([]stats.GroupStat, error) {
	return s.groups(ctx, periodID, "teacher_ranking", teacherNames, func(rows []stats.Row, id string) []stats.GroupStat {
		return stats.RankTeachers(rows, id, s.cfg.MinTeacherSamples)
	})
}

func (s *statisticsService) CourseRanking(ctx context.Context, periodID string) ([]stats.GroupStat, error) {
	return s.groups(ctx, periodID, "course_ranking", courseNames, func(rows []stats.Row, id string) []stats.GroupStat {
		return stats.RankCourses(rows, id, s.cfg.MinCourseSamples)
	})
}

func (s *statisticsService) ByCollege(ctx context.Context, periodID string) ([]stats.CollegeStat, error) {
	defer observe("college")()
	snap, err := s.load(ctx, periodID)
	if err != nil {
		return nil, err
	}
	return collegesWithNames(stats.ByCollege(snap.rows, periodID), snap.names.colleges), nil
}

func collegesWithNames(in []stats.CollegeStat, names map[string]string) []stats.CollegeStat {
	out := make([]stats.CollegeStat, len(in))
	for i, c := range in {
		c.Name = names[c.Key]
		out[i] = c
	}
	return out
}

func (s *statisticsService) Participation(ctx context.Context, periodID string) (stats.Participation, []stats.Participation, error) {
	defer observe("participation")()
	snap, err := s.load(ctx, periodID)
	if err != nil {
		return stats.Participation{}, nil, err
	}
	return overall(snap), stats.ParticipationByCollege(snap.rows, periodID, snap.students), nil
}

func overall(snap *snapshot) stats.Participation {
	p := stats.Participation{
		Scope:        snap.period.ID,
		Participated: stats.ParticipatedStudents(snap.rows, snap.period.ID),
		Total:        snap.enrolled,
	}
	p.Rate = stats.ParticipationRate(p.Participated, p.Total)
	return p
}

func (s *statisticsService) Distribution(ctx context.Context, periodID string) (stats.Distribution, error) {
	defer observe("distribution")()
	snap, err := s.load(ctx, periodID)
	if err != nil {
		return stats.Distribution{}, err
	}
	return stats.GradeDistribution(snap.rows), nil
}

func (s *statisticsService) Overview(ctx context.Context, periodID string, top int) (*Overview, error) {
	defer observe("overview")()
	snap, err := s.load(ctx, periodID)
	if err != nil {
		return nil, err
	}
	return &Overview{
		Period:           snap.period,
		TotalEvaluations: len(snap.rows),
		Participation:    overall(snap),
		ByCollege:        collegesWithNames(stats.ByCollege(snap.rows, periodID), snap.names.colleges),
		CollegeTurnout:   stats.ParticipationByCollege(snap.rows, periodID, snap.students),
		Distribution:     stats.GradeDistribution(snap.rows),
		TopTeachers:      stats.WithNames(stats.Top(stats.RankTeachers(snap.rows, periodID, s.cfg.MinTeacherSamples), top), snap.names.teachers),
		TopCourses:       stats.WithNames(stats.Top(stats.RankCourses(snap.rows, periodID, s.cfg.MinCourseSamples), top), snap.names.courses),
	}, nil
}

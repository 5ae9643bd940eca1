package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"alfredoptarigan/course-evaluator/internal/apperrors"
	"alfredoptarigan/course-evaluator/internal/lifecycle"
	"alfredoptarigan/course-evaluator/internal/models"
	"alfredoptarigan/course-evaluator/internal/repositories"
	"alfredoptarigan/course-evaluator/internal/scoring"
)

type SubmitInput struct {
	StudentID  string
	OfferingID string
	PeriodID   string
	Scores     scoring.ScoreMap
	Comments   string
}

type SubmissionService interface {
	// Submit records one evaluation. It either stores exactly one record
	// or stores nothing and returns a typed error from apperrors.
	Submit(ctx context.Context, in SubmitInput) (*models.EvaluationRecord, error)
	Get(ctx context.Context, id uuid.UUID) (*models.EvaluationRecord, error)
	Breakdown(ctx context.Context, eval *models.EvaluationRecord) ([]scoring.Breakdown, error)
	ListForStudent(ctx context.Context, studentID, periodID string) ([]models.EvaluationRecord, error)
	// PendingOfferings lists the offerings of the student's class in the
	// period's semester that the student has not evaluated yet.
	PendingOfferings(ctx context.Context, studentID, periodID string) ([]models.Offering, error)
}

type submissionService struct {
	evalRepo      repositories.EvaluationRepository
	criteriaRepo  repositories.CriteriaRepository
	directoryRepo repositories.DirectoryRepository
	userRepo      repositories.UserRepository
	periods       PeriodService
	locks         *keyLock
}

func NewSubmissionService(
	evalRepo repositories.EvaluationRepository,
	criteriaRepo repositories.CriteriaRepository,
	directoryRepo repositories.DirectoryRepository,
	userRepo repositories.UserRepository,
	periods PeriodService,
) SubmissionService {
	return &submissionService{
		evalRepo:      evalRepo,
		criteriaRepo:  criteriaRepo,
		directoryRepo: directoryRepo,
		userRepo:      userRepo,
		periods:       periods,
		locks:         newKeyLock(),
	}
}

func (s *submissionService) Submit(ctx context.Context, in SubmitInput) (*models.EvaluationRecord, error) {
	eval, err := s.submit(ctx, in)
	submissionsTotal.WithLabelValues(outcomeOf(err)).Inc()
	return eval, err
}

func (s *submissionService) submit(ctx context.Context, in SubmitInput) (*models.EvaluationRecord, error) {
	in.StudentID = strings.TrimSpace(in.StudentID)
	in.OfferingID = strings.TrimSpace(in.OfferingID)
	in.PeriodID = strings.TrimSpace(in.PeriodID)
	if err := validateSubmitInput(in); err != nil {
		return nil, err
	}

	period, err := s.periods.Get(ctx, in.PeriodID)
	if err != nil {
		return nil, err
	}
	if !lifecycle.IsSubmittable(period, in.OfferingID, s.periods.Today()) {
		return nil, &apperrors.PeriodNotOpenError{PeriodID: period.ID, Status: string(period.Status)}
	}

	courseType, catalog, err := s.catalogFor(ctx, in.OfferingID)
	if err != nil {
		return nil, err
	}
	if !catalog.IsValid() {
		return nil, &apperrors.ValidationError{
			Field:  "criteria",
			Reason: fmt.Sprintf("catalog for %s weighs %.2f, must weigh 100", courseType, catalog.TotalWeight()),
		}
	}
	for id, raw := range in.Scores {
		if _, known := catalog.Get(id); !known {
			continue
		}
		if err := catalog.CheckScore(id, raw); err != nil {
			return nil, err
		}
	}

	unlock := s.locks.Lock(in.StudentID + "\x00" + in.OfferingID + "\x00" + in.PeriodID)
	defer unlock()

	existing, err := s.evalRepo.FindByTriple(ctx, in.StudentID, in.OfferingID, in.PeriodID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &apperrors.DuplicateSubmissionError{StudentID: in.StudentID, OfferingID: in.OfferingID, PeriodID: in.PeriodID}
	}

	total, err := scoring.ComputeTotal(catalog, in.Scores)
	if err != nil {
		return nil, err
	}

	eval := &models.EvaluationRecord{
		ID:         uuid.New(),
		StudentID:  in.StudentID,
		OfferingID: in.OfferingID,
		PeriodID:   in.PeriodID,
		CourseType: courseType,
		Scores:     copyScores(in.Scores),
		TotalScore: total,
		Comments:   strings.TrimSpace(in.Comments),
		CreatedAt:  s.periods.Today(),
	}

	// The store enforces the triple as well, so a second process racing
	// past the lock above still gets a duplicate error here.
	if err := s.evalRepo.InsertIfAbsent(ctx, eval); err != nil {
		return nil, err
	}

	log.Printf("📝 Evaluation %s stored (student %s, offering %s, total %.2f)\n", eval.ID, eval.StudentID, eval.OfferingID, eval.TotalScore)
	return eval, nil
}

func validateSubmitInput(in SubmitInput) error {
	switch {
	case in.StudentID == "":
		return &apperrors.ValidationError{Field: "student_id", Reason: "is required"}
	case in.OfferingID == "":
		return &apperrors.ValidationError{Field: "offering_id", Reason: "is required"}
	case in.PeriodID == "":
		return &apperrors.ValidationError{Field: "period_id", Reason: "is required"}
	case len(in.Scores) == 0:
		return &apperrors.ValidationError{Field: "scores", Reason: "must contain at least one score"}
	}
	for id := range in.Scores {
		if !scoring.ValidKey(id) {
			return &apperrors.ValidationError{Field: "scores", Reason: fmt.Sprintf("criterion id %q is not storable", id)}
		}
	}
	return nil
}

func (s *submissionService) catalogFor(ctx context.Context, offeringID string) (string, *scoring.Catalog, error) {
	offering, err := s.directoryRepo.FindOffering(ctx, offeringID)
	if err != nil {
		return "", nil, err
	}
	course, err := s.directoryRepo.FindCourse(ctx, offering.CourseID)
	if err != nil {
		return "", nil, err
	}
	catalog, err := s.criteriaRepo.GetCatalog(ctx, course.CourseType)
	if err != nil {
		return "", nil, err
	}
	return course.CourseType, catalog, nil
}

func (s *submissionService) Get(ctx context.Context, id uuid.UUID) (*models.EvaluationRecord, error) {
	return s.evalRepo.FindByID(ctx, id)
}

// Breakdown explains a stored total against the current catalog of the
// record's course type. The catalog may have changed since submission.
func (s *submissionService) Breakdown(ctx context.Context, eval *models.EvaluationRecord) ([]scoring.Breakdown, error) {
	catalog, err := s.criteriaRepo.GetCatalog(ctx, eval.CourseType)
	if err != nil {
		return nil, err
	}
	return scoring.Explain(catalog, eval.Scores)
}

func (s *submissionService) ListForStudent(ctx context.Context, studentID, periodID string) ([]models.EvaluationRecord, error) {
	if studentID == "" || periodID == "" {
		return nil, &apperrors.ValidationError{Reason: "student_id and period_id are required"}
	}
	return s.evalRepo.List(ctx, periodID, repositories.EvaluationFilter{StudentID: studentID})
}

func (s *submissionService) PendingOfferings(ctx context.Context, studentID, periodID string) ([]models.Offering, error) {
	student, err := s.userRepo.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.Role != models.RoleStudent || student.Student == nil {
		return nil, &apperrors.ValidationError{Field: "student_id", Reason: "is not a student"}
	}

	period, err := s.periods.Get(ctx, periodID)
	if err != nil {
		return nil, err
	}

	offerings, err := s.directoryRepo.ListOfferings(ctx, period.Semester)
	if err != nil {
		return nil, err
	}
	done, err := s.evalRepo.List(ctx, periodID, repositories.EvaluationFilter{StudentID: studentID})
	if err != nil {
		return nil, err
	}
	evaluated := make(map[string]struct{}, len(done))
	for _, e := range done {
		evaluated[e.OfferingID] = struct{}{}
	}

	pending := make([]models.Offering, 0)
	for _, o := range offerings {
		if o.ClassID != student.Student.ClassID {
			continue
		}
		if _, ok := evaluated[o.ID]; ok {
			continue
		}
		pending = append(pending, o)
	}
	return pending, nil
}

func copyScores(in scoring.ScoreMap) scoring.ScoreMap {
	out := make(scoring.ScoreMap, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func outcomeOf(err error) string {
	var (
		verr  *apperrors.ValidationError
		oor   *apperrors.OutOfRangeError
		dup   *apperrors.DuplicateSubmissionError
		shut  *apperrors.PeriodNotOpenError
		nfErr *apperrors.NotFoundError
	)
	switch {
	case err == nil:
		return outcomeAccepted
	case errors.As(err, &dup):
		return outcomeDuplicate
	case errors.As(err, &oor):
		return outcomeOutOfRange
	case errors.As(err, &shut):
		return outcomeClosed
	case errors.As(err, &verr), errors.As(err, &nfErr):
		return outcomeInvalid
	default:
		return outcomeError
	}
}

package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/course-evaluator/internal/apperrors"
	"alfredoptarigan/course-evaluator/internal/models"
	"alfredoptarigan/course-evaluator/internal/scoring"
	"alfredoptarigan/course-evaluator/internal/services"
)

type EvaluationHandler struct {
	submissions services.SubmissionService
}

func NewEvaluationHandler(submissions services.SubmissionService) *EvaluationHandler {
	return &EvaluationHandler{submissions: submissions}
}

// HandleSubmit handles POST /evaluations
func (h *EvaluationHandler) HandleSubmit(c *fiber.Ctx) error {
	var req models.SubmitEvaluationRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	eval, err := h.submissions.Submit(c.UserContext(), services.SubmitInput{
		StudentID:  req.StudentID,
		OfferingID: req.OfferingID,
		PeriodID:   req.PeriodID,
		Scores:     scoring.ScoreMap(req.Scores),
		Comments:   req.Comments,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toEvaluationResponse(eval, nil))
}

// HandleGet handles GET /evaluations/:id
func (h *EvaluationHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, &apperrors.ValidationError{Field: "id", Reason: "is not a valid evaluation id"})
	}

	eval, err := h.submissions.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	breakdown, err := h.submissions.Breakdown(c.UserContext(), eval)
	if err != nil && !isCatalogDrift(err) {
		return respondError(c, err)
	}
	return c.JSON(toEvaluationResponse(eval, breakdown))
}

// isCatalogDrift reports whether err comes from explaining a record scored
// against an older catalog. Such records render without a breakdown.
func isCatalogDrift(err error) bool {
	var outOfRange *apperrors.OutOfRangeError
	var unknown *apperrors.UnknownCriterionError
	return errors.As(err, &outOfRange) || errors.As(err, &unknown)
}

// HandleListForStudent handles GET /students/:id/evaluations?period_id=
func (h *EvaluationHandler) HandleListForStudent(c *fiber.Ctx) error {
	evals, err := h.submissions.ListForStudent(c.UserContext(), c.Params("id"), c.Query("period_id"))
	if err != nil {
		return respondError(c, err)
	}

	out := make([]models.EvaluationResponse, 0, len(evals))
	for i := range evals {
		out = append(out, toEvaluationResponse(&evals[i], nil))
	}
	return c.JSON(fiber.Map{
		"evaluations": out,
		"count":       len(out),
	})
}

// HandlePending handles GET /students/:id/pending?period_id=
func (h *EvaluationHandler) HandlePending(c *fiber.Ctx) error {
	periodID := c.Query("period_id")
	if periodID == "" {
		return respondError(c, &apperrors.ValidationError{Field: "period_id", Reason: "is required"})
	}

	offerings, err := h.submissions.PendingOfferings(c.UserContext(), c.Params("id"), periodID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"offerings": offerings,
		"count":     len(offerings),
	})
}

func toEvaluationResponse(eval *models.EvaluationRecord, breakdown []scoring.Breakdown) models.EvaluationResponse {
	return models.EvaluationResponse{
		ID:         eval.ID.String(),
		StudentID:  eval.StudentID,
		OfferingID: eval.OfferingID,
		PeriodID:   eval.PeriodID,
		Scores:     eval.Scores,
		TotalScore: eval.TotalScore,
		Grade:      eval.Grade(),
		Comments:   eval.Comments,
		CreatedAt:  eval.CreatedAt.Format(time.RFC3339),
		Breakdown:  breakdown,
	}
}

package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/course-evaluator/internal/apperrors"
	"alfredoptarigan/course-evaluator/internal/lifecycle"
	"alfredoptarigan/course-evaluator/internal/models"
	"alfredoptarigan/course-evaluator/internal/services"
)

const dateLayout = "2006-01-02"

type PeriodHandler struct {
	periods services.PeriodService
}

func NewPeriodHandler(periods services.PeriodService) *PeriodHandler {
	return &PeriodHandler{periods: periods}
}

// HandleCreate handles POST /periods
func (h *PeriodHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreatePeriodRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return respondError(c, &apperrors.ValidationError{Field: "start_date", Reason: "must be YYYY-MM-DD"})
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return respondError(c, &apperrors.ValidationError{Field: "end_date", Reason: "must be YYYY-MM-DD"})
	}

	period, err := h.periods.Create(c.UserContext(), services.CreatePeriodInput{
		ID:        req.ID,
		Name:      req.Name,
		Semester:  req.Semester,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.toResponse(period))
}

// HandleGet handles GET /periods/:id
func (h *PeriodHandler) HandleGet(c *fiber.Ctx) error {
	period, err := h.periods.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.toResponse(period))
}

// HandleList handles GET /periods
func (h *PeriodHandler) HandleList(c *fiber.Ctx) error {
	periods, err := h.periods.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]models.PeriodResponse, 0, len(periods))
	for i := range periods {
		out = append(out, h.toResponse(&periods[i]))
	}
	return c.JSON(fiber.Map{"periods": out})
}

// HandleClose handles POST /periods/:id/close
func (h *PeriodHandler) HandleClose(c *fiber.Ctx) error {
	period, err := h.periods.ForceClose(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.toResponse(period))
}

// HandleDelete handles DELETE /periods/:id
func (h *PeriodHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.periods.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *PeriodHandler) toResponse(p *models.EvaluationPeriod) models.PeriodResponse {
	return models.PeriodResponse{
		ID:          p.ID,
		Name:        p.Name,
		Semester:    p.Semester,
		StartDate:   p.StartDate.Format(dateLayout),
		EndDate:     p.EndDate.Format(dateLayout),
		Status:      p.Status,
		Submittable: lifecycle.IsActive(p, h.periods.Today()),
	}
}

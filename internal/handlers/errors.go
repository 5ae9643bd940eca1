package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/course-evaluator/internal/apperrors"
)

// statusFor maps the typed errors of apperrors onto HTTP status codes.
func statusFor(err error) int {
	var (
		fiberErr   *fiber.Error
		validation *apperrors.ValidationError
		unknown    *apperrors.UnknownCriterionError
		outOfRange *apperrors.OutOfRangeError
		notFound   *apperrors.NotFoundError
		dupSubmit  *apperrors.DuplicateSubmissionError
		dupID      *apperrors.DuplicateIDError
		conflict   *apperrors.ConflictError
		transition *apperrors.InvalidTransitionError
		notOpen    *apperrors.PeriodNotOpenError
		protected  *apperrors.ProtectedAccountError
	)
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.As(err, &validation), errors.As(err, &unknown):
		return fiber.StatusBadRequest
	case errors.As(err, &outOfRange):
		return fiber.StatusUnprocessableEntity
	case errors.As(err, &notFound):
		return fiber.StatusNotFound
	case errors.As(err, &dupSubmit), errors.As(err, &dupID), errors.As(err, &conflict),
		errors.As(err, &transition), errors.As(err, &notOpen):
		return fiber.StatusConflict
	case errors.As(err, &protected):
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	code := statusFor(err)
	msg := err.Error()
	if code == fiber.StatusInternalServerError {
		log.Printf("❌ %s %s failed: %v\n", c.Method(), c.Path(), err)
		msg = "internal server error"
	}
	return c.Status(code).JSON(fiber.Map{
		"error": msg,
		"code":  code,
	})
}

// ErrorHandler is the fiber error handler for errors handlers return
// instead of writing a response themselves.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return respondError(c, err)
}

package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/course-evaluator/internal/apperrors"
	"alfredoptarigan/course-evaluator/internal/scoring"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Criterion ids end up in the stored score text.
	if err := validate.RegisterValidation("criterionid", func(fl validator.FieldLevel) bool {
		return scoring.ValidKey(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register criterionid validation: %v", err))
	}
}

// bind parses the JSON body into req and validates it.
func bind(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return &apperrors.ValidationError{Reason: "invalid request payload"}
	}
	return check(req)
}

func check(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if errors.As(err, &fields) && len(fields) > 0 {
		f := fields[0]
		reason := "failed " + f.Tag()
		if f.Param() != "" {
			reason = fmt.Sprintf("failed %s=%s", f.Tag(), f.Param())
		}
		return &apperrors.ValidationError{Field: f.Field(), Reason: reason}
	}
	return &apperrors.ValidationError{Reason: err.Error()}
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/course-evaluator/internal/models"
	"alfredoptarigan/course-evaluator/internal/scoring"
	"alfredoptarigan/course-evaluator/internal/services"
)

type CriteriaHandler struct {
	criteria services.CriteriaService
}

func NewCriteriaHandler(criteria services.CriteriaService) *CriteriaHandler {
	return &CriteriaHandler{criteria: criteria}
}

// HandleCourseTypes handles GET /criteria
func (h *CriteriaHandler) HandleCourseTypes(c *fiber.Ctx) error {
	types, err := h.criteria.CourseTypes(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"course_types": types})
}

// HandleGet handles GET /criteria/:courseType
func (h *CriteriaHandler) HandleGet(c *fiber.Ctx) error {
	catalog, err := h.criteria.Catalog(c.UserContext(), c.Params("courseType"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCatalogResponse(c.Params("courseType"), catalog))
}

// HandleAdd handles POST /criteria/:courseType
func (h *CriteriaHandler) HandleAdd(c *fiber.Ctx) error {
	var req models.AddCriterionRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	catalog, err := h.criteria.AddCriterion(c.UserContext(), c.Params("courseType"), toCriterion(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCatalogResponse(c.Params("courseType"), catalog))
}

// HandleReplace handles PUT /criteria/:courseType
func (h *CriteriaHandler) HandleReplace(c *fiber.Ctx) error {
	var req models.ReplaceCatalogRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	criteria := make([]scoring.Criterion, 0, len(req.Criteria))
	for _, cr := range req.Criteria {
		criteria = append(criteria, toCriterion(cr))
	}
	catalog, err := h.criteria.ReplaceCatalog(c.UserContext(), c.Params("courseType"), criteria)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCatalogResponse(c.Params("courseType"), catalog))
}

// HandleRemove handles DELETE /criteria/:courseType/:criterionId
func (h *CriteriaHandler) HandleRemove(c *fiber.Ctx) error {
	catalog, err := h.criteria.RemoveCriterion(c.UserContext(), c.Params("courseType"), c.Params("criterionId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCatalogResponse(c.Params("courseType"), catalog))
}

func toCriterion(req models.AddCriterionRequest) scoring.Criterion {
	return scoring.Criterion{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Weight:      req.Weight,
		MaxScore:    req.MaxScore,
	}
}

func toCatalogResponse(courseType string, catalog *scoring.Catalog) models.CatalogResponse {
	return models.CatalogResponse{
		CourseType:  courseType,
		Criteria:    catalog.Criteria(),
		TotalWeight: catalog.TotalWeight(),
		Valid:       catalog.IsValid(),
	}
}

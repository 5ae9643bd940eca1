package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/course-evaluator/internal/apperrors"
	"alfredoptarigan/course-evaluator/internal/models"
	"alfredoptarigan/course-evaluator/internal/services"
	"alfredoptarigan/course-evaluator/internal/stats"
)

const defaultTop = 10

type StatisticsHandler struct {
	statistics services.StatisticsService
	exports    services.ExportService
}

func NewStatisticsHandler(statistics services.StatisticsService, exports services.ExportService) *StatisticsHandler {
	return &StatisticsHandler{statistics: statistics, exports: exports}
}

// groupReport resolves the grouped reports that can also be exported.
func (h *StatisticsHandler) groupReport(c *fiber.Ctx, report string) ([]stats.GroupStat, error) {
	ctx, periodID := c.UserContext(), c.Params("id")
	switch report {
	case "teachers":
		return h.statistics.ByTeacher(ctx, periodID)
	case "courses":
		return h.statistics.ByCourse(ctx, periodID)
	case "classes":
		return h.statistics.ByClass(ctx, periodID)
	case "teacher-ranking":
		return h.statistics.TeacherRanking(ctx, periodID)
	case "course-ranking":
		return h.statistics.CourseRanking(ctx, periodID)
	}
	return nil, &apperrors.NotFoundError{Kind: "report", ID: report}
}

// HandleReport handles GET /periods/:id/statistics/:report
func (h *StatisticsHandler) HandleReport(c *fiber.Ctx) error {
	ctx, periodID, report := c.UserContext(), c.Params("id"), c.Params("report")

	switch report {
	case "colleges":
		colleges, err := h.statistics.ByCollege(ctx, periodID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"period_id": periodID, "report": report, "groups": colleges})
	case "participation":
		overall, byCollege, err := h.statistics.Participation(ctx, periodID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"period_id": periodID, "overall": overall, "colleges": byCollege})
	case "distribution":
		d, err := h.statistics.Distribution(ctx, periodID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(d)
	}

	groups, err := h.groupReport(c, report)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"period_id": periodID, "report": report, "groups": groups})
}

// HandleOverview handles GET /periods/:id/overview?top=
func (h *StatisticsHandler) HandleOverview(c *fiber.Ctx) error {
	top := c.QueryInt("top", defaultTop)
	if top < 0 {
		return respondError(c, &apperrors.ValidationError{Field: "top", Reason: "must not be negative"})
	}
	overview, err := h.statistics.Overview(c.UserContext(), c.Params("id"), top)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(overview)
}

// HandleExport handles POST /periods/:id/exports/:report
func (h *StatisticsHandler) HandleExport(c *fiber.Ctx) error {
	report := c.Params("report")
	groups, err := h.groupReport(c, report)
	if err != nil {
		return respondError(c, err)
	}

	filename, err := h.exports.WriteGroupReport(fmt.Sprintf("%s_%s", c.Params("id"), report), groups)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.ExportResponse{
		Report:   report,
		Filename: filename,
		Rows:     len(groups),
		URL:      "/api/v1/exports/" + filename,
	})
}

// HandleDownload handles GET /exports/:filename
func (h *StatisticsHandler) HandleDownload(c *fiber.Ctx) error {
	path, err := h.exports.GetFilePath(c.Params("filename"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	return c.Download(path)
}

// HandleDeleteExport handles DELETE /exports/:filename
func (h *StatisticsHandler) HandleDeleteExport(c *fiber.Ctx) error {
	if err := h.exports.DeleteFile(c.Params("filename")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

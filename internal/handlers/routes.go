package handlers

import "github.com/gofiber/fiber/v2"

// Handlers groups every HTTP handler of the API.
type Handlers struct {
	Evaluations *EvaluationHandler
	Periods     *PeriodHandler
	Criteria    *CriteriaHandler
	Statistics  *StatisticsHandler
	Users       *UserHandler
}

// Register mounts the API routes on api, normally the /api/v1 group.
func Register(api fiber.Router, h Handlers) {
	api.Post("/evaluations", h.Evaluations.HandleSubmit)
	api.Get("/evaluations/:id", h.Evaluations.HandleGet)
	api.Get("/students/:id/evaluations", h.Evaluations.HandleListForStudent)
	api.Get("/students/:id/pending", h.Evaluations.HandlePending)

	api.Post("/periods", h.Periods.HandleCreate)
	api.Get("/periods", h.Periods.HandleList)
	api.Get("/periods/:id", h.Periods.HandleGet)
	api.Post("/periods/:id/close", h.Periods.HandleClose)
	api.Delete("/periods/:id", h.Periods.HandleDelete)

	api.Get("/periods/:id/overview", h.Statistics.HandleOverview)
	api.Get("/periods/:id/statistics/:report", h.Statistics.HandleReport)
	api.Post("/periods/:id/exports/:report", h.Statistics.HandleExport)
	api.Get("/exports/:filename", h.Statistics.HandleDownload)
	api.Delete("/exports/:filename", h.Statistics.HandleDeleteExport)

	api.Get("/criteria", h.Criteria.HandleCourseTypes)
	api.Get("/criteria/:courseType", h.Criteria.HandleGet)
	api.Post("/criteria/:courseType", h.Criteria.HandleAdd)
	api.Put("/criteria/:courseType", h.Criteria.HandleReplace)
	api.Delete("/criteria/:courseType/:criterionId", h.Criteria.HandleRemove)

	api.Post("/users", h.Users.HandleRegister)
	api.Get("/users", h.Users.HandleList)
	api.Get("/users/:id", h.Users.HandleGet)
	api.Delete("/users/:id", h.Users.HandleDelete)
}

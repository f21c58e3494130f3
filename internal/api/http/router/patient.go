package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/scaleapp/backend/internal/api/http/handler"
)

func (r *Router) registerPatientRoutes(api fiber.Router, ph *handler.PatientHandler) {
	patients := api.Group("/patients")

	// Patient CRUD
	patients.Get("/", ph.List)
	patients.Post("/", ph.Create)

	p := patients.Group("/:id")
	p.Get("/", ph.Get)
	p.Put("/", ph.Update)
	p.Delete("/", ph.Delete)

	// History & analytics
	p.Get("/assessments", ph.Assessments)
	p.Get("/summary", ph.Summary)
}

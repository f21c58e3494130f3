package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/scaleapp/backend/internal/service/patient"
)

type PatientHandler struct {
	svc patient.Service
}

func NewPatientHandler(svc patient.Service) *PatientHandler {
	return &PatientHandler{svc: svc}
}

func mapPatientError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, patient.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, patient.ErrHasResults):
		return conflict(c, err.Error())
	default:
		return internalError(c)
	}
}

// POST /patients
func (h *PatientHandler) Create(c fiber.Ctx) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.Name == "" {
		return unprocessable(c, "name is required")
	}

	p, err := h.svc.Create(c.Context(), patient.CreatePatientRequest{Name: body.Name})
	if err != nil {
		return mapPatientError(c, err)
	}
	return created(c, p)
}

// GET /patients/:id
func (h *PatientHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid patient id")
	}

	p, err := h.svc.GetByID(c.Context(), id)
	if err != nil {
		return mapPatientError(c, err)
	}
	return ok(c, p)
}

// PUT /patients/:id
func (h *PatientHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid patient id")
	}

	var body struct {
		Name *string `json:"name"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.Name != nil && *body.Name == "" {
		return unprocessable(c, "name must not be empty")
	}

	p, err := h.svc.Update(c.Context(), id, patient.UpdatePatientRequest{Name: body.Name})
	if err != nil {
		return mapPatientError(c, err)
	}
	return ok(c, p)
}

// DELETE /patients/:id
func (h *PatientHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid patient id")
	}

	if err := h.svc.Delete(c.Context(), id); err != nil {
		return mapPatientError(c, err)
	}
	return noContent(c)
}

// GET /patients?skip&limit&name
func (h *PatientHandler) List(c fiber.Ctx) error {
	skip, limit := pagination(c)

	name := c.Query("name")
	if name != "" {
		patients, total, err := h.svc.SearchByName(c.Context(), name, skip, limit)
		if err != nil {
			return mapPatientError(c, err)
		}
		return paginated(c, total, skip, limit, len(patients), patients)
	}

	patients, total, err := h.svc.List(c.Context(), skip, limit)
	if err != nil {
		return mapPatientError(c, err)
	}
	return paginated(c, total, skip, limit, len(patients), patients)
}

// GET /patients/:id/assessments?skip&limit&active
//
// Default view is the completed results, newest completion first. With
// ?active=true the in-flight results are returned instead (unpaginated).
func (h *PatientHandler) Assessments(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid patient id")
	}

	exists, err := h.svc.Exists(c.Context(), id)
	if err != nil {
		return internalError(c)
	}
	if !exists {
		return notFound(c, patient.ErrNotFound.Error())
	}

	if c.Query("active") == "true" {
		results, err := h.svc.ActiveResults(c.Context(), id)
		if err != nil {
			return mapPatientError(c, err)
		}
		return ok(c, results)
	}

	skip, limit := pagination(c)
	results, total, err := h.svc.CompletedResults(c.Context(), id, skip, limit)
	if err != nil {
		return mapPatientError(c, err)
	}
	return paginated(c, total, skip, limit, len(results), results)
}

// GET /patients/:id/summary
func (h *PatientHandler) Summary(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid patient id")
	}

	summary, err := h.svc.GetSummary(c.Context(), id)
	if err != nil {
		return mapPatientError(c, err)
	}
	return ok(c, summary)
}

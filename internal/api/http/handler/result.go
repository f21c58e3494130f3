package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/scaleapp/backend/internal/service/result"
)

type ResultHandler struct {
	svc result.Service
}

func NewResultHandler(svc result.Service) *ResultHandler {
	return &ResultHandler{svc: svc}
}

func mapResultError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, result.ErrNotFound),
		errors.Is(err, result.ErrPatientNotFound),
		errors.Is(err, result.ErrAssessmentNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, result.ErrNotInProgress):
		return badRequest(c, err.Error())
	default:
		return internalError(c)
	}
}

// POST /results
func (h *ResultHandler) Create(c fiber.Ctx) error {
	var body struct {
		PatientID    string `json:"patient_id"`
		AssessmentID string `json:"assessment_id"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	patientID, err := uuid.Parse(body.PatientID)
	if err != nil {
		return unprocessable(c, "invalid patient_id")
	}
	assessmentID, err := uuid.Parse(body.AssessmentID)
	if err != nil {
		return unprocessable(c, "invalid assessment_id")
	}

	r, err := h.svc.Create(c.Context(), result.CreateResultRequest{
		PatientID:    patientID,
		AssessmentID: assessmentID,
	})
	if err != nil {
		return mapResultError(c, err)
	}
	return created(c, r)
}

// GET /results/:id
func (h *ResultHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid result id")
	}

	detail, err := h.svc.GetDetail(c.Context(), id)
	if err != nil {
		return mapResultError(c, err)
	}
	return ok(c, detail)
}

// POST /results/:id/start
func (h *ResultHandler) Start(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid result id")
	}

	r, err := h.svc.Start(c.Context(), id)
	if err != nil {
		return mapResultError(c, err)
	}
	return ok(c, r)
}

// POST /results/:id/complete
func (h *ResultHandler) Complete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid result id")
	}

	r, err := h.svc.Complete(c.Context(), id)
	if err != nil {
		return mapResultError(c, err)
	}
	return ok(c, r)
}

// POST /results/:id/answers
func (h *ResultHandler) AddAnswer(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid result id")
	}

	var body struct {
		QuestionID string `json:"question_id"`
		OptionID   string `json:"selected_option_id"`
		Value      int    `json:"value"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	questionID, err := uuid.Parse(body.QuestionID)
	if err != nil {
		return unprocessable(c, "invalid question_id")
	}
	optionID, err := uuid.Parse(body.OptionID)
	if err != nil {
		return unprocessable(c, "invalid selected_option_id")
	}

	r, err := h.svc.AddAnswer(c.Context(), id, result.AddAnswerRequest{
		QuestionID: questionID,
		OptionID:   optionID,
		Value:      body.Value,
	})
	if err != nil {
		return mapResultError(c, err)
	}
	return ok(c, r)
}

// GET /results/:id/trend?days=30
func (h *ResultHandler) Trend(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid result id")
	}

	var q struct {
		Days int `query:"days"`
	}
	q.Days = 30
	_ = c.Bind().Query(&q)
	if q.Days <= 0 {
		q.Days = 30
	}

	trend, err := h.svc.Trend(c.Context(), id, q.Days)
	if err != nil {
		return mapResultError(c, err)
	}
	return ok(c, trend)
}

package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/scaleapp/backend/internal/service/assessment"
)

type AssessmentHandler struct {
	svc assessment.Service
}

func NewAssessmentHandler(svc assessment.Service) *AssessmentHandler {
	return &AssessmentHandler{svc: svc}
}

func mapAssessmentError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, assessment.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, assessment.ErrHasResults):
		return conflict(c, err.Error())
	default:
		return internalError(c)
	}
}

type questionBody struct {
	Text  string `json:"text"`
	Order int    `json:"order"`
}

type optionBody struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
	Order int    `json:"order"`
}

func (q questionBody) validate() string {
	if q.Text == "" {
		return "question text is required"
	}
	if q.Order < 0 {
		return "question order must be non-negative"
	}
	return ""
}

func (o optionBody) validate() string {
	if o.Text == "" {
		return "option text is required"
	}
	if o.Order < 0 {
		return "option order must be non-negative"
	}
	return ""
}

// POST /assessments
func (h *AssessmentHandler) Create(c fiber.Ctx) error {
	var body struct {
		Name        string         `json:"name"`
		Type        string         `json:"type"`
		Description *string        `json:"description"`
		Cutoff      int            `json:"cutoff"`
		MaxScore    int            `json:"max_score"`
		Questions   []questionBody `json:"questions"`
		Options     []optionBody   `json:"options"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.Name == "" {
		return unprocessable(c, "name is required")
	}
	if body.Type == "" {
		return unprocessable(c, "type is required")
	}
	if body.Cutoff < 0 || body.MaxScore < 0 {
		return unprocessable(c, "cutoff and max_score must be non-negative")
	}
	for _, q := range body.Questions {
		if msg := q.validate(); msg != "" {
			return unprocessable(c, msg)
		}
	}
	for _, o := range body.Options {
		if msg := o.validate(); msg != "" {
			return unprocessable(c, msg)
		}
	}

	req := assessment.CreateAssessmentRequest{
		Name:        body.Name,
		Type:        body.Type,
		Description: body.Description,
		Cutoff:      body.Cutoff,
		MaxScore:    body.MaxScore,
	}
	for _, q := range body.Questions {
		req.Questions = append(req.Questions, assessment.QuestionInput{Text: q.Text, Order: q.Order})
	}
	for _, o := range body.Options {
		req.Options = append(req.Options, assessment.OptionInput{Text: o.Text, Value: o.Value, Order: o.Order})
	}

	a, err := h.svc.Create(c.Context(), req)
	if err != nil {
		return mapAssessmentError(c, err)
	}
	return created(c, a)
}

// GET /assessments/:id
func (h *AssessmentHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid assessment id")
	}

	a, err := h.svc.GetWithChildren(c.Context(), id)
	if err != nil {
		return mapAssessmentError(c, err)
	}
	return ok(c, a)
}

// PUT /assessments/:id
func (h *AssessmentHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid assessment id")
	}

	var body struct {
		Name        *string `json:"name"`
		Type        *string `json:"type"`
		Description *string `json:"description"`
		Cutoff      *int    `json:"cutoff"`
		MaxScore    *int    `json:"max_score"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.Name != nil && *body.Name == "" {
		return unprocessable(c, "name must not be empty")
	}
	if body.Type != nil && *body.Type == "" {
		return unprocessable(c, "type must not be empty")
	}
	if (body.Cutoff != nil && *body.Cutoff < 0) || (body.MaxScore != nil && *body.MaxScore < 0) {
		return unprocessable(c, "cutoff and max_score must be non-negative")
	}

	a, err := h.svc.Update(c.Context(), id, assessment.UpdateAssessmentRequest{
		Name:        body.Name,
		Type:        body.Type,
		Description: body.Description,
		Cutoff:      body.Cutoff,
		MaxScore:    body.MaxScore,
	})
	if err != nil {
		return mapAssessmentError(c, err)
	}
	return ok(c, a)
}

// DELETE /assessments/:id
func (h *AssessmentHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid assessment id")
	}

	if err := h.svc.Delete(c.Context(), id); err != nil {
		return mapAssessmentError(c, err)
	}
	return noContent(c)
}

// GET /assessments?skip&limit&type
func (h *AssessmentHandler) List(c fiber.Ctx) error {
	skip, limit := pagination(c)

	assessments, total, err := h.svc.List(c.Context(), assessment.ListAssessmentsRequest{
		Skip:  skip,
		Limit: limit,
		Type:  c.Query("type"),
	})
	if err != nil {
		return mapAssessmentError(c, err)
	}
	return paginated(c, total, skip, limit, len(assessments), assessments)
}

// POST /assessments/:id/questions
func (h *AssessmentHandler) AddQuestion(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid assessment id")
	}

	var body questionBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if msg := body.validate(); msg != "" {
		return unprocessable(c, msg)
	}

	if _, err := h.svc.AddQuestion(c.Context(), id, assessment.QuestionInput{
		Text:  body.Text,
		Order: body.Order,
	}); err != nil {
		return mapAssessmentError(c, err)
	}

	a, err := h.svc.GetWithChildren(c.Context(), id)
	if err != nil {
		return mapAssessmentError(c, err)
	}
	return ok(c, a)
}

// POST /assessments/:id/options
func (h *AssessmentHandler) AddOption(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid assessment id")
	}

	var body optionBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if msg := body.validate(); msg != "" {
		return unprocessable(c, msg)
	}

	if _, err := h.svc.AddOption(c.Context(), id, assessment.OptionInput{
		Text:  body.Text,
		Value: body.Value,
		Order: body.Order,
	}); err != nil {
		return mapAssessmentError(c, err)
	}

	a, err := h.svc.GetWithChildren(c.Context(), id)
	if err != nil {
		return mapAssessmentError(c, err)
	}
	return ok(c, a)
}

// GET /assessments/:id/statistics
func (h *AssessmentHandler) Statistics(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid assessment id")
	}

	stats, err := h.svc.GetStatistics(c.Context(), id)
	if err != nil {
		return mapAssessmentError(c, err)
	}
	return ok(c, stats)
}

package assessment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/scaleapp/backend/internal/repo"
	entassessment "github.com/scaleapp/backend/internal/repo/assessment"
	entresult "github.com/scaleapp/backend/internal/repo/assessmentresult"
	entoption "github.com/scaleapp/backend/internal/repo/option"
	entquestion "github.com/scaleapp/backend/internal/repo/question"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type QuestionInput struct {
	Text  string
	Order int
}

type OptionInput struct {
	Text  string
	Value int
	Order int
}

type CreateAssessmentRequest struct {
	Name        string
	Type        string
	Description *string
	Cutoff      int
	MaxScore    int
	Questions   []QuestionInput
	Options     []OptionInput
}

type UpdateAssessmentRequest struct {
	Name        *string
	Type        *string
	Description *string
	Cutoff      *int
	MaxScore    *int
}

type ListAssessmentsRequest struct {
	Skip  int
	Limit int
	Type  string // optional category filter
}

// Statistics aggregates completed results for one assessment.
// AverageScore is 0 when no completed results exist; Min/MaxScore stay nil.
type Statistics struct {
	TotalAttempts  int     `json:"total_attempts"`
	AverageScore   float64 `json:"average_score"`
	MinScore       *int    `json:"min_score"`
	MaxScore       *int    `json:"max_score"`
	CompletionRate float64 `json:"completion_rate"`
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Create(ctx context.Context, req CreateAssessmentRequest) (*repo.Assessment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*repo.Assessment, error)
	GetWithChildren(ctx context.Context, id uuid.UUID) (*repo.Assessment, error)
	List(ctx context.Context, req ListAssessmentsRequest) ([]*repo.Assessment, int, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateAssessmentRequest) (*repo.Assessment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	AddQuestion(ctx context.Context, assessmentID uuid.UUID, in QuestionInput) (*repo.Question, error)
	AddOption(ctx context.Context, assessmentID uuid.UUID, in OptionInput) (*repo.Option, error)
	GetStatistics(ctx context.Context, id uuid.UUID) (*Statistics, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type service struct {
	db *repo.Client
}

func New(db *repo.Client) Service {
	return &service{db: db}
}

// Create persists the assessment together with its nested questions and
// options in a single transaction.
func (s *service) Create(ctx context.Context, req CreateAssessmentRequest) (*repo.Assessment, error) {
	tx, err := s.db.Tx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}

	a, err := tx.Assessment.Create().
		SetName(req.Name).
		SetType(req.Type).
		SetNillableDescription(req.Description).
		SetCutoff(req.Cutoff).
		SetMaxScore(req.MaxScore).
		Save(ctx)
	if err != nil {
		return nil, rollback(tx, fmt.Errorf("create assessment: %w", err))
	}

	if len(req.Questions) > 0 {
		builders := make([]*repo.QuestionCreate, len(req.Questions))
		for i, q := range req.Questions {
			builders[i] = tx.Question.Create().
				SetAssessmentID(a.ID).
				SetText(q.Text).
				SetOrder(q.Order)
		}
		if _, err := tx.Question.CreateBulk(builders...).Save(ctx); err != nil {
			return nil, rollback(tx, fmt.Errorf("create questions: %w", err))
		}
	}

	if len(req.Options) > 0 {
		builders := make([]*repo.OptionCreate, len(req.Options))
		for i, o := range req.Options {
			builders[i] = tx.Option.Create().
				SetAssessmentID(a.ID).
				SetText(o.Text).
				SetValue(o.Value).
				SetOrder(o.Order)
		}
		if _, err := tx.Option.CreateBulk(builders...).Save(ctx); err != nil {
			return nil, rollback(tx, fmt.Errorf("create options: %w", err))
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit assessment: %w", err)
	}
	return s.GetWithChildren(ctx, a.ID)
}

func rollback(tx *repo.Tx, err error) error {
	if rerr := tx.Rollback(); rerr != nil {
		err = fmt.Errorf("%w: rolling back: %v", err, rerr)
	}
	return err
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*repo.Assessment, error) {
	a, err := s.db.Assessment.Get(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get assessment: %w", err)
	}
	return a, nil
}

// GetWithChildren eager-loads questions and options in display order.
func (s *service) GetWithChildren(ctx context.Context, id uuid.UUID) (*repo.Assessment, error) {
	a, err := s.db.Assessment.Query().
		Where(entassessment.ID(id)).
		WithQuestions(func(q *repo.QuestionQuery) {
			q.Order(entquestion.ByOrder())
		}).
		WithOptions(func(q *repo.OptionQuery) {
			q.Order(entoption.ByOrder())
		}).
		Only(ctx)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get assessment with children: %w", err)
	}
	return a, nil
}

func (s *service) List(ctx context.Context, req ListAssessmentsRequest) ([]*repo.Assessment, int, error) {
	q := s.db.Assessment.Query()
	if req.Type != "" {
		q = q.Where(entassessment.Type(req.Type))
	}

	total, err := q.Clone().Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count assessments: %w", err)
	}

	assessments, err := q.
		Order(entassessment.ByName()).
		Offset(req.Skip).
		Limit(req.Limit).
		All(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list assessments: %w", err)
	}
	return assessments, total, nil
}

// Update applies only the fields present in req; absent fields are untouched.
func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateAssessmentRequest) (*repo.Assessment, error) {
	u := s.db.Assessment.UpdateOneID(id)
	if req.Name != nil {
		u = u.SetName(*req.Name)
	}
	if req.Type != nil {
		u = u.SetType(*req.Type)
	}
	if req.Description != nil {
		u = u.SetNillableDescription(req.Description)
	}
	if req.Cutoff != nil {
		u = u.SetCutoff(*req.Cutoff)
	}
	if req.MaxScore != nil {
		u = u.SetMaxScore(*req.MaxScore)
	}

	a, err := u.Save(ctx)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update assessment: %w", err)
	}
	return a, nil
}

// Delete removes the assessment; questions and options go with it via the
// cascade constraint. Results referencing it block the delete.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	hasResults, err := s.db.AssessmentResult.Query().
		Where(entresult.AssessmentID(id)).
		Exist(ctx)
	if err != nil {
		return fmt.Errorf("check assessment results: %w", err)
	}
	if hasResults {
		return ErrHasResults
	}

	err = s.db.Assessment.DeleteOneID(id).Exec(ctx)
	if err != nil {
		if repo.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete assessment: %w", err)
	}
	return nil
}

func (s *service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.db.Assessment.Query().Where(entassessment.ID(id)).Exist(ctx)
}

func (s *service) AddQuestion(ctx context.Context, assessmentID uuid.UUID, in QuestionInput) (*repo.Question, error) {
	if err := s.mustExist(ctx, assessmentID); err != nil {
		return nil, err
	}

	q, err := s.db.Question.Create().
		SetAssessmentID(assessmentID).
		SetText(in.Text).
		SetOrder(in.Order).
		Save(ctx)
	if err != nil {
		return nil, fmt.Errorf("add question: %w", err)
	}
	return q, nil
}

func (s *service) AddOption(ctx context.Context, assessmentID uuid.UUID, in OptionInput) (*repo.Option, error) {
	if err := s.mustExist(ctx, assessmentID); err != nil {
		return nil, err
	}

	o, err := s.db.Option.Create().
		SetAssessmentID(assessmentID).
		SetText(in.Text).
		SetValue(in.Value).
		SetOrder(in.Order).
		Save(ctx)
	if err != nil {
		return nil, fmt.Errorf("add option: %w", err)
	}
	return o, nil
}

// GetStatistics aggregates completed results: count, average, min and max of
// total_score, plus the completion rate over all results.
func (s *service) GetStatistics(ctx context.Context, id uuid.UUID) (*Statistics, error) {
	if err := s.mustExist(ctx, id); err != nil {
		return nil, err
	}

	completed := s.db.AssessmentResult.Query().
		Where(
			entresult.AssessmentID(id),
			entresult.StatusEQ(entresult.StatusCompleted),
		)

	var agg []struct {
		Mean *float64 `sql:"mean"`
		Min  *int     `sql:"min"`
		Max  *int     `sql:"max"`
	}
	err := completed.Clone().
		Aggregate(
			repo.Mean(entresult.FieldTotalScore),
			repo.Min(entresult.FieldTotalScore),
			repo.Max(entresult.FieldTotalScore),
		).
		Scan(ctx, &agg)
	if err != nil {
		return nil, fmt.Errorf("aggregate scores: %w", err)
	}

	completedCount, err := completed.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count completed results: %w", err)
	}

	totalCount, err := s.db.AssessmentResult.Query().
		Where(entresult.AssessmentID(id)).
		Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count results: %w", err)
	}

	stats := &Statistics{TotalAttempts: completedCount}
	if len(agg) > 0 {
		if agg[0].Mean != nil {
			stats.AverageScore = *agg[0].Mean
		}
		stats.MinScore = agg[0].Min
		stats.MaxScore = agg[0].Max
	}
	if totalCount > 0 {
		stats.CompletionRate = float64(completedCount) / float64(totalCount) * 100
	}
	return stats, nil
}

func (s *service) mustExist(ctx context.Context, id uuid.UUID) error {
	exists, err := s.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check assessment: %w", err)
	}
	if !exists {
		return ErrNotFound
	}
	return nil
}

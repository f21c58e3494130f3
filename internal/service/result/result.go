package result

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/scaleapp/backend/internal/repo"
	entanswer "github.com/scaleapp/backend/internal/repo/answerdetail"
	entassessment "github.com/scaleapp/backend/internal/repo/assessment"
	entresult "github.com/scaleapp/backend/internal/repo/assessmentresult"
	entpatient "github.com/scaleapp/backend/internal/repo/patient"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type CreateResultRequest struct {
	PatientID    uuid.UUID
	AssessmentID uuid.UUID
}

type AddAnswerRequest struct {
	QuestionID uuid.UUID
	OptionID   uuid.UUID
	Value      int
}

// Detail is the read model for a single result: the record with its answers
// plus the derived clinical fields.
type Detail struct {
	Result                *repo.AssessmentResult `json:"result"`
	SeverityLevel         Severity               `json:"severity_level"`
	IsAboveCutoff         bool                   `json:"is_above_cutoff"`
	CompletionTimeMinutes *float64               `json:"completion_time_minutes"`
}

type TrendPoint struct {
	Date  time.Time `json:"date"`
	Score int       `json:"score"`
	Type  string    `json:"type"`
}

// TrendData is the graph payload for a patient's scores over a trailing
// window. TrendLine is not computed yet and is always empty.
type TrendData struct {
	AssessmentType string       `json:"assessment_type"`
	DataPoints     []TrendPoint `json:"data_points"`
	TrendLine      []float64    `json:"trend_line"`
	CutoffLine     int          `json:"cutoff_line"`
	AverageLine    float64      `json:"average_line"`
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Create(ctx context.Context, req CreateResultRequest) (*repo.AssessmentResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*repo.AssessmentResult, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*repo.AssessmentResult, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*Detail, error)

	Start(ctx context.Context, id uuid.UUID) (*repo.AssessmentResult, error)
	Complete(ctx context.Context, id uuid.UUID) (*repo.AssessmentResult, error)
	AddAnswer(ctx context.Context, id uuid.UUID, req AddAnswerRequest) (*repo.AssessmentResult, error)
	TotalScore(ctx context.Context, id uuid.UUID) (int, error)

	Trend(ctx context.Context, id uuid.UUID, days int) (*TrendData, error)
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

// Create opens a new not_started result after checking that both the patient
// and the assessment exist.
func (s *service) Create(ctx context.Context, req CreateResultRequest) (*repo.AssessmentResult, error) {
	patientExists, err := s.db.Patient.Query().
		Where(entpatient.ID(req.PatientID)).
		Exist(ctx)
	if err != nil {
		return nil, fmt.Errorf("check patient: %w", err)
	}
	if !patientExists {
		return nil, ErrPatientNotFound
	}

	assessmentExists, err := s.db.Assessment.Query().
		Where(entassessment.ID(req.AssessmentID)).
		Exist(ctx)
	if err != nil {
		return nil, fmt.Errorf("check assessment: %w", err)
	}
	if !assessmentExists {
		return nil, ErrAssessmentNotFound
	}

	r, err := s.db.AssessmentResult.Create().
		SetPatientID(req.PatientID).
		SetAssessmentID(req.AssessmentID).
		Save(ctx)
	if err != nil {
		return nil, fmt.Errorf("create result: %w", err)
	}
	return r, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*repo.AssessmentResult, error) {
	r, err := s.db.AssessmentResult.Get(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get result: %w", err)
	}
	return r, nil
}

// GetWithDetails eager-loads the answers (with their questions) and the
// parent assessment.
func (s *service) GetWithDetails(ctx context.Context, id uuid.UUID) (*repo.AssessmentResult, error) {
	r, err := s.db.AssessmentResult.Query().
		Where(entresult.ID(id)).
		WithAnswers(func(q *repo.AnswerDetailQuery) {
			q.WithQuestion().Order(entanswer.ByAnsweredAt())
		}).
		WithAssessment().
		Only(ctx)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get result with details: %w", err)
	}
	return r, nil
}

// GetDetail returns the detailed read model with severity, cutoff flag and
// completion time derived from the stored record.
func (s *service) GetDetail(ctx context.Context, id uuid.UUID) (*Detail, error) {
	r, err := s.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}

	d := &Detail{
		Result:                r,
		SeverityLevel:         SeverityUnknown,
		CompletionTimeMinutes: completionMinutes(r.StartedAt, r.CompletedAt),
	}

	score := 0
	if r.TotalScore != nil {
		score = *r.TotalScore
	}
	if a := r.Edges.Assessment; a != nil {
		d.SeverityLevel = classifySeverity(score, a.Cutoff, a.MaxScore)
		if r.TotalScore != nil {
			d.IsAboveCutoff = isAboveCutoff(*r.TotalScore, a.Cutoff)
		}
	}
	return d, nil
}

// Start moves a not_started result to in_progress and stamps started_at.
// Calling it in any other state is a no-op that returns the current record.
func (s *service) Start(ctx context.Context, id uuid.UUID) (*repo.AssessmentResult, error) {
	r, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status != entresult.StatusNotStarted {
		return r, nil
	}

	r, err = r.Update().
		SetStatus(entresult.StatusInProgress).
		SetStartedAt(time.Now()).
		Save(ctx)
	if err != nil {
		return nil, fmt.Errorf("start result: %w", err)
	}
	return r, nil
}

// Complete moves an in_progress result to completed, stamps completed_at and
// persists the total score. Calling it in any other state is a no-op.
//
// There is no row lock here: two racing completes can both observe
// in_progress and rely on the store's isolation, same as the rest of the
// system (no optimistic or pessimistic concurrency control).
func (s *service) Complete(ctx context.Context, id uuid.UUID) (*repo.AssessmentResult, error) {
	r, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status != entresult.StatusInProgress {
		return r, nil
	}

	total, err := s.TotalScore(ctx, id)
	if err != nil {
		return nil, err
	}

	r, err = r.Update().
		SetStatus(entresult.StatusCompleted).
		SetCompletedAt(time.Now()).
		SetTotalScore(total).
		Save(ctx)
	if err != nil {
		return nil, fmt.Errorf("complete result: %w", err)
	}
	return r, nil
}

// AddAnswer records one answer on an in_progress result, stamping the
// submission time. Answers are append-only; there is no correction path.
func (s *service) AddAnswer(ctx context.Context, id uuid.UUID, req AddAnswerRequest) (*repo.AssessmentResult, error) {
	r, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status != entresult.StatusInProgress {
		return nil, ErrNotInProgress
	}

	_, err = s.db.AnswerDetail.Create().
		SetResultID(id).
		SetQuestionID(req.QuestionID).
		SetOptionID(req.OptionID).
		SetValue(req.Value).
		SetAnsweredAt(time.Now()).
		Save(ctx)
	if err != nil {
		return nil, fmt.Errorf("add answer: %w", err)
	}

	return s.GetWithDetails(ctx, id)
}

// TotalScore sums the answer values recorded for the result; 0 if none.
func (s *service) TotalScore(ctx context.Context, id uuid.UUID) (int, error) {
	var v []struct {
		Sum *int `sql:"sum"`
	}
	err := s.db.AnswerDetail.Query().
		Where(entanswer.ResultID(id)).
		Aggregate(repo.Sum(entanswer.FieldValue)).
		Scan(ctx, &v)
	if err != nil {
		return 0, fmt.Errorf("sum answer values: %w", err)
	}
	if len(v) == 0 || v[0].Sum == nil {
		return 0, nil
	}
	return *v[0].Sum, nil
}

// Trend returns the completed scores of the result's patient for the same
// assessment type within the trailing day window, oldest first.
func (s *service) Trend(ctx context.Context, id uuid.UUID, days int) (*TrendData, error) {
	r, err := s.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	a := r.Edges.Assessment
	if a == nil {
		return nil, ErrAssessmentNotFound
	}

	since := time.Now().AddDate(0, 0, -days)
	rows, err := s.db.AssessmentResult.Query().
		Where(
			entresult.PatientID(r.PatientID),
			entresult.StatusEQ(entresult.StatusCompleted),
			entresult.CompletedAtGTE(since),
			entresult.HasAssessmentWith(entassessment.Type(a.Type)),
		).
		Order(entresult.ByCompletedAt()).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query trend window: %w", err)
	}

	points := make([]TrendPoint, 0, len(rows))
	for _, row := range rows {
		if row.CompletedAt == nil || row.TotalScore == nil {
			continue
		}
		points = append(points, TrendPoint{
			Date:  *row.CompletedAt,
			Score: *row.TotalScore,
			Type:  a.Type,
		})
	}

	return &TrendData{
		AssessmentType: a.Type,
		DataPoints:     points,
		TrendLine:      []float64{},
		CutoffLine:     a.Cutoff,
		AverageLine:    averageLine(points),
	}, nil
}

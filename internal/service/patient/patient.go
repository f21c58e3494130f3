package patient

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/scaleapp/backend/internal/repo"
	entresult "github.com/scaleapp/backend/internal/repo/assessmentresult"
	entpatient "github.com/scaleapp/backend/internal/repo/patient"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type CreatePatientRequest struct {
	Name string
}

type UpdatePatientRequest struct {
	Name *string
}

// TypeSummary aggregates a patient's completed results for one assessment type.
type TypeSummary struct {
	Type           string     `json:"type"`
	CompletedCount int        `json:"completed_count"`
	LatestScore    *int       `json:"latest_score"`
	LatestDate     *time.Time `json:"latest_date"`
}

type Summary struct {
	PatientID          uuid.UUID     `json:"patient_id"`
	PatientName        string        `json:"patient_name"`
	Assessments        []TypeSummary `json:"assessments"`
	TotalCompleted     int           `json:"total_completed"`
	LastAssessmentDate *time.Time    `json:"last_assessment_date"`
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Create(ctx context.Context, req CreatePatientRequest) (*repo.Patient, error)
	GetByID(ctx context.Context, id uuid.UUID) (*repo.Patient, error)
	List(ctx context.Context, skip, limit int) ([]*repo.Patient, int, error)
	Update(ctx context.Context, id uuid.UUID, req UpdatePatientRequest) (*repo.Patient, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	GetWithResults(ctx context.Context, id uuid.UUID) (*repo.Patient, error)
	SearchByName(ctx context.Context, name string, skip, limit int) ([]*repo.Patient, int, error)
	ActiveResults(ctx context.Context, patientID uuid.UUID) ([]*repo.AssessmentResult, error)
	CompletedResults(ctx context.Context, patientID uuid.UUID, skip, limit int) ([]*repo.AssessmentResult, int, error)
	GetSummary(ctx context.Context, patientID uuid.UUID) (*Summary, error)
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

func (s *service) Create(ctx context.Context, req CreatePatientRequest) (*repo.Patient, error) {
	p, err := s.db.Patient.Create().
		SetName(req.Name).
		Save(ctx)
	if err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}
	return p, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*repo.Patient, error) {
	p, err := s.db.Patient.Get(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get patient: %w", err)
	}
	return p, nil
}

func (s *service) List(ctx context.Context, skip, limit int) ([]*repo.Patient, int, error) {
	q := s.db.Patient.Query()

	total, err := q.Clone().Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count patients: %w", err)
	}

	patients, err := q.
		Order(entpatient.ByCreatedAt()).
		Offset(skip).
		Limit(limit).
		All(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list patients: %w", err)
	}
	return patients, total, nil
}

// Update applies only the fields present in req; absent fields are untouched.
func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdatePatientRequest) (*repo.Patient, error) {
	u := s.db.Patient.UpdateOneID(id)
	if req.Name != nil {
		u = u.SetName(*req.Name)
	}

	p, err := u.Save(ctx)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update patient: %w", err)
	}
	return p, nil
}

// Delete removes the patient. Patients with recorded results cannot be
// deleted; the FK from results would be left dangling otherwise.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	hasResults, err := s.db.AssessmentResult.Query().
		Where(entresult.PatientID(id)).
		Exist(ctx)
	if err != nil {
		return fmt.Errorf("check patient results: %w", err)
	}
	if hasResults {
		return ErrHasResults
	}

	err = s.db.Patient.DeleteOneID(id).Exec(ctx)
	if err != nil {
		if repo.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete patient: %w", err)
	}
	return nil
}

func (s *service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.db.Patient.Query().Where(entpatient.ID(id)).Exist(ctx)
}

// GetWithResults eager-loads all of the patient's results in one round trip.
func (s *service) GetWithResults(ctx context.Context, id uuid.UUID) (*repo.Patient, error) {
	p, err := s.db.Patient.Query().
		Where(entpatient.ID(id)).
		WithResults().
		Only(ctx)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get patient with results: %w", err)
	}
	return p, nil
}

// SearchByName matches patients by case-insensitive substring.
func (s *service) SearchByName(ctx context.Context, name string, skip, limit int) ([]*repo.Patient, int, error) {
	q := s.db.Patient.Query().
		Where(entpatient.NameContainsFold(name))

	total, err := q.Clone().Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count patients by name: %w", err)
	}

	patients, err := q.
		Order(entpatient.ByName()).
		Offset(skip).
		Limit(limit).
		All(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("search patients: %w", err)
	}
	return patients, total, nil
}

// ActiveResults returns the patient's results that are not yet completed,
// most recent first.
func (s *service) ActiveResults(ctx context.Context, patientID uuid.UUID) ([]*repo.AssessmentResult, error) {
	return s.db.AssessmentResult.Query().
		Where(
			entresult.PatientID(patientID),
			entresult.StatusNEQ(entresult.StatusCompleted),
		).
		Order(entresult.ByCreatedAt(sql.OrderDesc())).
		All(ctx)
}

// CompletedResults returns the patient's completed results ordered by
// completion time, newest first.
func (s *service) CompletedResults(ctx context.Context, patientID uuid.UUID, skip, limit int) ([]*repo.AssessmentResult, int, error) {
	q := s.db.AssessmentResult.Query().
		Where(
			entresult.PatientID(patientID),
			entresult.StatusEQ(entresult.StatusCompleted),
		)

	total, err := q.Clone().Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count completed results: %w", err)
	}

	results, err := q.
		Order(entresult.ByCompletedAt(sql.OrderDesc())).
		Offset(skip).
		Limit(limit).
		All(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list completed results: %w", err)
	}
	return results, total, nil
}

func (s *service) GetSummary(ctx context.Context, patientID uuid.UUID) (*Summary, error) {
	p, err := s.db.Patient.Query().
		Where(entpatient.ID(patientID)).
		WithResults(func(q *repo.AssessmentResultQuery) {
			q.WithAssessment()
		}).
		Only(ctx)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get patient with results: %w", err)
	}

	summary := &Summary{
		PatientID:   p.ID,
		PatientName: p.Name,
		Assessments: []TypeSummary{},
	}

	byType := map[string]*TypeSummary{}
	for _, r := range p.Edges.Results {
		if r.Status != entresult.StatusCompleted || r.CompletedAt == nil {
			continue
		}
		summary.TotalCompleted++
		if summary.LastAssessmentDate == nil || r.CompletedAt.After(*summary.LastAssessmentDate) {
			summary.LastAssessmentDate = r.CompletedAt
		}

		if r.Edges.Assessment == nil {
			continue
		}
		t := r.Edges.Assessment.Type
		ts, ok := byType[t]
		if !ok {
			ts = &TypeSummary{Type: t}
			byType[t] = ts
		}
		ts.CompletedCount++
		if ts.LatestDate == nil || r.CompletedAt.After(*ts.LatestDate) {
			ts.LatestDate = r.CompletedAt
			ts.LatestScore = r.TotalScore
		}
	}
	for _, ts := range byType {
		summary.Assessments = append(summary.Assessments, *ts)
	}

	return summary, nil
}

package result

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scaleapp/backend/internal/repo"
	entresult "github.com/scaleapp/backend/internal/repo/assessmentresult"
	"github.com/scaleapp/backend/internal/repo/enttest"
)

func newTestClient(t *testing.T) *repo.Client {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name())
	client := enttest.Open(t, "sqlite3", dsn)
	t.Cleanup(func() { client.Close() })
	return client
}

type fixture struct {
	patient    *repo.Patient
	assessment *repo.Assessment
	questions  []*repo.Question
	options    []*repo.Option
}

// seedFixture creates a patient and an assessment with two questions and
// four options valued 0..3, cutoff 10 and max score 20.
func seedFixture(t *testing.T, client *repo.Client) fixture {
	t.Helper()
	ctx := context.Background()

	p, err := client.Patient.Create().SetName("Jamie Doe").Save(ctx)
	require.NoError(t, err)

	a, err := client.Assessment.Create().
		SetName("Anxiety Screening").
		SetType("gad").
		SetCutoff(10).
		SetMaxScore(20).
		Save(ctx)
	require.NoError(t, err)

	var questions []*repo.Question
	for i := 1; i <= 2; i++ {
		q, err := client.Question.Create().
			SetAssessmentID(a.ID).
			SetText(fmt.Sprintf("Question %d", i)).
			SetOrder(i).
			Save(ctx)
		require.NoError(t, err)
		questions = append(questions, q)
	}

	var options []*repo.Option
	for v := 0; v <= 3; v++ {
		o, err := client.Option.Create().
			SetAssessmentID(a.ID).
			SetText(fmt.Sprintf("Option %d", v)).
			SetValue(v).
			SetOrder(v + 1).
			Save(ctx)
		require.NoError(t, err)
		options = append(options, o)
	}

	return fixture{patient: p, assessment: a, questions: questions, options: options}
}

func TestCreateResult(t *testing.T) {
	client := newTestClient(t)
	fx := seedFixture(t, client)
	svc := New(client)
	ctx := context.Background()

	r, err := svc.Create(ctx, CreateResultRequest{
		PatientID:    fx.patient.ID,
		AssessmentID: fx.assessment.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, entresult.StatusNotStarted, r.Status)
	assert.Nil(t, r.StartedAt)
	assert.Nil(t, r.CompletedAt)
	assert.Nil(t, r.TotalScore)
}

func TestCreateResultMissingParents(t *testing.T) {
	client := newTestClient(t)
	fx := seedFixture(t, client)
	svc := New(client)
	ctx := context.Background()

	other := seedFixture(t, client)

	_, err := svc.Create(ctx, CreateResultRequest{
		PatientID:    uuid.New(),
		AssessmentID: fx.assessment.ID,
	})
	assert.ErrorIs(t, err, ErrPatientNotFound)

	_, err = svc.Create(ctx, CreateResultRequest{
		PatientID:    other.patient.ID,
		AssessmentID: uuid.New(),
	})
	assert.ErrorIs(t, err, ErrAssessmentNotFound)
}

func TestStartTransitions(t *testing.T) {
	client := newTestClient(t)
	fx := seedFixture(t, client)
	svc := New(client)
	ctx := context.Background()

	r, err := svc.Create(ctx, CreateResultRequest{PatientID: fx.patient.ID, AssessmentID: fx.assessment.ID})
	require.NoError(t, err)

	started, err := svc.Start(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, entresult.StatusInProgress, started.Status)
	require.NotNil(t, started.StartedAt)

	// Starting again is a no-op that keeps the original timestamp.
	again, err := svc.Start(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, entresult.StatusInProgress, again.Status)
	assert.Equal(t, started.StartedAt.Unix(), again.StartedAt.Unix())
}

func TestAddAnswerRequiresInProgress(t *testing.T) {
	client := newTestClient(t)
	fx := seedFixture(t, client)
	svc := New(client)
	ctx := context.Background()

	r, err := svc.Create(ctx, CreateResultRequest{PatientID: fx.patient.ID, AssessmentID: fx.assessment.ID})
	require.NoError(t, err)

	req := AddAnswerRequest{
		QuestionID: fx.questions[0].ID,
		OptionID:   fx.options[2].ID,
		Value:      fx.options[2].Value,
	}

	// not_started rejects answers
	_, err = svc.AddAnswer(ctx, r.ID, req)
	assert.ErrorIs(t, err, ErrNotInProgress)

	_, err = svc.Start(ctx, r.ID)
	require.NoError(t, err)

	withAnswers, err := svc.AddAnswer(ctx, r.ID, req)
	require.NoError(t, err)
	require.Len(t, withAnswers.Edges.Answers, 1)
	assert.Equal(t, 2, withAnswers.Edges.Answers[0].Value)

	// completed rejects answers too
	_, err = svc.Complete(ctx, r.ID)
	require.NoError(t, err)
	_, err = svc.AddAnswer(ctx, r.ID, req)
	assert.ErrorIs(t, err, ErrNotInProgress)
}

func TestCompleteComputesScore(t *testing.T) {
	client := newTestClient(t)
	fx := seedFixture(t, client)
	svc := New(client)
	ctx := context.Background()

	r, err := svc.Create(ctx, CreateResultRequest{PatientID: fx.patient.ID, AssessmentID: fx.assessment.ID})
	require.NoError(t, err)

	// Completing before starting is a no-op.
	same, err := svc.Complete(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, entresult.StatusNotStarted, same.Status)

	_, err = svc.Start(ctx, r.ID)
	require.NoError(t, err)

	answers := []struct {
		q int
		o int
	}{{0, 3}, {1, 2}}
	for _, a := range answers {
		_, err = svc.AddAnswer(ctx, r.ID, AddAnswerRequest{
			QuestionID: fx.questions[a.q].ID,
			OptionID:   fx.options[a.o].ID,
			Value:      fx.options[a.o].Value,
		})
		require.NoError(t, err)
	}

	done, err := svc.Complete(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, entresult.StatusCompleted, done.Status)
	require.NotNil(t, done.TotalScore)
	assert.Equal(t, 5, *done.TotalScore)
	require.NotNil(t, done.CompletedAt)

	// A second complete does not recompute or restamp.
	again, err := svc.Complete(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, done.CompletedAt.Unix(), again.CompletedAt.Unix())
	assert.Equal(t, *done.TotalScore, *again.TotalScore)
}

func TestCompleteWithNoAnswersScoresZero(t *testing.T) {
	client := newTestClient(t)
	fx := seedFixture(t, client)
	svc := New(client)
	ctx := context.Background()

	r, err := svc.Create(ctx, CreateResultRequest{PatientID: fx.patient.ID, AssessmentID: fx.assessment.ID})
	require.NoError(t, err)
	_, err = svc.Start(ctx, r.ID)
	require.NoError(t, err)

	done, err := svc.Complete(ctx, r.ID)
	require.NoError(t, err)
	require.NotNil(t, done.TotalScore)
	assert.Equal(t, 0, *done.TotalScore)
}

func TestGetDetailDerivesClinicalFields(t *testing.T) {
	client := newTestClient(t)
	fx := seedFixture(t, client)
	svc := New(client)
	ctx := context.Background()

	r, err := svc.Create(ctx, CreateResultRequest{PatientID: fx.patient.ID, AssessmentID: fx.assessment.ID})
	require.NoError(t, err)

	// Before completion the score defaults to 0: normal, not above cutoff,
	// no completion time.
	d, err := svc.GetDetail(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, SeverityNormal, d.SeverityLevel)
	assert.False(t, d.IsAboveCutoff)
	assert.Nil(t, d.CompletionTimeMinutes)

	_, err = svc.Start(ctx, r.ID)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err = svc.AddAnswer(ctx, r.ID, AddAnswerRequest{
			QuestionID: fx.questions[i].ID,
			OptionID:   fx.options[3].ID,
			Value:      fx.options[3].Value + 3, // 6 each, total 12
		})
		require.NoError(t, err)
	}
	_, err = svc.Complete(ctx, r.ID)
	require.NoError(t, err)

	// Score 12 with cutoff 10 and max 20 lands in the moderate band.
	d, err = svc.GetDetail(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, SeverityModerate, d.SeverityLevel)
	assert.True(t, d.IsAboveCutoff)
	require.NotNil(t, d.CompletionTimeMinutes)
	assert.GreaterOrEqual(t, *d.CompletionTimeMinutes, 0.0)
}

func TestTrend(t *testing.T) {
	client := newTestClient(t)
	fx := seedFixture(t, client)
	svc := New(client)
	ctx := context.Background()

	scores := [][]int{{1, 2}, {3, 3}}
	var last *repo.AssessmentResult
	for _, pair := range scores {
		r, err := svc.Create(ctx, CreateResultRequest{PatientID: fx.patient.ID, AssessmentID: fx.assessment.ID})
		require.NoError(t, err)
		_, err = svc.Start(ctx, r.ID)
		require.NoError(t, err)
		for i, o := range pair {
			_, err = svc.AddAnswer(ctx, r.ID, AddAnswerRequest{
				QuestionID: fx.questions[i].ID,
				OptionID:   fx.options[o].ID,
				Value:      fx.options[o].Value,
			})
			require.NoError(t, err)
		}
		last, err = svc.Complete(ctx, r.ID)
		require.NoError(t, err)
	}

	trend, err := svc.Trend(ctx, last.ID, 30)
	require.NoError(t, err)

	assert.Equal(t, "gad", trend.AssessmentType)
	assert.Equal(t, 10, trend.CutoffLine)
	require.Len(t, trend.DataPoints, 2)
	// Oldest first: 1+2=3 then 3+3=6.
	assert.Equal(t, 3, trend.DataPoints[0].Score)
	assert.Equal(t, 6, trend.DataPoints[1].Score)
	assert.InDelta(t, 4.5, trend.AverageLine, 0.0001)
	assert.Empty(t, trend.TrendLine)
	assert.NotNil(t, trend.TrendLine)
}

package assessment

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
	entoption "github.com/scaleapp/backend/internal/repo/option"
	entquestion "github.com/scaleapp/backend/internal/repo/question"
)

func newTestClient(t *testing.T) *repo.Client {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name())
	client := enttest.Open(t, "sqlite3", dsn)
	t.Cleanup(func() { client.Close() })
	return client
}

func sampleRequest() CreateAssessmentRequest {
	desc := "Screening scale"
	return CreateAssessmentRequest{
		Name:        "Depression Screening",
		Type:        "phq",
		Description: &desc,
		Cutoff:      10,
		MaxScore:    27,
		Questions: []QuestionInput{
			{Text: "First question", Order: 1},
			{Text: "Second question", Order: 2},
		},
		Options: []OptionInput{
			{Text: "Not at all", Value: 0, Order: 1},
			{Text: "Several days", Value: 1, Order: 2},
			{Text: "Nearly every day", Value: 3, Order: 3},
		},
	}
}

func TestCreateWithChildren(t *testing.T) {
	client := newTestClient(t)
	svc := New(client)
	ctx := context.Background()

	a, err := svc.Create(ctx, sampleRequest())
	require.NoError(t, err)

	assert.Equal(t, "Depression Screening", a.Name)
	assert.Equal(t, "phq", a.Type)
	require.NotNil(t, a.Description)
	assert.Equal(t, "Screening scale", *a.Description)

	require.Len(t, a.Edges.Questions, 2)
	assert.Equal(t, "First question", a.Edges.Questions[0].Text)
	require.Len(t, a.Edges.Options, 3)
	assert.Equal(t, 3, a.Edges.Options[2].Value)
}

func TestUpdatePartial(t *testing.T) {
	client := newTestClient(t)
	svc := New(client)
	ctx := context.Background()

	a, err := svc.Create(ctx, sampleRequest())
	require.NoError(t, err)

	newCutoff := 12
	updated, err := svc.Update(ctx, a.ID, UpdateAssessmentRequest{Cutoff: &newCutoff})
	require.NoError(t, err)

	assert.Equal(t, 12, updated.Cutoff)
	// Untouched fields keep their values.
	assert.Equal(t, a.Name, updated.Name)
	assert.Equal(t, a.MaxScore, updated.MaxScore)

	_, err = svc.Update(ctx, uuid.New(), UpdateAssessmentRequest{Cutoff: &newCutoff})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCascadesToChildren(t *testing.T) {
	client := newTestClient(t)
	svc := New(client)
	ctx := context.Background()

	a, err := svc.Create(ctx, sampleRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, a.ID))

	qCount, err := client.Question.Query().Where(entquestion.AssessmentID(a.ID)).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, qCount)

	oCount, err := client.Option.Query().Where(entoption.AssessmentID(a.ID)).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, oCount)
}

func TestDeleteBlockedByResults(t *testing.T) {
	client := newTestClient(t)
	svc := New(client)
	ctx := context.Background()

	a, err := svc.Create(ctx, sampleRequest())
	require.NoError(t, err)

	p, err := client.Patient.Create().SetName("Jamie Doe").Save(ctx)
	require.NoError(t, err)
	_, err = client.AssessmentResult.Create().
		SetPatientID(p.ID).
		SetAssessmentID(a.ID).
		Save(ctx)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, a.ID), ErrHasResults)

	// The assessment is still there.
	exists, err := svc.Exists(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestListWithTypeFilter(t *testing.T) {
	client := newTestClient(t)
	svc := New(client)
	ctx := context.Background()

	req := sampleRequest()
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	req2 := sampleRequest()
	req2.Name = "Anxiety Screening"
	req2.Type = "gad"
	_, err = svc.Create(ctx, req2)
	require.NoError(t, err)

	all, total, err := svc.List(ctx, ListAssessmentsRequest{Skip: 0, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, all, 2)

	filtered, total, err := svc.List(ctx, ListAssessmentsRequest{Skip: 0, Limit: 10, Type: "gad"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Anxiety Screening", filtered[0].Name)
}

func TestGetStatistics(t *testing.T) {
	client := newTestClient(t)
	svc := New(client)
	ctx := context.Background()

	a, err := svc.Create(ctx, sampleRequest())
	require.NoError(t, err)

	p, err := client.Patient.Create().SetName("Jamie Doe").Save(ctx)
	require.NoError(t, err)

	// Empty statistics before any results.
	stats, err := svc.GetStatistics(ctx, a.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalAttempts)
	assert.Zero(t, stats.AverageScore)
	assert.Nil(t, stats.MinScore)
	assert.Nil(t, stats.MaxScore)
	assert.Zero(t, stats.CompletionRate)

	// Three completed results with scores 8, 12, 16 and one abandoned.
	for _, score := range []int{8, 12, 16} {
		_, err = client.AssessmentResult.Create().
			SetPatientID(p.ID).
			SetAssessmentID(a.ID).
			SetStatus(entresult.StatusCompleted).
			SetTotalScore(score).
			Save(ctx)
		require.NoError(t, err)
	}
	_, err = client.AssessmentResult.Create().
		SetPatientID(p.ID).
		SetAssessmentID(a.ID).
		SetStatus(entresult.StatusInProgress).
		Save(ctx)
	require.NoError(t, err)

	stats, err = svc.GetStatistics(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalAttempts)
	assert.InDelta(t, 12.0, stats.AverageScore, 0.0001)
	require.NotNil(t, stats.MinScore)
	assert.Equal(t, 8, *stats.MinScore)
	require.NotNil(t, stats.MaxScore)
	assert.Equal(t, 16, *stats.MaxScore)
	assert.InDelta(t, 75.0, stats.CompletionRate, 0.0001)
}

func TestAddQuestionAndOption(t *testing.T) {
	client := newTestClient(t)
	svc := New(client)
	ctx := context.Background()

	a, err := svc.Create(ctx, sampleRequest())
	require.NoError(t, err)

	q, err := svc.AddQuestion(ctx, a.ID, QuestionInput{Text: "Third question", Order: 3})
	require.NoError(t, err)
	assert.Equal(t, "Third question", q.Text)

	o, err := svc.AddOption(ctx, a.ID, OptionInput{Text: "More than half the days", Value: 2, Order: 4})
	require.NoError(t, err)
	assert.Equal(t, 2, o.Value)

	_, err = svc.AddQuestion(ctx, uuid.New(), QuestionInput{Text: "Orphan", Order: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

package result

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifySeverity(t *testing.T) {
	// cutoff 10, max 20: 0.6*max = 12, 0.8*max = 16
	tests := []struct {
		name  string
		score int
		want  Severity
	}{
		{name: "well below cutoff", score: 5, want: SeverityNormal},
		{name: "just below cutoff", score: 9, want: SeverityNormal},
		{name: "at cutoff", score: 10, want: SeverityMild},
		{name: "below moderate band", score: 11, want: SeverityMild},
		{name: "at moderate threshold", score: 12, want: SeverityModerate},
		{name: "below severe band", score: 15, want: SeverityModerate},
		{name: "at severe threshold", score: 16, want: SeveritySevere},
		{name: "max score", score: 20, want: SeveritySevere},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifySeverity(tt.score, 10, 20))
		})
	}
}

func TestClassifySeverityZeroMaxScore(t *testing.T) {
	// A degenerate definition with max_score 0 pushes everything at or
	// above the cutoff into the severe band.
	assert.Equal(t, SeveritySevere, classifySeverity(3, 2, 0))
	assert.Equal(t, SeverityNormal, classifySeverity(1, 2, 0))
}

func TestIsAboveCutoff(t *testing.T) {
	assert.False(t, isAboveCutoff(9, 10))
	assert.False(t, isAboveCutoff(10, 10), "equal to cutoff is not above it")
	assert.True(t, isAboveCutoff(11, 10))
}

func TestCompletionMinutes(t *testing.T) {
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(7*time.Minute + 30*time.Second)

	assert.Nil(t, completionMinutes(nil, nil))
	assert.Nil(t, completionMinutes(&start, nil))
	assert.Nil(t, completionMinutes(nil, &end))

	m := completionMinutes(&start, &end)
	if assert.NotNil(t, m) {
		assert.InDelta(t, 7.5, *m, 0.0001)
	}
}

func TestAverageLine(t *testing.T) {
	assert.Equal(t, 0.0, averageLine(nil))
	assert.Equal(t, 0.0, averageLine([]TrendPoint{}))

	points := []TrendPoint{{Score: 10}, {Score: 14}, {Score: 12}}
	assert.InDelta(t, 12.0, averageLine(points), 0.0001)
}

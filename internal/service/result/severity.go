package result

import "time"

// Severity is the coarse clinical classification of a completed score.
type Severity string

const (
	SeverityUnknown  Severity = "unknown"
	SeverityNormal   Severity = "normal"
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// classifySeverity bands a score against the assessment's cutoff and
// max score. Scores below the cutoff are normal; at or above it the band
// depends on the fraction of max score reached (0.8 severe, 0.6 moderate).
func classifySeverity(score, cutoff, maxScore int) Severity {
	if score < cutoff {
		return SeverityNormal
	}
	switch {
	case float64(score) >= float64(maxScore)*0.8:
		return SeveritySevere
	case float64(score) >= float64(maxScore)*0.6:
		return SeverityModerate
	default:
		return SeverityMild
	}
}

// isAboveCutoff reports whether the score strictly exceeds the cutoff.
// Note the asymmetry with classifySeverity: a score equal to the cutoff
// classifies as mild or worse but does not set this flag.
func isAboveCutoff(score, cutoff int) bool {
	return score > cutoff
}

// completionMinutes returns the duration between start and completion in
// minutes, or nil when either timestamp is missing.
func completionMinutes(startedAt, completedAt *time.Time) *float64 {
	if startedAt == nil || completedAt == nil {
		return nil
	}
	m := completedAt.Sub(*startedAt).Minutes()
	return &m
}

// averageLine is the arithmetic mean of the scores in a trend window,
// or 0 for an empty window.
func averageLine(points []TrendPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	sum := 0
	for _, p := range points {
		sum += p.Score
	}
	return float64(sum) / float64(len(points))
}

package result

import "errors"

var (
	ErrNotFound           = errors.New("assessment result not found")
	ErrPatientNotFound    = errors.New("patient not found")
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrNotInProgress      = errors.New("answers can only be added to an in-progress result")
)

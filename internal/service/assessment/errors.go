package assessment

import "errors"

var (
	ErrNotFound   = errors.New("assessment not found")
	ErrHasResults = errors.New("assessment has recorded results and cannot be deleted")
)

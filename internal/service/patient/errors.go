package patient

import "errors"

var (
	ErrNotFound   = errors.New("patient not found")
	ErrHasResults = errors.New("patient has recorded results and cannot be deleted")
)

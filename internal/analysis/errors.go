package analysis

import "errors"

var (
	ErrStageFailed = errors.New("analysis stage failed")
	ErrNotSection  = errors.New("stage does not produce candidates")
	ErrEmptyBatch  = errors.New("message batch is empty")
)

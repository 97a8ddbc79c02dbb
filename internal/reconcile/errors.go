package reconcile

import "errors"

var ErrInvalidCandidate = errors.New("invalid candidate")

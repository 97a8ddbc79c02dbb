package confidence

import "errors"

var ErrInvalidArgument = errors.New("invalid argument")

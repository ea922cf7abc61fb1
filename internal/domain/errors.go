package domain

import (
	"errors"
	"fmt"
)

// ErrValidation marks caller mistakes. Handlers map anything wrapping it to
// a 400 response; everything else on a query path is treated as a store error.
var ErrValidation = errors.New("validation failed")

var (
	ErrEmptyButtonName = fmt.Errorf("%w: button name is required", ErrValidation)
	ErrInvalidDays     = fmt.Errorf("%w: days must be a positive integer", ErrValidation)
	ErrInvalidPage     = fmt.Errorf("%w: page must be a positive integer", ErrValidation)
	ErrInvalidLimit    = fmt.Errorf("%w: limit must be a positive integer", ErrValidation)
)

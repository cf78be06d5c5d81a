package swap

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("agreement not found")
	ErrSkillOwnership    = errors.New("skill ownership mismatch")
	ErrInvalidTransition = errors.New("invalid agreement transition")
)

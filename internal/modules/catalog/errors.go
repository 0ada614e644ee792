package catalog

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("not found")
	ErrLocationNotFound = errors.New("location not found")
)

package domain

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnknownParameter = errors.New("unknown parameter")
	ErrNotFound         = errors.New("not found")
)

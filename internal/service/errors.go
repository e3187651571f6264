package service

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrUnauthenticated   = errors.New("not authenticated")
	ErrAlreadyReviewed   = errors.New("booking already reviewed")
	ErrInvalidTransition = errors.New("invalid status transition")
)

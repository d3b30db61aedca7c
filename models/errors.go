package models

import "errors"

// Sentinel errors shared by the store and service layers. Handlers map
// these onto HTTP status codes with errors.Is.
var (
	ErrInvalidSchema = errors.New("invalid schema")
	ErrDuplicateName = errors.New("duplicate name")
	ErrNotFound      = errors.New("not found")
	ErrEmptyField    = errors.New("empty field")
)

package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
	ErrInvalidQuery  = errors.New("invalid list query")
	ErrInvalidSeed   = errors.New("invalid catalog seed")
)

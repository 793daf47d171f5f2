package repository

import "errors"

var (
	ErrMongodb             = errors.New("mongodb operation failed")
	ErrRoundRecordNotFound = errors.New("round record not found")
	ErrTableNotPublished   = errors.New("distance table not published")
	ErrTableDigestMismatch = errors.New("distance table digest mismatch")
)

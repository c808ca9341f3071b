package query

import "errors"

// Domain-specific errors for the query package.
var (
	ErrEmptyQuery        = errors.New("query text is empty")
	ErrAllVariantsFailed = errors.New("all query variants failed")
)

package catalog

import "codeberg.org/mutker/sqlfault/internal/errors"

const (
	// Resolution errors
	ErrUnknownKey  = errors.ErrorCode("catalog_unknown_key")
	ErrBadTemplate = errors.ErrorCode("catalog_bad_template")

	// Load errors
	ErrReadCatalog    = errors.ErrorCode("catalog_read_failed")
	ErrInvalidCatalog = errors.ErrorCode("catalog_invalid_content")
)

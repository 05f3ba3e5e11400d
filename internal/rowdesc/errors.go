package rowdesc

import "codeberg.org/mutker/sqlfault/internal/errors"

const (
	ErrNoCursor      = errors.ErrorCode("rowdesc_no_cursor")
	ErrColumnsFailed = errors.ErrorCode("rowdesc_columns_failed")
	ErrScanFailed    = errors.ErrorCode("rowdesc_scan_failed")
)

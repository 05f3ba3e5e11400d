package faultlog

import "codeberg.org/mutker/sqlfault/internal/errors"

const (
	// Configuration errors
	ErrInvalidConfig = errors.ErrorCode("faultlog_invalid_config")
	ErrInvalidDBPath = errors.ErrorCode("faultlog_invalid_db_path")

	// Recording errors
	ErrInvalidOccurrence = errors.ErrorCode("faultlog_invalid_occurrence")
	ErrRecordFailed      = errors.ErrorCode("faultlog_record_failed")
	ErrQueryFailed       = errors.ErrorCode("faultlog_query_failed")

	// Storage errors
	ErrStorageInit      = errors.ErrorCode("faultlog_storage_init_failed")
	ErrStorageClose     = errors.ErrorCode("faultlog_storage_close_failed")
	ErrSchemaInitFailed = errors.ErrorCode("faultlog_schema_init_failed")

	// Operation errors
	ErrOperationTimeout = errors.ErrorCode("faultlog_operation_timeout")
)

package domain

import "errors"

// Domain errors
var (
	ErrUnsupportedFormat   = errors.New("unsupported file format")
	ErrFileTooLarge        = errors.New("file too large")
	ErrEmptyFile           = errors.New("file is empty")
	ErrEmptyQuery          = errors.New("search query is required")
	ErrHistoryItemNotFound = errors.New("history item not found")
	ErrOCRDisabled         = errors.New("ocr is disabled")
	ErrInvalidToken        = errors.New("invalid token")
	ErrUsageStoreDisabled  = errors.New("usage store is not configured")
)

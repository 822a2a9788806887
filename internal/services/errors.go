package services

import "errors"

var (
	ErrUnknown            = errors.New("[service]: unknown error")
	ErrRecordNotFound     = errors.New("[service]: record not found")
	ErrDuplicateShortcode = errors.New("[service]: duplicate shortcode")
	ErrLinkExpired        = errors.New("[service]: link expired")
)

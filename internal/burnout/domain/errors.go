package domain

import "errors"

var (
	ErrExternalService  = errors.New("external_service_error")
	ErrInvalidUser      = errors.New("invalid_user")
	ErrInvalidPageToken = errors.New("invalid_page_token")
	ErrInvalidThreshold = errors.New("invalid_threshold")
)

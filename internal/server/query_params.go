package server

import (
	"errors"
	"strconv"
	"strings"
)

var errInvalidQueryParam = errors.New("invalid_query_param")

func parseOptionalInt(value string) (*int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil, errInvalidQueryParam
	}
	return &parsed, nil
}

func parseOptionalFloat(value string) (*float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil, errInvalidQueryParam
	}
	return &parsed, nil
}

package domain

import "errors"

var (
	ErrTrendNotFound = errors.New("trend not found")
)

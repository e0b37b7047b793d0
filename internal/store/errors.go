package store

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrDriverNotFound    = errors.New("driver not found")
	ErrOrderNotPending   = errors.New("order is not pending")
	ErrOrderNotAssigned  = errors.New("order is not assigned")
	ErrDriverUnavailable = errors.New("driver is not idle")
)

package services

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrGoalNotFound    = errors.New("goal not found")
	ErrInvalidTimezone = errors.New("invalid timezone")
	ErrInvalidInput    = errors.New("invalid input")
)

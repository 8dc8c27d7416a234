package service

import "errors"

var (
	ErrUsernameTaken      = errors.New("username already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidInput       = errors.New("invalid input")

	ErrTrainNotFound    = errors.New("train not found")
	ErrInvalidSeats     = errors.New("total seats must be positive")
	ErrSeatsBelowBooked = errors.New("total seats below seats already booked")
	ErrNoAvailability   = errors.New("no seats available")

	ErrBookingNotFound = errors.New("booking not found")

	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

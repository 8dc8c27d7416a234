// Package entity defines the request and response bodies of the booking API.
package entity

import "time"

type RegisterRequest struct {
	Username string `json:"username" binding:"required,notblank,max=64"`
	Password string `json:"password" binding:"required,max=72"`
	Role     string `json:"role" binding:"omitempty,oneof=admin user"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

type CreateTrainRequest struct {
	TrainName   string `json:"train_name" binding:"required,notblank"`
	Source      string `json:"source" binding:"required,notblank"`
	Destination string `json:"destination" binding:"required,notblank"`
	TotalSeats  int    `json:"total_seats"`
}

type UpdateSeatsRequest struct {
	// checked by the service so non-positive values report invalid_seats
	TotalSeats int `json:"total_seats"`
}

type BookRequest struct {
	TrainId int `json:"train_id" binding:"required,gt=0"`
}

// Msg is the success body of mutating endpoints.
type Msg struct {
	Message string `json:"message"`
	Id      int    `json:"id,omitempty"`
}

// BookingMsg confirms a booking.
type BookingMsg struct {
	Message   string `json:"message"`
	BookingId int    `json:"booking_id"`
}

// ErrorMsg carries a short machine-readable reason; internal details never
// reach it.
type ErrorMsg struct {
	Error string `json:"error"`
}

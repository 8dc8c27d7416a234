// Package model defines the persisted entities of the booking service.
package model

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the roles the service assigns.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

type User struct {
	Id           int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string `json:"username" gorm:"size:64;uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"column:password_hash;not null"`
	Role         Role   `json:"role" gorm:"size:16;not null"`
}

// Train holds the route and seat counters. AvailableSeats stays within
// [0, TotalSeats]; every write to either counter is a guarded UPDATE.
type Train struct {
	Id             int    `json:"id" gorm:"primaryKey;autoIncrement"`
	TrainName      string `json:"train_name" gorm:"not null"`
	Source         string `json:"source" gorm:"not null;index:idx_train_route"`
	Destination    string `json:"destination" gorm:"not null;index:idx_train_route"`
	TotalSeats     int    `json:"total_seats" gorm:"not null"`
	AvailableSeats int    `json:"available_seats" gorm:"not null"`
}

// Booking is one reserved seat.
type Booking struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserId    int       `json:"user_id" gorm:"not null;index"`
	TrainId   int       `json:"train_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	User  *User  `json:"-" gorm:"foreignKey:UserId"`
	Train *Train `json:"train,omitempty" gorm:"foreignKey:TrainId"`
}

// TicketPayload is the text encoded into the booking's QR ticket.
func (b *Booking) TicketPayload() string {
	return fmt.Sprintf("booking=%d;train=%d;user=%d;at=%s",
		b.Id, b.TrainId, b.UserId, b.CreatedAt.UTC().Format(time.RFC3339))
}

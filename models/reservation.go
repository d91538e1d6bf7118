package models

import "time"

// Reservation books a table for a user. Date and time are stored as plain
// "2006-01-02" / "15:04" strings so the composite uniqueness index on
// (user, date, time) compares exactly what the client submitted.
type Reservation struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	UserID          uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_reservation_slot"`
	User            User      `json:"-" gorm:"foreignKey:UserID"`
	Name            string    `json:"name" gorm:"not null"`
	NumberOfGuests  int       `json:"number_of_guests" gorm:"not null"`
	ReservationDate string    `json:"reservation_date" gorm:"not null;uniqueIndex:idx_reservation_slot"`
	ReservationTime string    `json:"reservation_time" gorm:"not null;uniqueIndex:idx_reservation_slot"`
	SpecialRequests string    `json:"special_requests"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

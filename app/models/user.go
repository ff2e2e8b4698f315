package models

import "time"

// Address is a Japanese postal address, embedded wherever one is needed.
type Address struct {
	PostalCode string `json:"postalCode"`
	Prefecture string `json:"prefecture"`
	City       string `json:"city"`
	Street     string `json:"address"`
}

// User is a registered customer. Users are not rows in the object store:
// the whole list lives as one JSON record in key-value storage, the same
// way the current session does (see app/state.SessionContext).
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // bcrypt; stored but never checked at login (demo)
	Phone        string    `json:"phone,omitempty"`
	Address      *Address  `json:"address,omitempty"`
	Role         string    `json:"role,omitempty"` // "admin" unlocks the back office
	CreatedAt    time.Time `json:"createdAt"`
}

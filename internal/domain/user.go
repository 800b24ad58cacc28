package domain

import "time"

// User is a registered account. Passwords are stored as bcrypt hashes only.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserAddress is one entry in a user's address book. At most one address per
// user carries IsDefault.
type UserAddress struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	FullAddress string    `json:"fullAddress"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Pincode     string    `json:"pincode"`
	IsDefault   bool      `json:"isDefault"`
	CreatedAt   time.Time `json:"createdAt"`
}

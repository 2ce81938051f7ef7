package domain

import "time"

// User is one account. Pseudo is the public identity key used for lookups;
// ID is the storage primary key and survives a pseudo change.
type User struct {
	ID           string
	Pseudo       string
	Email        string
	PasswordHash string
	Connected    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

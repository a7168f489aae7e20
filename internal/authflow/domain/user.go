package domain

import "time"

// User is an account record. The login flow only ever reads users; writes
// happen through the admin provisioning endpoint.
type User struct {
	ID           string // ULID
	Username     string
	Email        string
	DisplayName  string
	PasswordHash string // PHC-format Argon2id
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

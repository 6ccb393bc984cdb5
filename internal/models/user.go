package models

import "time"

// UserDB represents a user record in the database
type UserDB struct {
	UserID       int64     `json:"userId" db:"user_id"`       // Primary key
	Email        string    `json:"email" db:"email"`          // Unique email
	PasswordHash string    `json:"-" db:"password_hash"`      // bcrypt hash, never serialized
	CreatedAt    time.Time `json:"createdAt" db:"created_at"` // Creation timestamp
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"` // Last update timestamp
}

// Identity is a verified user as seen by request handlers.
type Identity struct {
	UserID    int64     `json:"userId"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Identity strips the password hash from the record.
func (u UserDB) Identity() Identity {
	return Identity{
		UserID:    u.UserID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserWithProfile is the outward view of a user together with its profile.
type UserWithProfile struct {
	Identity
	Profile UserProfile `json:"userInfos"`
}

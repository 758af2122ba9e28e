// Package models defines the data models shared by repositories and services.
package models

import "time"

// User is an account identity. PasswordHash is an Argon2id PHC string and
// never the raw password.
type User struct {
	ID            int64
	Email         string
	PasswordHash  string
	DisplayName   *string
	AvatarURL     *string
	EmailVerified bool
	CreatedAt     time.Time
}

// PublicUser is the user as exposed to callers, without the credential.
type PublicUser struct {
	ID            int64   `json:"id"`
	Email         string  `json:"email"`
	DisplayName   *string `json:"display_name,omitempty"`
	AvatarURL     *string `json:"avatar_url,omitempty"`
	EmailVerified bool    `json:"email_verified"`
}

// Public strips the credential from u.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:            u.ID,
		Email:         u.Email,
		DisplayName:   u.DisplayName,
		AvatarURL:     u.AvatarURL,
		EmailVerified: u.EmailVerified,
	}
}

// ProfileUpdate carries a partial profile change. Nil fields stay as they are.
type ProfileUpdate struct {
	DisplayName     *string
	Email           *string
	Password        *string
	CurrentPassword *string
}

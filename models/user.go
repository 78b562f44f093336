// models/user.go
package models

import "time"

// User represents a platform user (coordinator or participant).
type User struct {
	ID               string       `bson:"id" json:"id"`
	Name             string       `bson:"name" json:"name"`
	Email            string       `bson:"email" json:"email"`
	PasswordHash     string       `bson:"passwordHash" json:"-"`
	TokenHash        string       `bson:"tokenHash,omitempty" json:"-"`
	Timezone         string       `bson:"timezone,omitempty" json:"timezone,omitempty"`
	GoogleToken      *GoogleToken `bson:"googleToken,omitempty" json:"-"`
	GoogleCalendarID string       `bson:"googleCalendarId,omitempty" json:"googleCalendarId,omitempty"`
	CreatedAt        time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time    `bson:"updatedAt" json:"updatedAt"`
}

// GoogleConnected reports whether the user linked a Google calendar.
func (u *User) GoogleConnected() bool {
	return u != nil && u.GoogleToken != nil && (u.GoogleToken.AccessToken != "" || u.GoogleToken.RefreshToken != "")
}

// GoogleToken is the persisted subset of an OAuth2 token.
type GoogleToken struct {
	AccessToken  string    `bson:"accessToken" json:"accessToken"`
	RefreshToken string    `bson:"refreshToken,omitempty" json:"refreshToken,omitempty"`
	TokenType    string    `bson:"tokenType,omitempty" json:"tokenType,omitempty"`
	Expiry       time.Time `bson:"expiry,omitempty" json:"expiry,omitempty"`
}

// RegisterRequest is the payload for POST /api/users/register.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Timezone string `json:"timezone"`
}

// LoginRequest is the payload for POST /api/users/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse contains the user's ID, token, and public profile details.
type AuthResponse struct {
	ID       string `json:"id"`
	Token    string `json:"token"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

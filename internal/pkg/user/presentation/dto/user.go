package dto

import (
	"time"

	user "go-pairchat/internal/pkg/user/application/domain"
)

// UserResponse is the public JSON shape of a user.
type UserResponse struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	IsOnline bool      `json:"isOnline"`
	LastSeen time.Time `json:"lastSeen"`
}

func NewUserResponse(p user.Profile) UserResponse {
	return UserResponse{
		ID:       p.ID,
		Username: p.Username,
		Email:    p.Email,
		IsOnline: p.IsOnline,
		LastSeen: p.LastSeen,
	}
}

func NewUserResponses(profiles []user.Profile) []UserResponse {
	out := make([]UserResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, NewUserResponse(p))
	}
	return out
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

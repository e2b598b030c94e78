package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a registered account. PushSubscription is the raw JSON endpoint descriptor, nil when unsubscribed.
type User struct {
	ID               string
	Username         string
	Email            string
	PasswordHash     string
	IsOnline         bool
	LastSeen         time.Time
	CreatedAt        time.Time
	PushSubscription []byte
}

// Profile is the public projection of a User. It never carries credentials or subscriptions.
type Profile struct {
	ID       string
	Username string
	Email    string
	IsOnline bool
	LastSeen time.Time
}

// PushTarget pairs a user with their stored subscription.
type PushTarget struct {
	UserID       string
	Subscription []byte
}

// NewUser builds a freshly registered user. New accounts start online.
func NewUser(username, email, passwordHash string, now time.Time) User {
	now = now.UTC().Truncate(time.Microsecond)
	return User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(username),
		Email:        strings.TrimSpace(email),
		PasswordHash: passwordHash,
		IsOnline:     true,
		LastSeen:     now,
		CreatedAt:    now,
	}
}

func (u User) Profile() Profile {
	return Profile{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		IsOnline: u.IsOnline,
		LastSeen: u.LastSeen,
	}
}

// NormalizeID returns the canonical form of a user id, or false if it is not one.
func NormalizeID(id string) (string, bool) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

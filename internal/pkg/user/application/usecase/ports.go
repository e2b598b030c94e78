package usecase

import (
	"time"

	auth "go-pairchat/internal/pkg/auth/application/domain"
)

// TokenIssuer signs a bearer token for an identity.
type TokenIssuer interface {
	Issue(id auth.Identity) (string, error)
}

var now = func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }

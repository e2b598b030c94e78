package credential

import (
	"strings"
	"time"

	"github.com/gbrlsnchs/jwt/v3"

	auth "go-pairchat/internal/pkg/auth/application/domain"
	"go-pairchat/pkg/errors"
)

// DefaultTTL is how long an issued token stays valid.
const DefaultTTL = 7 * 24 * time.Hour

type claims struct {
	jwt.Payload
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Verifier issues and checks HS256 bearer tokens. It holds no state besides the key.
type Verifier struct {
	alg *jwt.HMACSHA
	ttl time.Duration
	now func() time.Time
}

func NewVerifier(secret string, ttl time.Duration) *Verifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Verifier{
		alg: jwt.NewHS256([]byte(secret)),
		ttl: ttl,
		now: time.Now,
	}
}

func (v *Verifier) Issue(id auth.Identity) (string, error) {
	if id.IsZero() {
		return "", errors.InvalidArg("identity without user id")
	}
	now := v.now()
	pl := claims{
		Payload: jwt.Payload{
			Subject:        id.UserID,
			IssuedAt:       jwt.NumericDate(now),
			ExpirationTime: jwt.NumericDate(now.Add(v.ttl)),
		},
		UserID:   id.UserID,
		Username: id.Username,
		Email:    id.Email,
	}
	token, err := jwt.Sign(pl, v.alg)
	if err != nil {
		return "", errors.Wrap(errors.CodeInternal, "token signing failed", err)
	}
	return string(token), nil
}

// Verify checks signature and expiry and returns the identity the token was issued for.
func (v *Verifier) Verify(token string) (auth.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Identity{}, errors.ErrUnauthorized
	}

	var pl claims
	validate := jwt.ValidatePayload(&pl.Payload, jwt.ExpirationTimeValidator(v.now()))
	if _, err := jwt.Verify([]byte(token), v.alg, &pl, validate); err != nil {
		return auth.Identity{}, errors.Wrap(errors.CodeUnauthenticated, "Unauthorized", err)
	}
	if pl.UserID == "" {
		return auth.Identity{}, errors.ErrUnauthorized
	}
	return auth.Identity{UserID: pl.UserID, Username: pl.Username, Email: pl.Email}, nil
}

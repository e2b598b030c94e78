package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	auth "go-pairchat/internal/pkg/auth/application/domain"
	"go-pairchat/pkg/errors"
)

const identityKey = "auth.identity"

// TokenVerifier resolves a bearer token into the caller's identity.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// RequireIdentity rejects requests without a valid bearer token and stores the identity on the context.
// allowQuery additionally accepts ?token= for clients that cannot set headers (websocket upgrades).
func RequireIdentity(v TokenVerifier, allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" && allowQuery {
			token = c.Query("token")
		}
		id, err := v.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": errors.ErrUnauthorized.Error()})
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// IdentityFrom returns the identity stored by RequireIdentity.
func IdentityFrom(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok && !id.IsZero()
}

func bearerToken(header string) string {
	const prefix = "bearer "
	header = strings.TrimSpace(header)
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

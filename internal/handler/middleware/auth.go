package middleware

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"servicebook/internal/domain/user"
	"servicebook/internal/handler/httperr"
	"servicebook/internal/pkg/errs"
	"servicebook/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	verifier usecase.PrincipalVerifier
}

const (
	ctxIdentityKey = "identity"
	ctxClaimsKey   = "jwt_claims"

	HookTokenHeader = "X-Hook-Token"
)

var errHookToken = errors.New("invalid hook token")

func NewAuthMiddleware(verifier usecase.PrincipalVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
	}
}

// RequireAuth verifies the bearer token and resolves the caller's role
// from stored profiles. Callers without a profile get RoleUnknown.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		id, err := m.verifier.Verify(c.Request.Context(), token)
		if err != nil {
			if errs.KindOf(err) == errs.KindAuthentication {
				slog.Warn("Token validation failed in auth middleware", "error", err.Error())
				httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
				return
			}
			httperr.AbortWithKind(c, err)
			return
		}

		c.Set(ctxIdentityKey, id)
		c.Set(ctxClaimsKey, map[string]any{
			"user_id": id.UID,
			"role":    string(id.Role),
		})
		c.Next()
	}
}

// RequireHookToken guards the internal event hooks. An empty token
// disables them.
func RequireHookToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(HookTokenHeader)
		if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			httperr.AbortWithError(c, http.StatusUnauthorized, errHookToken, "Invalid hook token", nil)
			return
		}
		c.Next()
	}
}

func GetIdentity(c *gin.Context) (user.Identity, bool) {
	v, exists := c.Get(ctxIdentityKey)
	if !exists {
		return user.Identity{}, false
	}
	id, ok := v.(user.Identity)
	return id, ok
}

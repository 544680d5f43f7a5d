package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ecity-api/internal/auth"
	"ecity-api/internal/response"
)

// Context keys set by the auth middlewares
const (
	ContextKeyUserID   = "user_id"
	ContextKeyRole     = "user_role"
	ContextKeyEmail    = "user_email"
	ContextKeyIdentity = "identity"
)

// TokenParser verifies a bearer token and returns the caller it names
type TokenParser interface {
	Parse(token string) (auth.Identity, error)
}

// Auth requires a valid bearer token. A missing header is answered with 401,
// a malformed header or an invalid or expired token with 403.
func Auth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authorization header is required")
			return
		}
		if !authenticate(c, parser, header) {
			return
		}
		c.Next()
	}
}

// OptionalAuth attaches the caller when a token is sent and lets anonymous
// requests through. A token that is sent but invalid is still rejected.
func OptionalAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		if !authenticate(c, parser, header) {
			return
		}
		c.Next()
	}
}

// WSAuth is Auth for WebSocket upgrades. Browsers cannot set headers on the
// handshake, so the token may also come from the "token" query parameter.
func WSAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			if token := c.Query("token"); token != "" {
				header = "Bearer " + token
			}
		}
		if header == "" {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authorization token is required")
			return
		}
		if !authenticate(c, parser, header) {
			return
		}
		c.Next()
	}
}

// RequireAdmin must run after Auth
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := GetIdentity(c)
		if !ok {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
			return
		}
		if !id.IsAdmin() {
			response.SendError(c, http.StatusForbidden, response.ErrCodeForbidden, "Admin access required")
			return
		}
		c.Next()
	}
}

// GetIdentity returns the caller attached by Auth, OptionalAuth or WSAuth
func GetIdentity(c *gin.Context) (auth.Identity, bool) {
	v, exists := c.Get(ContextKeyIdentity)
	if !exists {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}

func authenticate(c *gin.Context, parser TokenParser, header string) bool {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		response.SendError(c, http.StatusForbidden, response.ErrCodeForbidden, "Invalid authorization header format")
		return false
	}

	id, err := parser.Parse(strings.TrimSpace(parts[1]))
	if err != nil {
		response.SendError(c, http.StatusForbidden, response.ErrCodeForbidden, "Invalid or expired token")
		return false
	}

	c.Set(ContextKeyIdentity, id)
	c.Set(ContextKeyUserID, id.UserID)
	c.Set(ContextKeyRole, string(id.Role))
	c.Set(ContextKeyEmail, id.Email)
	c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id))
	return true
}

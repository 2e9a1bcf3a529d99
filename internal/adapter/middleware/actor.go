package middleware

import (
	"net/http"
	"strings"

	"prestamos-backend/internal/domain/session"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const sessionKey = "actor-session"

// ActorClaims is the token payload: who is acting and with which role.
type ActorClaims struct {
	ActorID string `json:"actor_id"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// ActorSession authenticates the bearer token and stores an explicit
// session.Session on the request context. Every usecase receives the
// session as an argument; nothing reads login state ambiently.
func ActorSession(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
			if !strings.HasPrefix(raw, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			tokenStr := strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))

			var claims ActorClaims
			token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}
			role := session.Role(claims.Role)
			if claims.ActorID == "" || !role.Valid() {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "token missing actor identity"})
			}

			c.Set(sessionKey, session.Session{ActorID: claims.ActorID, Role: role})
			return next(c)
		}
	}
}

// SessionFrom returns the session placed on the context by ActorSession.
func SessionFrom(c echo.Context) (session.Session, bool) {
	s, ok := c.Get(sessionKey).(session.Session)
	return s, ok
}

// WithSession stores a session directly on the context, bypassing token
// parsing. Handler tests use it instead of forging tokens.
func WithSession(c echo.Context, s session.Session) { c.Set(sessionKey, s) }

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"prestamos-backend/internal/domain/session"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, secret []byte, claims ActorClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func actorClaims(actorID, role string) ActorClaims {
	return ActorClaims{
		ActorID: actorID,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func runActorSession(t *testing.T, authHeader string) (*httptest.ResponseRecorder, session.Session, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/loans", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var sess session.Session
	var got bool
	h := ActorSession(testSecret)(func(c echo.Context) error {
		sess, got = SessionFrom(c)
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	return rec, sess, got
}

func TestActorSession_ValidToken(t *testing.T) {
	actorID := strings.Repeat("e", 32)
	token := signToken(t, testSecret, actorClaims(actorID, "admin"))

	rec, sess, ok := runActorSession(t, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if !ok {
		t.Fatal("session not placed on context")
	}
	if sess.ActorID != actorID || sess.Role != session.RoleAdmin {
		t.Fatalf("session = %+v", sess)
	}
	if !sess.CanMutate() {
		t.Fatal("admin session must allow mutations")
	}
}

func TestActorSession_ViewerRole(t *testing.T) {
	token := signToken(t, testSecret, actorClaims(strings.Repeat("f", 32), "viewer"))

	rec, sess, ok := runActorSession(t, "Bearer "+token)
	if rec.Code != http.StatusOK || !ok {
		t.Fatalf("status = %d, ok = %v", rec.Code, ok)
	}
	if sess.Role != session.RoleViewer || sess.CanMutate() {
		t.Fatalf("session = %+v", sess)
	}
}

func TestActorSession_MissingHeader(t *testing.T) {
	rec, _, ok := runActorSession(t, "")
	if rec.Code != http.StatusUnauthorized || ok {
		t.Fatalf("status = %d, ok = %v, want 401 and no session", rec.Code, ok)
	}
}

func TestActorSession_WrongScheme(t *testing.T) {
	rec, _, ok := runActorSession(t, "Basic dXNlcjpwYXNz")
	if rec.Code != http.StatusUnauthorized || ok {
		t.Fatalf("status = %d, ok = %v, want 401", rec.Code, ok)
	}
}

func TestActorSession_BadSignature(t *testing.T) {
	token := signToken(t, []byte("other-secret"), actorClaims(strings.Repeat("e", 32), "admin"))
	rec, _, ok := runActorSession(t, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized || ok {
		t.Fatalf("status = %d, ok = %v, want 401", rec.Code, ok)
	}
}

func TestActorSession_ExpiredToken(t *testing.T) {
	claims := actorClaims(strings.Repeat("e", 32), "admin")
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	token := signToken(t, testSecret, claims)

	rec, _, ok := runActorSession(t, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized || ok {
		t.Fatalf("status = %d, ok = %v, want 401", rec.Code, ok)
	}
}

func TestActorSession_UnknownRole(t *testing.T) {
	token := signToken(t, testSecret, actorClaims(strings.Repeat("e", 32), "superuser"))
	rec, _, ok := runActorSession(t, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized || ok {
		t.Fatalf("status = %d, ok = %v, want 401", rec.Code, ok)
	}
}

func TestActorSession_MissingActorID(t *testing.T) {
	token := signToken(t, testSecret, actorClaims("", "admin"))
	rec, _, ok := runActorSession(t, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized || ok {
		t.Fatalf("status = %d, ok = %v, want 401", rec.Code, ok)
	}
}

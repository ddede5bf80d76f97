package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/catalogo/product-catalog-api/internal/core/domain"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, username, role string, method jwt.SigningMethod) string {
	t.Helper()
	claims := jwt.MapClaims{
		"username": username,
		"role":     role,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func invokeAuth(t *testing.T, header string) (*httptest.ResponseRecorder, echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(testSecret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, c, handler(c)
}

func TestAuth_ValidToken(t *testing.T) {
	token := signToken(t, testSecret, "alice", domain.RoleAdmin, jwt.SigningMethodHS256)

	rec, c, err := invokeAuth(t, "Bearer "+token)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if c.Get("username") != "alice" || c.Get("role") != domain.RoleAdmin {
		t.Fatalf("claims not injected: username=%v role=%v", c.Get("username"), c.Get("role"))
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	_, _, err := invokeAuth(t, "")
	assertHTTPError(t, err, http.StatusUnauthorized)
}

func TestAuth_MalformedHeader(t *testing.T) {
	_, _, err := invokeAuth(t, "Token abc")
	assertHTTPError(t, err, http.StatusUnauthorized)
}

func TestAuth_BadSignature(t *testing.T) {
	token := signToken(t, "other-secret", "alice", domain.RoleUser, jwt.SigningMethodHS256)

	_, _, err := invokeAuth(t, "Bearer "+token)
	assertHTTPError(t, err, http.StatusUnauthorized)
}

func TestAuth_ExpiredToken(t *testing.T) {
	claims := jwt.MapClaims{
		"username": "alice",
		"role":     domain.RoleUser,
		"exp":      time.Now().Add(-time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	_, _, invokeErr := invokeAuth(t, "Bearer "+token)
	assertHTTPError(t, invokeErr, http.StatusUnauthorized)
}

func TestAuth_RejectsUnknownRoleClaim(t *testing.T) {
	token := signToken(t, testSecret, "alice", "superuser", jwt.SigningMethodHS256)

	_, _, err := invokeAuth(t, "Bearer "+token)
	assertHTTPError(t, err, http.StatusUnauthorized)
}

func TestAuth_RejectsUnexpectedAlgorithm(t *testing.T) {
	token := signToken(t, testSecret, "alice", domain.RoleUser, jwt.SigningMethodHS512)

	_, _, err := invokeAuth(t, "Bearer "+token)
	assertHTTPError(t, err, http.StatusUnauthorized)
}

func assertHTTPError(t *testing.T, err error, status int) {
	t.Helper()
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if httpErr.Code != status {
		t.Fatalf("expected status %d, got %d", status, httpErr.Code)
	}
}

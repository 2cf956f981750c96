package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wanderlust/middleware"

	"github.com/golang-jwt/jwt/v5"
)

func TestLogoutUsesInjectedVerifier(t *testing.T) {
	secret := []byte("test_secret")
	h := &Handler{Auth: middleware.NewAuth(secret), Secret: secret}

	claims := &middleware.Claims{
		Username: "priya",
		UserID:   "u123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	h.Logout(w, req, nil)
	if w.Code != http.StatusOK {
		t.Errorf("valid token: status = %d, want 200", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	h.Logout(w, req, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: status = %d, want 401", w.Code)
	}
}

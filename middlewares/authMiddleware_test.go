package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	helper "github.com/RootDr0id/food-delivery-app-backend/helper"
)

func protectedHandler(t *testing.T, wantUID string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _, uid := GetUserFromContext(r)
		if uid != wantUID {
			t.Errorf("uid in context = %q, want %q", uid, wantUID)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticationAcceptsBearerToken(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	token, _, err := helper.GenerateAllTokens("jo@example.com", "Jo", "user1")
	if err != nil {
		t.Fatalf("GenerateAllTokens returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	Authentication(protectedHandler(t, "user1")).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestAuthenticationRejects(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no bearer prefix", "token abc"},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				t.Error("handler reached without valid token")
			})
			Authentication(next).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

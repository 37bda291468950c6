package helper

import (
	"testing"
)

func TestGenerateAndValidateToken(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	token, refreshToken, err := GenerateAllTokens("jo@example.com", "Jo", "user1")
	if err != nil {
		t.Fatalf("GenerateAllTokens returned error: %v", err)
	}
	if token == "" || refreshToken == "" {
		t.Fatal("empty token returned")
	}

	claims, errMsg := ValidateToken(token)
	if errMsg != "" {
		t.Fatalf("ValidateToken rejected fresh token: %s", errMsg)
	}
	if claims.Email != "jo@example.com" || claims.Name != "Jo" || claims.Uid != "user1" {
		t.Errorf("claims = %+v, want the values the token was issued with", claims)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	token, _, err := GenerateAllTokens("jo@example.com", "Jo", "user1")
	if err != nil {
		t.Fatalf("GenerateAllTokens returned error: %v", err)
	}

	t.Setenv("SECRET_KEY", "different-secret")
	if _, errMsg := ValidateToken(token); errMsg == "" {
		t.Error("token signed with another secret was accepted")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	if _, errMsg := ValidateToken("not-a-jwt"); errMsg == "" {
		t.Error("garbage token was accepted")
	}
}

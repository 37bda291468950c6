package helper

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type SignedDetails struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Uid   string `json:"uid"`
	jwt.RegisteredClaims
}

func secretKey() []byte {
	return []byte(os.Getenv("SECRET_KEY"))
}

// GenerateAllTokens creates JWT and refresh tokens
func GenerateAllTokens(email, name, uid string) (signedToken string, signedRefreshToken string, err error) {
	claims := &SignedDetails{
		Email: email,
		Name:  name,
		Uid:   uid,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)), // 24 hours expiration
		},
	}

	refreshClaims := &SignedDetails{
		Uid: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(168 * time.Hour)), // 7 days expiration
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err = token.SignedString(secretKey())
	if err != nil {
		return "", "", err
	}

	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	signedRefreshToken, err = refreshToken.SignedString(secretKey())
	if err != nil {
		return "", "", err
	}

	return signedToken, signedRefreshToken, nil
}

// ValidateToken checks if a JWT is valid and not expired
func ValidateToken(signedToken string) (*SignedDetails, string) {
	token, err := jwt.ParseWithClaims(
		signedToken,
		&SignedDetails{},
		func(token *jwt.Token) (interface{}, error) {
			return secretKey(), nil
		},
	)

	if err != nil {
		return nil, fmt.Sprintf("token parsing error: %v", err)
	}

	claims, ok := token.Claims.(*SignedDetails)
	if !ok || !token.Valid {
		return nil, "the token is invalid"
	}

	if claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, "token is expired"
	}

	return claims, ""
}

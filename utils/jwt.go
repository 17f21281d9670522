package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken issues a signed session token carrying the user id and role.
func GenerateToken(userID, role, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   userID,
		"role": role,
		"exp":  time.Now().Add(30 * 24 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// GenerateResetToken issues a short-lived token for password reset links.
// The purpose claim keeps it from doubling as a session token.
func GenerateResetToken(userID, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":      userID,
		"purpose": "reset",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	return token.SignedString([]byte(secret))
}

func parseClaims(tokenString, secret string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	if id, _ := claims["id"].(string); id == "" {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// VerifyToken validates a session token and returns the user id and role
// claims. Single-purpose tokens (password reset) are rejected.
func VerifyToken(tokenString, secret string) (string, string, error) {
	claims, err := parseClaims(tokenString, secret)
	if err != nil {
		return "", "", err
	}
	if purpose, _ := claims["purpose"].(string); purpose != "" {
		return "", "", errors.New("invalid or expired token")
	}
	id, _ := claims["id"].(string)
	role, _ := claims["role"].(string)
	return id, role, nil
}

// VerifyResetToken validates a password reset token and returns the user id.
func VerifyResetToken(tokenString, secret string) (string, error) {
	claims, err := parseClaims(tokenString, secret)
	if err != nil {
		return "", err
	}
	if purpose, _ := claims["purpose"].(string); purpose != "reset" {
		return "", errors.New("invalid or expired token")
	}
	id, _ := claims["id"].(string)
	return id, nil
}

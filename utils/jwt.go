package utils

import (
	"errors"
	"time"

	"lengolf/config"

	"github.com/golang-jwt/jwt"
)

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "LENGOLF"
	}
	return []byte(secret)
}

// GenerateStaffToken creates a signed JWT for a staff member. Used by the
// identity bootstrap CLI and by tests; the server itself only validates.
func GenerateStaffToken(staffID, displayName string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  staffID,
		"name": displayName,
		"role": "staff",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ExtractStaffFromToken returns the staff ID (subject) and display name from a
// valid token string.
func ExtractStaffFromToken(tokenString string) (string, string, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return "", "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", "", errors.New("token missing subject")
	}
	name, _ := claims["name"].(string)
	return sub, name, nil
}

package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims — полезная нагрузка access-токена админки.
type Claims struct {
	UserID string
	Role   string
}

// GenerateToken создаёт access-токен HS256.
func GenerateToken(secret, userID, role string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":    userID,
		"role":       role,
		"token_type": "access",
		"exp":        now.Add(duration).Unix(),
		"iat":        now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken проверяет подпись, срок и тип токена.
func ParseToken(secret, tokenString string) (Claims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, ok1 := claims["user_id"].(string)
	role, ok2 := claims["role"].(string)
	typ, _ := claims["token_type"].(string)
	if !ok1 || !ok2 || userID == "" || typ != "access" {
		return Claims{}, fmt.Errorf("%w: недопустимый payload", ErrInvalidToken)
	}
	return Claims{UserID: userID, Role: role}, nil
}

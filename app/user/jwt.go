package user

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// Claims - a struct that will be encoded to JWT
type Claims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

// JWTToken - JWT Token
type JWTToken struct {
	Value     string
	ExpiresAt time.Time
}

func createJWTToken(userID, role string, tokenExpiration time.Duration, jwtKey string) (*JWTToken, error) {
	expirationTime := time.Now().Add(tokenExpiration * time.Hour)
	claims := &Claims{
		UserID: userID,
		Role:   role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(jwtKey))
	if err != nil {
		return nil, err
	}
	return &JWTToken{
		Value:     tokenString,
		ExpiresAt: expirationTime,
	}, nil
}

func fetchJWTToken(tokenStr string, jwtKey string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("the JWT Token is invalid")
	}

	return claims, nil
}

// isExpired reports whether err came from an expired token
func isExpired(err error) bool {
	verr, ok := err.(*jwt.ValidationError)
	return ok && verr.Errors&jwt.ValidationErrorExpired != 0
}

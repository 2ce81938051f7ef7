package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/LordArcquedor/Evnt/internal/auth/service TokenGenerator

import (
	"fmt"
	"time"

	autherror "github.com/LordArcquedor/Evnt/internal/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenGenerator is the token issuer port: it turns a verified pseudo into
// signed bearer evidence with a bounded lifetime.
type TokenGenerator interface {
	Generate(pseudo string) (string, time.Time, error)
	Verify(tokenString string) (*JWTCustomClaims, error)
	GetAccessTokenExpiry() time.Duration
}

type TokenService struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
}

type JWTCustomClaims struct {
	jwt.RegisteredClaims
	Pseudo string `json:"pseudo"`
}

func NewTokenService(accessSecret string, accessMinutes int) *TokenService {
	return &TokenService{
		AccessTokenSecret: accessSecret,
		AccessTokenExpiry: time.Duration(accessMinutes) * time.Minute,
	}
}

func (ts *TokenService) Generate(pseudo string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ts.AccessTokenExpiry)

	claims := JWTCustomClaims{
		Pseudo: pseudo,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   pseudo,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.AccessTokenSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

func (ts *TokenService) GetAccessTokenExpiry() time.Duration {
	return ts.AccessTokenExpiry
}

// Verify parses and validates the given token string.
func (ts *TokenService) Verify(tokenString string) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.AccessTokenSecret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, autherror.ErrInvalidToken
	}

	return claims, nil
}

package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAuthenticationFailed = errors.New("authentication failed: invalid password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
	ErrInvalidToken         = errors.New("invalid token")
	ErrTokenExpired         = errors.New("token has expired")
)

const (
	tokenIssuer     = "trainerpro"
	operatorSubject = "operator"
)

// AuthService guards the console with a single operator password.
type AuthService interface {
	Login(password string) (token string, expiresAt time.Time, err error)
	ParseToken(token string) (*ConsoleClaims, error)
}

// ConsoleClaims is the JWT payload issued to the operator.
type ConsoleClaims struct {
	jwt.RegisteredClaims
}

type authService struct {
	passwordHash  []byte
	jwtSecret     []byte
	jwtExpiration time.Duration
	now           Clock
}

func NewAuthService(passwordHash, jwtSecret string, jwtExpiration time.Duration, now Clock) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty")
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 12 * time.Hour
	}
	if now == nil {
		now = time.Now
	}
	return &authService{
		passwordHash:  []byte(passwordHash),
		jwtSecret:     []byte(jwtSecret),
		jwtExpiration: jwtExpiration,
		now:           now,
	}
}

func (s *authService) Login(password string) (string, time.Time, error) {
	if password == "" {
		return "", time.Time{}, ErrAuthenticationFailed
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", time.Time{}, ErrAuthenticationFailed
	}

	issued := s.now()
	expiresAt := issued.Add(s.jwtExpiration)
	claims := &ConsoleClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   operatorSubject,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, ErrTokenGeneration
	}
	return signed, expiresAt, nil
}

func (s *authService) ParseToken(tokenString string) (*ConsoleClaims, error) {
	claims := &ConsoleClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject != operatorSubject || claims.Issuer != tokenIssuer {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

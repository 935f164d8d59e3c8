package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrBadCredentials is returned for any username/password mismatch.
var ErrBadCredentials = errors.New("auth: invalid credentials")

const operatorRole = "operator"

// AuthService checks the single configured operator account and issues
// tokens for it. The password is hashed at startup so the plaintext never
// sits in memory longer than construction.
type AuthService struct {
	username     string
	passwordHash []byte
	tokens       *TokenService
}

// NewAuthService hashes the configured password and returns the service.
func NewAuthService(username, password string, tokens *TokenService) (*AuthService, error) {
	if username == "" || password == "" {
		return nil, errors.New("auth: operator username and password required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &AuthService{username: username, passwordHash: hash, tokens: tokens}, nil
}

// Login validates credentials and returns a signed token.
func (s *AuthService) Login(username, password string) (string, error) {
	if username != s.username {
		return "", ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", ErrBadCredentials
	}
	return s.tokens.GenerateToken(username, operatorRole)
}

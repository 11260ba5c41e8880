package domain

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/Vovarama1992/visus/internal/ports"
	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	username string
	password string
	hashed   bool
}

// NewAuthService checks credentials against a single configured
// administrator. password may be a bcrypt hash ("$2a$…", "$2b$…", "$2y$…").
func NewAuthService(username, password string) ports.AuthService {
	return &authService{
		username: username,
		password: password,
		hashed:   isBcryptHash(password),
	}
}

func isBcryptHash(s string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func (s *authService) Authenticate(_ context.Context, username, password string) bool {
	if username == "" || password == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1

	var passOK bool
	if s.hashed {
		passOK = bcrypt.CompareHashAndPassword([]byte(s.password), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	}
	return userOK && passOK
}

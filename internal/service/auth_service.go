package service

import (
	"strings"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"github.com/dcastano/evalia/internal/dto"
	"github.com/dcastano/evalia/internal/repository"
	"github.com/dcastano/evalia/internal/session"
)

type AuthService interface {
	Login(username, password string) (*dto.LoginResponse, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *session.TokenManager
}

func NewAuthService(users repository.UserRepository, tokens *session.TokenManager) AuthService {
	return &authService{users: users, tokens: tokens}
}

// Login matches the opaque credential against the users collection and issues
// a session token for the sanitized user.
func (s *authService) Login(username, password string) (*dto.LoginResponse, error) {
	uname := strings.TrimSpace(username)
	pword := strings.TrimSpace(password)
	if uname == "" || pword == "" {
		return nil, reject(CodeInvalidCredentials, "username and password are required")
	}

	user, ok := s.users.GetByUsername(uname)
	if !ok || user.Password != pword {
		log.Warn().Str("username", uname).Msg("login: invalid credentials")
		return nil, reject(CodeInvalidCredentials, "invalid credentials")
	}

	safe := user.Sanitized()
	token, err := s.tokens.Issue(safe)
	if err != nil {
		return nil, err
	}

	var resp dto.LoginResponse
	resp.Token = token
	if err := copier.Copy(&resp.User, &safe); err != nil {
		return nil, err
	}
	log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("login: session issued")
	return &resp, nil
}

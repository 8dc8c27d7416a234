package service

import (
	"context"
	"time"

	"github.com/ReshmithaBathala/bookingbackend/database/model"
)

// AuthService covers registration and login on top of the credential store
// and the token service.
type AuthService struct {
	users  *UserService
	tokens *TokenService
}

func NewAuthService(users *UserService, tokens *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

func (s *AuthService) Register(ctx context.Context, username, password string, role model.Role) (*model.User, error) {
	return s.users.Register(ctx, username, password, role)
}

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *model.User
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	u, err := s.users.CheckUser(ctx, username, password)
	if err != nil {
		return nil, err
	}
	token, exp, err := s.tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: exp, User: u}, nil
}

package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/ReshmithaBathala/bookingbackend/database"
	"github.com/ReshmithaBathala/bookingbackend/database/model"
	"github.com/ReshmithaBathala/bookingbackend/util/crypto"

	"gorm.io/gorm"
)

// UserService is the credential store.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register stores username with a bcrypt hash of password. An empty role
// defaults to RoleUser.
func (s *UserService) Register(ctx context.Context, username, password string, role model.Role) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}
	if role == "" {
		role = model.RoleUser
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return nil, ErrInvalidInput
	}

	u := &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		if database.IsDuplicate(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	u := &model.User{}
	err := s.db.WithContext(ctx).
		Where("username = ?", strings.TrimSpace(username)).
		First(u).
		Error
	if database.IsNotFound(err) {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, err
	}
	return u, nil
}

// CheckUser returns the user when password matches. Unknown users and wrong
// passwords are indistinguishable to the caller.
func (s *UserService) CheckUser(ctx context.Context, username, password string) (*model.User, error) {
	u, err := s.FindByUsername(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		// burn the same bcrypt work so response time does not reveal usernames
		crypto.CheckPasswordHash(dummyPasswordHash(), password)
		return nil, ErrInvalidCredentials
	} else if err != nil {
		return nil, err
	}
	if !crypto.CheckPasswordHash(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

func dummyPasswordHash() string {
	dummyHashOnce.Do(func() {
		dummyHash, _ = crypto.HashPasswordAsBcrypt("not-a-real-password")
	})
	return dummyHash
}

// Package services holds the pizza store's operations. Each operation takes
// the caller's session explicitly and checks it before touching the store.
package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"pizzastore/errs"
	"pizzastore/models"
	"pizzastore/repository"
	"pizzastore/session"
	"pizzastore/validation"

	"golang.org/x/crypto/bcrypt"
)

// MaxLoginAttempts caps the credential prompts of one log-in dialog.
const MaxLoginAttempts = 3

// HashCost is the bcrypt cost for stored passwords.
var HashCost = bcrypt.DefaultCost

type AuthService struct {
	repo *repository.Repository
}

func NewAuthService(repo *repository.Repository) *AuthService {
	return &AuthService{repo: repo}
}

// CheckLoginAvailable rejects a login that is malformed or already taken.
func (s *AuthService) CheckLoginAvailable(ctx context.Context, login string) error {
	if err := validation.Login(login); err != nil {
		return err
	}
	exists, err := s.repo.LoginExists(ctx, login)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", errs.ErrDuplicateLogin, login)
	}
	return nil
}

// Register creates a customer account with no favorite items
func (s *AuthService) Register(ctx context.Context, login, password, phone string) error {
	if err := validation.CheckAccount(validation.Account{Login: login, Password: password, PhoneNum: phone}); err != nil {
		return err
	}
	if err := s.CheckLoginAvailable(ctx, login); err != nil {
		return err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	err = s.repo.CreateUser(ctx, models.User{
		Login:    login,
		Password: hash,
		Role:     models.RoleCustomer,
		PhoneNum: phone,
	})
	if errors.Is(err, errs.ErrDuplicateKey) {
		return fmt.Errorf("%w: %s", errs.ErrDuplicateLogin, login)
	}
	return err
}

// Authenticate checks one (login, password) pair and returns the stored role.
func (s *AuthService) Authenticate(ctx context.Context, login, password string) (models.UserRole, error) {
	stored, role, err := s.repo.Credentials(ctx, login)
	if errors.Is(err, errs.ErrNotFound) {
		return "", errs.ErrAuthFailure
	}
	if err != nil {
		return "", err
	}
	if !VerifyPassword(stored, password) {
		return "", errs.ErrAuthFailure
	}
	return role, nil
}

// LogIn authenticates and binds the session to the login on success.
func (s *AuthService) LogIn(ctx context.Context, sess *session.Session, login, password string) (models.UserRole, error) {
	role, err := s.Authenticate(ctx, login, password)
	if err != nil {
		return "", err
	}
	if err := sess.Start(login, role); err != nil {
		return "", err
	}
	return role, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares against a bcrypt hash, or against the literal text
// for rows written before passwords were hashed. Trailing blanks from padded
// char(n) columns are not part of the password.
func VerifyPassword(stored, given string) bool {
	stored = strings.TrimRight(stored, " ")
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}

func isBcryptHash(s string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

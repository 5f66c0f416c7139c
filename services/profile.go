package services

import (
	"context"

	"pizzastore/models"
	"pizzastore/repository"
	"pizzastore/session"
	"pizzastore/validation"
)

type ProfileService struct {
	repo *repository.Repository
}

func NewProfileService(repo *repository.Repository) *ProfileService {
	return &ProfileService{repo: repo}
}

// View returns the caller's own users row
func (s *ProfileService) View(ctx context.Context, sess *session.Session) (models.User, error) {
	if _, err := sess.Authorize(ctx, s.repo); err != nil {
		return models.User{}, err
	}
	return s.repo.Profile(ctx, sess.Login())
}

func (s *ProfileService) UpdateFavorites(ctx context.Context, sess *session.Session, favorites string) error {
	return s.update(ctx, sess, repository.FieldFavoriteItems, favorites)
}

func (s *ProfileService) UpdatePhone(ctx context.Context, sess *session.Session, phone string) error {
	if err := validation.Phone(phone); err != nil {
		return err
	}
	return s.update(ctx, sess, repository.FieldPhoneNum, phone)
}

// UpdatePassword stores the new password hashed.
func (s *ProfileService) UpdatePassword(ctx context.Context, sess *session.Session, password string) error {
	if err := validation.Password(password); err != nil {
		return err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	return s.update(ctx, sess, repository.FieldPassword, hash)
}

func (s *ProfileService) update(ctx context.Context, sess *session.Session, field repository.ProfileField, value string) error {
	if _, err := sess.Authorize(ctx, s.repo); err != nil {
		return err
	}
	return s.repo.UpdateProfileField(ctx, sess.Login(), field, value)
}

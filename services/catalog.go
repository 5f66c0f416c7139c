package services

import (
	"context"
	"io"

	"pizzastore/models"
	"pizzastore/repository"
	"pizzastore/session"
)

// CatalogService browses the menu and the store list.
type CatalogService struct {
	repo *repository.Repository
}

func NewCatalogService(repo *repository.Repository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) Menu(ctx context.Context, sess *session.Session, q repository.MenuQuery) ([]repository.MenuRow, error) {
	if _, err := sess.Require(); err != nil {
		return nil, err
	}
	return s.repo.Menu(ctx, q)
}

// Stores lists every store ordered by ID
func (s *CatalogService) Stores(ctx context.Context, sess *session.Session) ([]models.Store, error) {
	if _, err := sess.Require(); err != nil {
		return nil, err
	}
	return s.repo.Stores(ctx)
}

// PrintStores writes store IDs and addresses for the order dialog.
func (s *CatalogService) PrintStores(ctx context.Context, sess *session.Session, w io.Writer) (int, error) {
	if _, err := sess.Require(); err != nil {
		return 0, err
	}
	return s.repo.PrintStores(ctx, w)
}

// PrintPrices writes every item with its price for the order dialog.
func (s *CatalogService) PrintPrices(ctx context.Context, sess *session.Session, w io.Writer) (int, error) {
	if _, err := sess.Require(); err != nil {
		return 0, err
	}
	return s.repo.PrintMenu(ctx, w)
}

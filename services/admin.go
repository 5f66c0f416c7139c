package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"pizzastore/errs"
	"pizzastore/models"
	"pizzastore/repository"
	"pizzastore/session"
	"pizzastore/statemachine"
	"pizzastore/validation"
)

// Roles allowed to run each group of privileged operations.
var (
	StatusRoles = []models.UserRole{models.RoleManager, models.RoleDriver}
	ManagerOnly = []models.UserRole{models.RoleManager}
)

// NewItem is a menu entry as typed by a manager.
type NewItem struct {
	Name        string
	Ingredients string
	Type        string
	Price       string
	Description string
}

// StatusChange reports an applied order status update.
type StatusChange struct {
	OrderID int
	From    models.OrderStatus
	To      models.OrderStatus
}

// AdminService holds the role-gated operations. Every operation probes the
// caller's role from the store before reading or writing anything.
type AdminService struct {
	repo *repository.Repository
}

func NewAdminService(repo *repository.Repository) *AdminService {
	return &AdminService{repo: repo}
}

// ── Order status ───────────────────────────────────────────────

// PrintOrders writes the overview of every order (manager, driver).
func (s *AdminService) PrintOrders(ctx context.Context, sess *session.Session, w io.Writer) (int, error) {
	if _, err := sess.Authorize(ctx, s.repo, StatusRoles...); err != nil {
		return 0, err
	}
	return s.repo.PrintOrders(ctx, w)
}

// Order looks up an order to update (manager, driver)
func (s *AdminService) Order(ctx context.Context, sess *session.Session, orderID int) (repository.OrderDetail, error) {
	if _, err := sess.Authorize(ctx, s.repo, StatusRoles...); err != nil {
		return repository.OrderDetail{}, err
	}
	return s.repo.Order(ctx, orderID, "")
}

// UpdateOrderStatus moves an order to the status typed by the caller when
// the caller's live role may take that transition.
func (s *AdminService) UpdateOrderStatus(ctx context.Context, sess *session.Session, orderID int, rawStatus string) (StatusChange, error) {
	role, err := sess.Authorize(ctx, s.repo, StatusRoles...)
	if err != nil {
		return StatusChange{}, err
	}
	to, err := validation.ParseStatus(rawStatus)
	if err != nil {
		return StatusChange{}, err
	}
	order, err := s.repo.Order(ctx, orderID, "")
	if err != nil {
		return StatusChange{}, err
	}
	if err := statemachine.CanTransition(order.Status, to, role); err != nil {
		return StatusChange{}, err
	}
	if err := s.repo.SetOrderStatus(ctx, orderID, order.Status, to); err != nil {
		return StatusChange{}, err
	}
	return StatusChange{OrderID: orderID, From: order.Status, To: to}, nil
}

// ── Menu ───────────────────────────────────────────────────────

// AuthorizeMenu is the entry check of the menu management dialog.
func (s *AdminService) AuthorizeMenu(ctx context.Context, sess *session.Session) error {
	_, err := sess.Authorize(ctx, s.repo, ManagerOnly...)
	return err
}

func (s *AdminService) PrintMenu(ctx context.Context, sess *session.Session, w io.Writer) (int, error) {
	if err := s.AuthorizeMenu(ctx, sess); err != nil {
		return 0, err
	}
	return s.repo.PrintMenuDetails(ctx, w)
}

// RequireItem fails with ErrNotFound unless the item is on the menu.
func (s *AdminService) RequireItem(ctx context.Context, sess *session.Session, name string) error {
	if err := s.AuthorizeMenu(ctx, sess); err != nil {
		return err
	}
	exists, err := s.repo.ItemExists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("item %q: %w", name, errs.ErrNotFound)
	}
	return nil
}

func (s *AdminService) UpdateItemPrice(ctx context.Context, sess *session.Session, name, rawPrice string) error {
	if err := s.AuthorizeMenu(ctx, sess); err != nil {
		return err
	}
	price, err := validation.ParsePrice(rawPrice)
	if err != nil {
		return err
	}
	return s.repo.UpdateItem(ctx, name, repository.FieldPrice, price)
}

// UpdateItemText changes the ingredients or the description of an item.
func (s *AdminService) UpdateItemText(ctx context.Context, sess *session.Session, name string, field repository.ItemField, value string) error {
	if err := s.AuthorizeMenu(ctx, sess); err != nil {
		return err
	}
	if field == repository.FieldPrice {
		return s.UpdateItemPrice(ctx, sess, name, value)
	}
	return s.repo.UpdateItem(ctx, name, field, value)
}

// RequireNewItem fails with ErrDuplicateItem when the name is taken.
func (s *AdminService) RequireNewItem(ctx context.Context, sess *session.Session, name string) error {
	if err := s.AuthorizeMenu(ctx, sess); err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("%w: item name is required", errs.ErrInputParse)
	}
	exists, err := s.repo.ItemExists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", errs.ErrDuplicateItem, name)
	}
	return nil
}

func (s *AdminService) AddItem(ctx context.Context, sess *session.Session, item NewItem) error {
	if err := s.RequireNewItem(ctx, sess, item.Name); err != nil {
		return err
	}
	itemType, err := validation.ParseItemType(item.Type)
	if err != nil {
		return err
	}
	price, err := validation.ParsePrice(item.Price)
	if err != nil {
		return err
	}
	err = s.repo.AddItem(ctx, models.Item{
		ItemName:    item.Name,
		Ingredients: item.Ingredients,
		TypeOfItem:  itemType,
		Description: item.Description,
	}, price)
	if errors.Is(err, errs.ErrDuplicateKey) {
		return fmt.Errorf("%w: %s", errs.ErrDuplicateItem, item.Name)
	}
	return err
}

// ── Users ──────────────────────────────────────────────────────

// AuthorizeUsers is the entry check of the user management dialog.
func (s *AdminService) AuthorizeUsers(ctx context.Context, sess *session.Session) error {
	_, err := sess.Authorize(ctx, s.repo, ManagerOnly...)
	return err
}

func (s *AdminService) PrintUsers(ctx context.Context, sess *session.Session, w io.Writer) (int, error) {
	if err := s.AuthorizeUsers(ctx, sess); err != nil {
		return 0, err
	}
	return s.repo.PrintUsers(ctx, w)
}

// RequireUser fails with ErrNotFound unless login exists.
func (s *AdminService) RequireUser(ctx context.Context, sess *session.Session, login string) error {
	if err := s.AuthorizeUsers(ctx, sess); err != nil {
		return err
	}
	exists, err := s.repo.LoginExists(ctx, login)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("user %q: %w", login, errs.ErrNotFound)
	}
	return nil
}

// RenameUser changes a login ID. Renaming the caller rebinds the session.
func (s *AdminService) RenameUser(ctx context.Context, sess *session.Session, oldLogin, newLogin string) error {
	if err := s.RequireUser(ctx, sess, oldLogin); err != nil {
		return err
	}
	if err := validation.Login(newLogin); err != nil {
		return err
	}
	exists, err := s.repo.LoginExists(ctx, newLogin)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", errs.ErrDuplicateLogin, newLogin)
	}
	err = s.repo.RenameUser(ctx, oldLogin, newLogin)
	if errors.Is(err, errs.ErrDuplicateKey) {
		return fmt.Errorf("%w: %s", errs.ErrDuplicateLogin, newLogin)
	}
	if err != nil {
		return err
	}
	if sess.Login() == oldLogin {
		return sess.Rename(newLogin)
	}
	return nil
}

// ChangeRole assigns a role. changed is false when the user already had it.
func (s *AdminService) ChangeRole(ctx context.Context, sess *session.Session, login, rawRole string) (role models.UserRole, changed bool, err error) {
	if err := s.AuthorizeUsers(ctx, sess); err != nil {
		return "", false, err
	}
	role, err = validation.ParseRole(rawRole)
	if err != nil {
		return "", false, err
	}
	current, err := s.repo.RoleOf(ctx, login)
	if err != nil {
		return "", false, err
	}
	if current == role {
		return role, false, nil
	}
	if err := s.repo.SetRole(ctx, login, role); err != nil {
		return "", false, err
	}
	return role, true, nil
}

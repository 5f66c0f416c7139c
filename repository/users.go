package repository

import (
	"context"
	"fmt"
	"io"
	"strings"

	"pizzastore/errs"
	"pizzastore/models"
)

// ProfileField is a users column a customer may change on their own row.
type ProfileField string

const (
	FieldFavoriteItems ProfileField = "favoriteitems"
	FieldPhoneNum      ProfileField = "phonenum"
	FieldPassword      ProfileField = "password"
)

func (r *Repository) LoginExists(ctx context.Context, login string) (bool, error) {
	n, err := r.count(ctx, `SELECT COUNT(*) FROM users WHERE login = ?`, login)
	return n > 0, err
}

func (r *Repository) CreateUser(ctx context.Context, u models.User) error {
	_, err := r.gw.Exec(ctx,
		`INSERT INTO users (login, password, role, favoriteitems, phonenum) VALUES (?, ?, ?, ?, ?)`,
		u.Login, u.Password, string(u.Role), u.FavoriteItems, u.PhoneNum)
	return classify(err)
}

// Credentials returns the stored password and role for login, or
// errs.ErrNotFound.
func (r *Repository) Credentials(ctx context.Context, login string) (string, models.UserRole, error) {
	rows, err := r.gw.Rows(ctx, `SELECT password, role FROM users WHERE login = ?`, login)
	if err != nil {
		return "", "", err
	}
	if len(rows) == 0 {
		return "", "", errs.ErrNotFound
	}
	return rows[0][0], models.NormalizeRole(rows[0][1]), nil
}

// RoleOf is the live role probe.
func (r *Repository) RoleOf(ctx context.Context, login string) (models.UserRole, error) {
	rows, err := r.gw.Rows(ctx, `SELECT role FROM users WHERE login = ?`, login)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("user %q: %w", login, errs.ErrNotFound)
	}
	return models.NormalizeRole(rows[0][0]), nil
}

func (r *Repository) Profile(ctx context.Context, login string) (models.User, error) {
	rows, err := r.gw.Rows(ctx, `SELECT login, role, favoriteitems, phonenum FROM users WHERE login = ?`, login)
	if err != nil {
		return models.User{}, err
	}
	if len(rows) == 0 {
		return models.User{}, fmt.Errorf("user %q: %w", login, errs.ErrNotFound)
	}
	row := rows[0]
	return models.User{
		Login:         row[0],
		Role:          models.NormalizeRole(row[1]),
		FavoriteItems: strings.TrimRight(row[2], " "),
		PhoneNum:      strings.TrimRight(row[3], " "),
	}, nil
}

func (r *Repository) UpdateProfileField(ctx context.Context, login string, field ProfileField, value string) error {
	switch field {
	case FieldFavoriteItems, FieldPhoneNum, FieldPassword:
	default:
		return fmt.Errorf("unknown profile field %q", field)
	}
	n, err := r.gw.Exec(ctx, `UPDATE users SET `+string(field)+` = ? WHERE login = ?`, value, login)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("user %q: %w", login, errs.ErrNotFound)
	}
	return nil
}

func (r *Repository) PrintUsers(ctx context.Context, w io.Writer) (int, error) {
	return r.gw.Print(ctx, w, `SELECT login, role, phonenum, favoriteitems FROM users ORDER BY login`)
}

func (r *Repository) RenameUser(ctx context.Context, oldLogin, newLogin string) error {
	n, err := r.gw.Exec(ctx, `UPDATE users SET login = ? WHERE login = ?`, newLogin, oldLogin)
	if err != nil {
		return classify(err)
	}
	if n == 0 {
		return fmt.Errorf("user %q: %w", oldLogin, errs.ErrNotFound)
	}
	return nil
}

func (r *Repository) SetRole(ctx context.Context, login string, role models.UserRole) error {
	n, err := r.gw.Exec(ctx, `UPDATE users SET role = ? WHERE login = ?`, string(role), login)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("user %q: %w", login, errs.ErrNotFound)
	}
	return nil
}

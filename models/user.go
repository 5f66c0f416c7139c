package models

import "strings"

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleDriver   UserRole = "driver"
	RoleManager  UserRole = "manager"
)

// Roles lists every role in the order menus present them.
var Roles = []UserRole{RoleCustomer, RoleDriver, RoleManager}

// NormalizeRole maps a stored role string onto a UserRole. The column is
// padded and mixed case in older databases, so comparison is case-insensitive.
func NormalizeRole(raw string) UserRole {
	return UserRole(strings.ToLower(strings.TrimSpace(raw)))
}

// Privileged reports whether the role may see every customer's orders.
func (r UserRole) Privileged() bool {
	return r == RoleDriver || r == RoleManager
}

func (r UserRole) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

type User struct {
	Login         string   `gorm:"column:login;primaryKey;size:50"`
	Password      string   `gorm:"column:password;not null"`
	Role          UserRole `gorm:"column:role;not null;default:'customer'"`
	FavoriteItems string   `gorm:"column:favoriteitems"`
	PhoneNum      string   `gorm:"column:phonenum;size:20"`
}

func (User) TableName() string { return "users" }

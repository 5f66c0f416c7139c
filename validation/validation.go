// Package validation holds the field rules shared by the account, menu and
// order dialogs.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"pizzastore/errs"
	"pizzastore/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	MinPasswordLen = 6
	MaxLoginLen    = 50
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// The built-in numeric tag accepts signs and decimals, so phone numbers
	// get their own rule.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("trimmed", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return strings.TrimSpace(s) == s
	})
	return v
}

// Account mirrors the user-supplied columns of a users row.
type Account struct {
	Login    string `validate:"required,max=50,trimmed"`
	Password string `validate:"min=6"`
	PhoneNum string `validate:"phone"`
}

// CheckAccount validates a new account and reports the first failing field
// as its error kind.
func CheckAccount(a Account) error {
	err := validate.Struct(a)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		switch fieldErrs[0].Field() {
		case "Login":
			return errs.ErrBadLogin
		case "Password":
			return errs.ErrWeakPassword
		case "PhoneNum":
			return errs.ErrBadPhone
		}
	}
	return err
}

func Login(login string) error {
	if validate.Var(login, "required,max=50,trimmed") != nil {
		return errs.ErrBadLogin
	}
	return nil
}

func Password(password string) error {
	if validate.Var(password, "min=6") != nil {
		return errs.ErrWeakPassword
	}
	return nil
}

func Phone(phone string) error {
	if validate.Var(phone, "phone") != nil {
		return errs.ErrBadPhone
	}
	return nil
}

// MaxPrice is the exclusive upper bound for menu prices and price filters.
var MaxPrice = decimal.NewFromInt(1_000_000)

// ParsePrice accepts a non-negative decimal literal below MaxPrice.
func ParsePrice(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if validate.Var(raw, "required") != nil {
		return decimal.Zero, errs.ErrBadPrice
	}
	price, err := decimal.NewFromString(raw)
	if err != nil || price.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q", errs.ErrBadPrice, raw)
	}
	if price.GreaterThanOrEqual(MaxPrice) {
		return decimal.Zero, fmt.Errorf("%w: %q is not below %s", errs.ErrBadPrice, raw, MaxPrice)
	}
	return price, nil
}

// ParseStatus is case-sensitive: statuses are stored exactly as listed.
func ParseStatus(raw string) (models.OrderStatus, error) {
	raw = strings.TrimSpace(raw)
	if validate.Var(raw, "oneof='Processing' 'Out for Delivery' 'Delivered' 'Cancelled'") != nil {
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidStatus, raw)
	}
	return models.OrderStatus(raw), nil
}

func ParseRole(raw string) (models.UserRole, error) {
	role := models.NormalizeRole(raw)
	if validate.Var(string(role), "oneof=customer driver manager") != nil {
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidRole, raw)
	}
	return role, nil
}

func ParseItemType(raw string) (models.ItemType, error) {
	t := strings.ToLower(strings.TrimSpace(raw))
	if validate.Var(t, "oneof=entree drinks sides") != nil {
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidType, raw)
	}
	return models.ItemType(t), nil
}

// Package errs holds the error kinds every menu operation can end with.
// Callers wrap them with fmt.Errorf("...: %w") and the controller matches
// them with errors.Is to pick the message shown to the user.
package errs

import "errors"

var (
	ErrStorage      = errors.New("storage failure")
	ErrAuthFailure  = errors.New("invalid login credentials")
	ErrNotLoggedIn  = errors.New("no user logged in, please log in first")
	ErrForbidden    = errors.New("access denied")
	ErrNotFound     = errors.New("not found")
	ErrInputParse   = errors.New("invalid input")
	ErrDuplicateKey = errors.New("already exists")

	ErrDuplicateLogin = errors.New("login ID already exists")
	ErrBadLogin       = errors.New("login ID must be 1-50 characters without surrounding spaces")
	ErrWeakPassword   = errors.New("password must be at least 6 characters long")
	ErrBadPhone       = errors.New("phone number must be exactly 10 digits")

	ErrUnknownStore = errors.New("store ID not found")
	ErrUnknownItem  = errors.New("item not found in the menu")
	ErrEmptyOrder   = errors.New("no valid items selected, order not placed")

	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrStaleStatus       = errors.New("order status changed concurrently")
	ErrInvalidRole       = errors.New("role must be 'customer', 'driver', or 'manager'")
	ErrInvalidType       = errors.New("type must be 'entree', 'drinks', or 'sides'")
	ErrBadPrice          = errors.New("price must be a non-negative number")
	ErrDuplicateItem     = errors.New("item already exists in the menu")
	ErrInUse             = errors.New("still referenced by existing orders")
)

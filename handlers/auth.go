package handlers

import (
	"context"
	"errors"
	"fmt"

	"pizzastore/console"
	"pizzastore/errs"
	"pizzastore/services"
	"pizzastore/session"
	"pizzastore/validation"
)

// CreateUser registers a new customer account
func (h *Handler) CreateUser(ctx context.Context) error {
	console.Title(h.out, "*** New User Registration ***")
	login, err := h.in.Line("Create login Username: ")
	if err != nil {
		return err
	}
	if err := h.auth.CheckLoginAvailable(ctx, login); err != nil {
		return err
	}
	password, err := h.in.Until("Create password: ",
		"Error: Password must be at least 6 characters long.", validation.Password)
	if err != nil {
		return err
	}
	phone, err := h.in.Until("Enter phone number: ",
		"Error: Phone number must be exactly 10 digits.", validation.Phone)
	if err != nil {
		return err
	}
	if err := h.auth.Register(ctx, login, password, phone); err != nil {
		return err
	}
	console.Success(h.out, "User created successfully!")
	return nil
}

// LogIn asks for credentials up to MaxLoginAttempts times and binds sess on
// success
func (h *Handler) LogIn(ctx context.Context, sess *session.Session) error {
	console.Title(h.out, "*** User Login ***")
	for attempt := 1; attempt <= services.MaxLoginAttempts; attempt++ {
		login, err := h.in.Line("Enter Login ID: ")
		if err != nil {
			return err
		}
		password, err := h.in.Line("Enter Password: ")
		if err != nil {
			return err
		}
		role, err := h.auth.LogIn(ctx, sess, login, password)
		if err == nil {
			h.log.Printf("session %s started for %s (%s)", sess.ID(), login, role)
			fmt.Fprintln(h.out)
			console.Success(h.out, "Login successful! Welcome, %s (%s)", login, role)
			return nil
		}
		if !errors.Is(err, errs.ErrAuthFailure) {
			return err
		}
		fmt.Fprintln(h.out, "\nInvalid login credentials. Please try again.")
		if remaining := services.MaxLoginAttempts - attempt; remaining > 0 {
			fmt.Fprintf(h.out, "Attempts remaining: %d\n", remaining)
		}
	}
	return fmt.Errorf("%w: too many failed attempts, returning to the main menu", errs.ErrAuthFailure)
}

// LogOut ends the session.
func (h *Handler) LogOut(_ context.Context, sess *session.Session) error {
	if id := sess.ID(); id != "" {
		h.log.Printf("session %s ended for %s", id, sess.Login())
	}
	sess.End()
	return nil
}

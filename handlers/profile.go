package handlers

import (
	"context"
	"fmt"

	"pizzastore/console"
	"pizzastore/session"
	"pizzastore/validation"
)

// ViewProfile shows the caller's phone number and favorite items
func (h *Handler) ViewProfile(ctx context.Context, sess *session.Session) error {
	u, err := h.profile.View(ctx, sess)
	if err != nil {
		return err
	}
	favorites := u.FavoriteItems
	if favorites == "" {
		favorites = "None"
	}
	fmt.Fprintln(h.out, "\n========= YOUR PROFILE =========")
	fmt.Fprintf(h.out, " User: %s\n", u.Login)
	fmt.Fprintf(h.out, " Phone Number: %s\n", u.PhoneNum)
	fmt.Fprintf(h.out, " Favorite Items: %s\n", favorites)
	fmt.Fprintln(h.out, "================================")
	return nil
}

// UpdateProfile edits one profile column per round until the caller goes back
func (h *Handler) UpdateProfile(ctx context.Context, sess *session.Session) error {
	for {
		console.Menu(h.out, "==== UPDATE PROFILE ====",
			"1. Update Favorite Item",
			"2. Update Phone Number",
			"3. Update Password",
			"4. Go Back",
		)
		choice, err := h.in.Choice("Choose an option: ")
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			favorites, err := h.in.Line("Enter new favorite item: ")
			if err != nil {
				return err
			}
			if err := h.profile.UpdateFavorites(ctx, sess, favorites); err != nil {
				return err
			}
		case 2:
			phone, err := h.in.Until("Enter new phone number (10 digits): ",
				"Invalid phone number! Must be exactly 10 digits.", validation.Phone)
			if err != nil {
				return err
			}
			if err := h.profile.UpdatePhone(ctx, sess, phone); err != nil {
				return err
			}
		case 3:
			password, err := h.in.Until("Enter new password (at least 6 characters): ",
				"Password must be at least 6 characters long.", validation.Password)
			if err != nil {
				return err
			}
			if err := h.profile.UpdatePassword(ctx, sess, password); err != nil {
				return err
			}
		case 4:
			fmt.Fprintln(h.out, "\nReturning to main menu...")
			return nil
		default:
			fmt.Fprintln(h.out, "Invalid choice! Please try again.")
			continue
		}
		fmt.Fprintln(h.out)
		console.Success(h.out, "Profile updated successfully!")
	}
}

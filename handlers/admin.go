package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pizzastore/console"
	"pizzastore/errs"
	"pizzastore/models"
	"pizzastore/repository"
	"pizzastore/services"
	"pizzastore/session"
	"pizzastore/statemachine"
)

// ── Order status (manager, driver) ─────────────────────────────

// UpdateOrderStatus moves one order along the status machine
func (h *Handler) UpdateOrderStatus(ctx context.Context, sess *session.Session) error {
	fmt.Fprintln(h.out, "\n========== ALL ORDERS ==========")
	if _, err := h.admin.PrintOrders(ctx, sess, h.out); err != nil {
		return err
	}
	orderID, err := h.in.Int("\nEnter the Order ID to update: ")
	if err != nil {
		return err
	}
	order, err := h.admin.Order(ctx, sess, orderID)
	if err != nil {
		return err
	}

	fmt.Fprintf(h.out, "\nCurrent status: %s\n", order.Status)
	fmt.Fprintln(h.out, "Possible Status Options:")
	for _, s := range models.Statuses {
		fmt.Fprintf(h.out, " - %s\n", s)
	}
	if next := statemachine.ValidTransitionsFrom(order.Status, sess.Role()); len(next) > 0 {
		names := make([]string, len(next))
		for i, s := range next {
			names[i] = string(s)
		}
		fmt.Fprintf(h.out, "Allowed for you now: %s\n", strings.Join(names, ", "))
	} else if statemachine.IsTerminal(order.Status) {
		fmt.Fprintln(h.out, "This order is final, no further status changes are possible.")
	}
	raw, err := h.in.Line("\nEnter the new order status: ")
	if err != nil {
		return err
	}
	change, err := h.admin.UpdateOrderStatus(ctx, sess, orderID, raw)
	if err != nil {
		return err
	}
	h.log.Printf("order %d: %s -> %s by %s", change.OrderID, change.From, change.To, sess.Login())
	fmt.Fprintln(h.out)
	console.Success(h.out, "Order status updated successfully!")
	return nil
}

// ── Menu (manager) ─────────────────────────────────────────────

// UpdateMenu views, edits and adds menu items
func (h *Handler) UpdateMenu(ctx context.Context, sess *session.Session) error {
	if err := h.admin.AuthorizeMenu(ctx, sess); err != nil {
		return err
	}
	for {
		console.Menu(h.out, "===== MENU MANAGEMENT =====",
			"1. View Menu",
			"2. Update Menu Item",
			"3. Add New Menu Item",
			"4. Go Back",
		)
		choice, err := h.in.Choice("Choose an option: ")
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			fmt.Fprintln(h.out, "\nDisplaying menu...")
			_, err = h.admin.PrintMenu(ctx, sess, h.out)
		case 2:
			err = h.updateMenuItem(ctx, sess)
		case 3:
			err = h.addMenuItem(ctx, sess)
		case 4:
			fmt.Fprintln(h.out, "\nReturning to main menu...")
			return nil
		default:
			fmt.Fprintln(h.out, "\nInvalid choice. Try again.")
		}
		if err := h.recoverable(err, errs.ErrNotFound, errs.ErrDuplicateItem, errs.ErrBadPrice,
			errs.ErrInvalidType, errs.ErrInputParse); err != nil {
			return err
		}
	}
}

func (h *Handler) updateMenuItem(ctx context.Context, sess *session.Session) error {
	name, err := h.in.Line("\nEnter the name of the item to update: ")
	if err != nil {
		return err
	}
	if err := h.admin.RequireItem(ctx, sess, name); err != nil {
		return err
	}
	console.Menu(h.out, "What would you like to update?",
		"1. Price",
		"2. Ingredients",
		"3. Description",
	)
	choice, err := h.in.Choice("Choose an option: ")
	if err != nil {
		return err
	}

	switch choice {
	case 1:
		raw, err := h.in.Line("\nEnter new price: ")
		if err != nil {
			return err
		}
		if err := h.admin.UpdateItemPrice(ctx, sess, name, raw); err != nil {
			return err
		}
	case 2, 3:
		field, prompt := repository.FieldIngredients, "\nEnter new ingredients (comma-separated): "
		if choice == 3 {
			field, prompt = repository.FieldDescription, "\nEnter new description: "
		}
		value, err := h.in.Line(prompt)
		if err != nil {
			return err
		}
		if err := h.admin.UpdateItemText(ctx, sess, name, field, value); err != nil {
			return err
		}
	default:
		fmt.Fprintln(h.out, "\nInvalid choice. Returning to menu.")
		return nil
	}
	fmt.Fprintln(h.out)
	console.Success(h.out, "Menu item updated successfully!")
	return nil
}

func (h *Handler) addMenuItem(ctx context.Context, sess *session.Session) error {
	var item services.NewItem
	var err error
	if item.Name, err = h.in.Line("\nEnter new item name: "); err != nil {
		return err
	}
	if err := h.admin.RequireNewItem(ctx, sess, item.Name); err != nil {
		return err
	}
	if item.Ingredients, err = h.in.Line("Enter ingredients (comma-separated): "); err != nil {
		return err
	}
	if item.Type, err = h.in.Line("Enter type of item (entree, drinks, sides): "); err != nil {
		return err
	}
	if item.Price, err = h.in.Line("Enter price: "); err != nil {
		return err
	}
	if item.Description, err = h.in.Line("Enter description: "); err != nil {
		return err
	}
	if err := h.admin.AddItem(ctx, sess, item); err != nil {
		return err
	}
	fmt.Fprintln(h.out)
	console.Success(h.out, "New menu item added successfully!")
	return nil
}

// ── Users (manager) ────────────────────────────────────────────

// UpdateUser lists users, renames logins and changes roles
func (h *Handler) UpdateUser(ctx context.Context, sess *session.Session) error {
	if err := h.admin.AuthorizeUsers(ctx, sess); err != nil {
		return err
	}
	for {
		console.Menu(h.out, "===== USER MANAGEMENT =====",
			"1. View All Users",
			"2. Update a User’s Login ID",
			"3. Change a User’s Role",
			"4. Go Back",
		)
		choice, err := h.in.Choice("Choose an option: ")
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			fmt.Fprintln(h.out, "\nDisplaying all users...")
			_, err = h.admin.PrintUsers(ctx, sess, h.out)
		case 2:
			err = h.renameUser(ctx, sess)
		case 3:
			err = h.changeRole(ctx, sess)
		case 4:
			fmt.Fprintln(h.out, "\nReturning to main menu...")
			return nil
		default:
			fmt.Fprintln(h.out, "\nInvalid choice. Try again.")
		}
		if err := h.recoverable(err, errs.ErrNotFound, errs.ErrDuplicateLogin, errs.ErrBadLogin,
			errs.ErrInvalidRole, errs.ErrInUse); err != nil {
			return err
		}
		// a manager who demoted themselves leaves the dialog
		if errors.Is(h.admin.AuthorizeUsers(ctx, sess), errs.ErrForbidden) {
			return nil
		}
	}
}

func (h *Handler) renameUser(ctx context.Context, sess *session.Session) error {
	oldLogin, err := h.in.Line("\nEnter the current login ID: ")
	if err != nil {
		return err
	}
	if err := h.admin.RequireUser(ctx, sess, oldLogin); err != nil {
		return err
	}
	newLogin, err := h.in.Line("Enter the new login ID: ")
	if err != nil {
		return err
	}
	if err := h.admin.RenameUser(ctx, sess, oldLogin, newLogin); err != nil {
		return err
	}
	fmt.Fprintln(h.out)
	console.Success(h.out, "Username successfully updated!")
	return nil
}

func (h *Handler) changeRole(ctx context.Context, sess *session.Session) error {
	login, err := h.in.Line("\nEnter the login ID of the user: ")
	if err != nil {
		return err
	}
	if err := h.admin.RequireUser(ctx, sess, login); err != nil {
		return err
	}
	raw, err := h.in.Line("\nEnter the new role (customer, driver, manager): ")
	if err != nil {
		return err
	}
	role, changed, err := h.admin.ChangeRole(ctx, sess, login, raw)
	if err != nil {
		return err
	}
	if !changed {
		fmt.Fprintf(h.out, "\nThe user is already assigned the role: %s\n", role)
		return nil
	}
	fmt.Fprintln(h.out)
	console.Success(h.out, "User role successfully updated!")
	return nil
}

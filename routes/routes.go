// Package routes is the two-level menu: the outer menu creates accounts and
// logs in, the inner menu dispatches the logged-in user's options until log
// out.
package routes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"pizzastore/console"
	"pizzastore/handlers"
	"pizzastore/middleware"
	"pizzastore/repository"
	"pizzastore/services"
	"pizzastore/session"
)

// Option numbers of the inner menu.
const (
	OptViewProfile       = 1
	OptUpdateProfile     = 2
	OptViewMenu          = 3
	OptPlaceOrder        = 4
	OptViewAllOrders     = 5
	OptViewRecentOrders  = 6
	OptViewOrderInfo     = 7
	OptViewStores        = 8
	OptUpdateOrderStatus = 9
	OptUpdateMenu        = 10
	OptUpdateUser        = 11
	OptLogOut            = 20
)

// Option numbers of the outer menu.
const (
	OptCreateUser = 1
	OptLogIn      = 2
	OptExit       = 9
)

type Controller struct {
	in      *console.Reader
	out     io.Writer
	log     *log.Logger
	h       *handlers.Handler
	issuer  *session.Issuer
	actions map[int]middleware.Action
}

func New(repo *repository.Repository, in *console.Reader, issuer *session.Issuer, logger *log.Logger) *Controller {
	c := &Controller{
		in:     in,
		out:    in.Out(),
		log:    logger,
		h:      handlers.New(repo, in, logger),
		issuer: issuer,
	}
	c.actions = SetupRoutes(c.h, repo)
	return c
}

// SetupRoutes binds every inner-menu option to its dialog behind the checks
// it needs
func SetupRoutes(h *handlers.Handler, probe session.Prober) map[int]middleware.Action {
	auth := middleware.AuthRequired()
	routes := map[int]middleware.Action{}

	// ── Authenticated routes ───────────────────────────────────────
	for opt, a := range map[int]middleware.Action{
		OptViewProfile:      h.ViewProfile,
		OptUpdateProfile:    h.UpdateProfile,
		OptViewMenu:         h.ViewMenu,
		OptPlaceOrder:       h.PlaceOrder,
		OptViewAllOrders:    h.ViewAllOrders,
		OptViewRecentOrders: h.ViewRecentOrders,
		OptViewOrderInfo:    h.ViewOrderInfo,
		OptViewStores:       h.ViewStores,
	} {
		routes[opt] = middleware.Chain(a, auth)
	}

	// ── Driver and manager routes ──────────────────────────────────
	routes[OptUpdateOrderStatus] = middleware.Chain(h.UpdateOrderStatus,
		auth, middleware.RoleRequired(probe, services.StatusRoles...))

	// ── Manager routes ─────────────────────────────────────────────
	manager := middleware.RoleRequired(probe, services.ManagerOnly...)
	routes[OptUpdateMenu] = middleware.Chain(h.UpdateMenu, auth, manager)
	routes[OptUpdateUser] = middleware.Chain(h.UpdateUser, auth, manager)

	return routes
}

// Run drives the outer menu until the user exits or input ends.
func (c *Controller) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		console.Menu(c.out, "MAIN MENU",
			"---------",
			"1. Create user",
			"2. Log in",
			"9. < EXIT",
		)
		choice, err := c.in.Choice("")
		if err != nil {
			return quiet(err)
		}

		switch choice {
		case OptCreateUser:
			err = c.h.CreateUser(ctx)
		case OptLogIn:
			sess := session.New(c.issuer)
			err = c.h.LogIn(ctx, sess)
			if err == nil {
				err = c.userMenu(ctx, sess)
			}
		case OptExit:
			return nil
		default:
			fmt.Fprintln(c.out, "Unrecognized choice!")
		}
		if err := c.settle(err); err != nil {
			return quiet(err)
		}
	}
}

// userMenu dispatches inner-menu options until log out, input end or the
// session is lost.
func (c *Controller) userMenu(ctx context.Context, sess *session.Session) error {
	for sess.Active() {
		if err := ctx.Err(); err != nil {
			return err
		}
		console.Menu(c.out, "MAIN MENU",
			"---------",
			"1. View Profile",
			"2. Update Profile",
			"3. View Menu",
			"4. Place Order",
			"5. View Full Order ID History",
			"6. View Past 5 Order IDs",
			"7. View Order Information",
			"8. View Stores",
			"9. Update Order Status",
			"10. Update Menu",
			"11. Update User",
			".........................",
			"20. Log out",
		)
		choice, err := c.in.Choice("")
		if err != nil {
			return err
		}
		if choice == OptLogOut {
			return c.h.LogOut(ctx, sess)
		}
		action, ok := c.actions[choice]
		if !ok {
			fmt.Fprintln(c.out, "Unrecognized choice!")
			continue
		}
		if err := c.settle(action(ctx, sess)); err != nil {
			return err
		}
	}
	fmt.Fprintln(c.out, "\nSession ended. Please log in again.")
	return nil
}

// settle renders an operation's error and swallows it. Only end of input and
// cancellation come back out.
func (c *Controller) settle(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		return err
	}
	c.h.Report(err)
	return nil
}

// quiet treats the end of input as a clean exit.
func quiet(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// Package handlers holds the terminal dialogs behind each menu option. A
// dialog prompts, calls a service and renders the outcome; errors that end
// the dialog are returned to the menu loop.
package handlers

import (
	"errors"
	"io"
	"log"
	"strings"

	"pizzastore/console"
	"pizzastore/errs"
	"pizzastore/repository"
	"pizzastore/services"
)

type Handler struct {
	in  *console.Reader
	out io.Writer
	log *log.Logger

	auth    *services.AuthService
	profile *services.ProfileService
	catalog *services.CatalogService
	orders  *services.OrderService
	history *services.HistoryService
	admin   *services.AdminService
}

func New(repo *repository.Repository, in *console.Reader, logger *log.Logger) *Handler {
	return &Handler{
		in:      in,
		out:     in.Out(),
		log:     logger,
		auth:    services.NewAuthService(repo),
		profile: services.NewProfileService(repo),
		catalog: services.NewCatalogService(repo),
		orders:  services.NewOrderService(repo),
		history: services.NewHistoryService(repo),
		admin:   services.NewAdminService(repo),
	}
}

// Message is the one-line text shown for an error. Storage details stay in
// the diagnostic log.
func Message(err error) string {
	if errors.Is(err, errs.ErrStorage) {
		return "Database error. Please try again."
	}
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

// Report logs storage failures and shows err to the user.
func (h *Handler) Report(err error) {
	if errors.Is(err, errs.ErrStorage) {
		h.log.Printf("❌ %v", err)
	}
	console.Fail(h.out, "%s", Message(err))
}

// recoverable reports err and returns nil when the dialog can go on after it.
func (h *Handler) recoverable(err error, kinds ...error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			h.Report(err)
			return nil
		}
	}
	return err
}

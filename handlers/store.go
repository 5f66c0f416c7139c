package handlers

import (
	"context"
	"fmt"
	"strconv"

	"pizzastore/models"
	"pizzastore/session"
)

// ViewStores lists every store with its review score and open status
func (h *Handler) ViewStores(ctx context.Context, sess *session.Session) error {
	stores, err := h.catalog.Stores(ctx, sess)
	if err != nil {
		return err
	}
	if len(stores) == 0 {
		fmt.Fprintln(h.out, "\nNo stores available.")
		return nil
	}
	fmt.Fprintln(h.out, "\n================ STORES LIST ================")
	for _, s := range stores {
		fmt.Fprintf(h.out, "\nStore ID:      %d\n", s.StoreID)
		fmt.Fprintf(h.out, "Address:       %s\n", s.Address)
		fmt.Fprintf(h.out, "Review Score:  %s\n", strconv.FormatFloat(s.ReviewScore, 'f', -1, 64))
		fmt.Fprintf(h.out, "Open Status:   %s\n", models.OpenLabel(s.IsOpen))
		fmt.Fprintln(h.out, "=============================================")
	}
	return nil
}

package handlers

import (
	"context"
	"fmt"
	"strings"

	"pizzastore/console"
	"pizzastore/errs"
	"pizzastore/services"
	"pizzastore/session"
)

// PlaceOrder picks a store, collects item lines until "done" and places the
// order in one transaction
func (h *Handler) PlaceOrder(ctx context.Context, sess *session.Session) error {
	console.Title(h.out, "=== Available Stores ===")
	if _, err := h.catalog.PrintStores(ctx, sess, h.out); err != nil {
		return err
	}
	storeID, err := h.in.Int("\nEnter Store ID: ")
	if err != nil {
		return err
	}
	address, err := h.orders.StoreAddress(ctx, sess, storeID)
	if err != nil {
		return err
	}
	fmt.Fprintf(h.out, "Ordering from: %s\n", address)

	console.Title(h.out, "=== Menu Items ===")
	if _, err := h.catalog.PrintPrices(ctx, sess, h.out); err != nil {
		return err
	}

	b := services.NewOrderBuilder()
	for {
		item, err := h.in.Line("\nEnter item name (or type 'done' to finish): ")
		if err != nil {
			return err
		}
		if strings.EqualFold(item, "done") {
			break
		}
		qty, err := h.in.Int("Enter quantity: ")
		if err == nil {
			_, err = h.orders.AddLine(ctx, b, item, qty)
		}
		if err := h.recoverable(err, errs.ErrInputParse, errs.ErrUnknownItem); err != nil {
			return err
		}
	}

	receipt, err := h.orders.Place(ctx, sess, storeID, b)
	if err != nil {
		return err
	}
	h.log.Printf("order %d placed by %s", receipt.OrderID, sess.Login())
	fmt.Fprintln(h.out)
	console.Success(h.out, "Order placed successfully!")
	fmt.Fprintf(h.out, " Order ID: %d\n", receipt.OrderID)
	fmt.Fprintf(h.out, " Store Location: %s\n", receipt.StoreAddress)
	fmt.Fprintf(h.out, " Total Price: $%s\n", receipt.Total.StringFixed(2))
	for _, l := range receipt.Lines {
		fmt.Fprintf(h.out, "Added: %s | Quantity: %d\n", l.ItemName, l.Quantity)
	}
	fmt.Fprintln(h.out, "\nAll items added to order!")
	return nil
}

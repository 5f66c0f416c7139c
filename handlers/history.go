package handlers

import (
	"context"
	"fmt"

	"pizzastore/services"
	"pizzastore/session"

	"github.com/shopspring/decimal"
)

// ViewAllOrders lists every order visible to the caller
func (h *Handler) ViewAllOrders(ctx context.Context, sess *session.Session) error {
	hist, err := h.history.Orders(ctx, sess, 0)
	if err != nil {
		return err
	}
	if hist.Privileged {
		fmt.Fprintln(h.out, "\n=== All Orders (Manager/Driver View) ===")
	} else {
		fmt.Fprintln(h.out, "\n=== Your Order History ===")
	}
	if len(hist.Rows) == 0 {
		fmt.Fprintln(h.out, "\nNo orders found.")
		return nil
	}
	h.printOrders(hist)
	return nil
}

// ViewRecentOrders lists the caller's five most recent visible orders
func (h *Handler) ViewRecentOrders(ctx context.Context, sess *session.Session) error {
	hist, err := h.history.Orders(ctx, sess, services.RecentOrdersLimit)
	if err != nil {
		return err
	}
	if hist.Privileged {
		fmt.Fprintln(h.out, "\n=== Recent Orders (Manager/Driver View) ===")
	} else {
		fmt.Fprintln(h.out, "\n=== Your Recent Orders ===")
	}
	if len(hist.Rows) == 0 {
		fmt.Fprintln(h.out, "\nNo recent orders found.")
		return nil
	}
	h.printOrders(hist)
	return nil
}

func (h *Handler) printOrders(hist services.OrderHistory) {
	if hist.Privileged {
		fmt.Fprintf(h.out, "%-10s %-15s %-10s %-12s %-18s %-20s\n",
			"OrderID", "Customer", "StoreID", "Total Price", "Order Status", "Timestamp")
	} else {
		fmt.Fprintf(h.out, "%-10s %-10s %-12s %-18s %-20s\n",
			"OrderID", "StoreID", "Total Price", "Order Status", "Timestamp")
	}
	fmt.Fprintln(h.out, "------------------------------------------------------------")
	for _, row := range hist.Rows {
		if hist.Privileged {
			fmt.Fprintf(h.out, "%-10s %-15s %-10s $%-11s %-18s %-20s\n",
				row[0], row[1], row[2], money(row[3]), row[4], row[5])
		} else {
			fmt.Fprintf(h.out, "%-10s %-10s $%-11s %-18s %-20s\n",
				row[0], row[1], money(row[2]), row[3], row[4])
		}
	}
}

// ViewOrderInfo shows one order header and its lines
func (h *Handler) ViewOrderInfo(ctx context.Context, sess *session.Session) error {
	orderID, err := h.in.Int("\nEnter the Order ID to view details: ")
	if err != nil {
		return err
	}
	info, err := h.history.OrderInfo(ctx, sess, orderID)
	if err != nil {
		return err
	}
	fmt.Fprintln(h.out, "\n=========================================")
	fmt.Fprintf(h.out, " Order ID:      %d\n", info.OrderID)
	fmt.Fprintf(h.out, " Store ID:      %s\n", info.StoreID)
	fmt.Fprintf(h.out, " Total Price:   $%s\n", info.Total.StringFixed(2))
	fmt.Fprintf(h.out, " Status:        %s\n", info.Status)
	fmt.Fprintf(h.out, " Ordered On:    %s\n", info.Timestamp)
	if info.ShowCustomer {
		fmt.Fprintf(h.out, " Customer:      %s\n", info.Customer)
	}
	fmt.Fprintln(h.out, "=========================================")

	fmt.Fprintln(h.out, "\nItems in Order:")
	if len(info.Lines) == 0 {
		fmt.Fprintln(h.out, " - No items found.")
	}
	for _, l := range info.Lines {
		fmt.Fprintf(h.out, " - %s (x%d)\n", l.ItemName, l.Quantity)
	}
	fmt.Fprintln(h.out, "=========================================")
	return nil
}

// money renders a stored amount with two decimals, leaving unparsable text as is.
func money(raw string) string {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return raw
	}
	return d.StringFixed(2)
}

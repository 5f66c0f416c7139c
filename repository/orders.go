package repository

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"pizzastore/errs"
	"pizzastore/gateway"
	"pizzastore/models"

	"github.com/shopspring/decimal"
)

// NewOrder is an order header ready to be written.
type NewOrder struct {
	Login   string
	StoreID int
	Total   decimal.Decimal
	Lines   []models.ItemsInOrder
}

// OrderQuery selects whose orders to list. An empty Login lists every
// customer's orders and adds the customer column; Limit 0 means no limit.
type OrderQuery struct {
	Login string
	Limit int
}

// OrderDetail is one order header as shown by the order info dialog.
type OrderDetail struct {
	OrderID   int
	StoreID   string
	Total     decimal.Decimal
	Status    models.OrderStatus
	Timestamp string
	Customer  string
}

// CreateOrder writes the header and its line items in one transaction and
// returns the server-assigned order ID. Nothing is written if any insert
// fails.
func (r *Repository) CreateOrder(ctx context.Context, o NewOrder) (int, error) {
	var orderID int
	err := r.gw.Transaction(ctx, func(tx *gateway.Gateway) error {
		err := tx.DB(ctx).Raw(`
			INSERT INTO foodorder (login, storeid, totalprice, orderstatus, ordertimestamp)
			VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
			RETURNING orderid`,
			o.Login, o.StoreID, o.Total.Round(2).InexactFloat64(), string(models.StatusProcessing),
		).Scan(&orderID).Error
		if err != nil {
			return gateway.Wrap(err)
		}
		if orderID == 0 {
			return fmt.Errorf("%w: insert returned no order ID", errs.ErrStorage)
		}

		for _, line := range o.Lines {
			if _, err := tx.Exec(ctx,
				`INSERT INTO itemsinorder (orderid, itemname, quantity) VALUES (?, ?, ?)`,
				orderID, line.ItemName, line.Quantity,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return orderID, nil
}

// Orders lists orders newest first.
func (r *Repository) Orders(ctx context.Context, q OrderQuery) ([][]string, error) {
	query := `SELECT orderid, login AS customer, storeid, totalprice, orderstatus, ordertimestamp FROM foodorder`
	var args []any
	if q.Login != "" {
		query = `SELECT orderid, storeid, totalprice, orderstatus, ordertimestamp FROM foodorder WHERE login = ?`
		args = append(args, q.Login)
	}
	query += ` ORDER BY ordertimestamp DESC, orderid DESC`
	if q.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, q.Limit)
	}
	return r.gw.Rows(ctx, query, args...)
}

// PrintOrders is the status-update overview of every order.
func (r *Repository) PrintOrders(ctx context.Context, w io.Writer) (int, error) {
	return r.gw.Print(ctx, w,
		`SELECT orderid, login AS customer, storeid, totalprice, orderstatus FROM foodorder ORDER BY orderid`)
}

// Order loads one order header. With a non-empty owner the order must
// belong to that login; a foreign order is reported exactly like a missing
// one.
func (r *Repository) Order(ctx context.Context, orderID int, owner string) (OrderDetail, error) {
	query := `SELECT orderid, storeid, totalprice, orderstatus, ordertimestamp, login FROM foodorder WHERE orderid = ?`
	args := []any{orderID}
	if owner != "" {
		query += ` AND login = ?`
		args = append(args, owner)
	}
	rows, err := r.gw.Rows(ctx, query, args...)
	if err != nil {
		return OrderDetail{}, err
	}
	if len(rows) == 0 {
		return OrderDetail{}, fmt.Errorf("order %d: %w", orderID, errs.ErrNotFound)
	}
	row := rows[0]
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return OrderDetail{}, fmt.Errorf("%w: order id %q", errs.ErrStorage, row[0])
	}
	total, err := decimal.NewFromString(row[2])
	if err != nil {
		return OrderDetail{}, fmt.Errorf("%w: order %d total %q", errs.ErrStorage, id, row[2])
	}
	return OrderDetail{
		OrderID:   id,
		StoreID:   row[1],
		Total:     total,
		Status:    models.OrderStatus(strings.TrimSpace(row[3])),
		Timestamp: row[4],
		Customer:  row[5],
	}, nil
}

// OrderLines returns (itemname, quantity) for each line of an order.
func (r *Repository) OrderLines(ctx context.Context, orderID int) ([]models.ItemsInOrder, error) {
	rows, err := r.gw.Rows(ctx,
		`SELECT itemname, quantity FROM itemsinorder WHERE orderid = ? ORDER BY itemname`, orderID)
	if err != nil {
		return nil, err
	}
	lines := make([]models.ItemsInOrder, 0, len(rows))
	for _, row := range rows {
		qty, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("%w: quantity %q", errs.ErrStorage, row[1])
		}
		lines = append(lines, models.ItemsInOrder{OrderID: orderID, ItemName: row[0], Quantity: qty})
	}
	return lines, nil
}

// SetOrderStatus moves an order from one status to another. The update only
// applies while the order still has the expected status.
func (r *Repository) SetOrderStatus(ctx context.Context, orderID int, from, to models.OrderStatus) error {
	n, err := r.gw.Exec(ctx,
		`UPDATE foodorder SET orderstatus = ? WHERE orderid = ? AND orderstatus = ?`,
		string(to), orderID, string(from))
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("order %d: %w", orderID, errs.ErrStaleStatus)
	}
	return nil
}

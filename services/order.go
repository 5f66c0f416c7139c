package services

import (
	"context"
	"fmt"

	"pizzastore/errs"
	"pizzastore/models"
	"pizzastore/repository"
	"pizzastore/session"

	"github.com/shopspring/decimal"
)

// OrderLine is one item of an order being built.
type OrderLine struct {
	ItemName  string
	Quantity  int
	UnitPrice decimal.Decimal
}

func (l OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// OrderBuilder collects lines until the order is placed or abandoned.
// Repeated items are merged into one line with the quantities summed.
type OrderBuilder struct {
	lines []OrderLine
	index map[string]int
}

func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{index: make(map[string]int)}
}

// Add appends a line or grows the quantity of an existing one
func (b *OrderBuilder) Add(item string, quantity int, unitPrice decimal.Decimal) (OrderLine, error) {
	if quantity <= 0 {
		return OrderLine{}, fmt.Errorf("%w: quantity must be a positive integer", errs.ErrInputParse)
	}
	if i, ok := b.index[item]; ok {
		b.lines[i].Quantity += quantity
		return b.lines[i], nil
	}
	b.index[item] = len(b.lines)
	line := OrderLine{ItemName: item, Quantity: quantity, UnitPrice: unitPrice}
	b.lines = append(b.lines, line)
	return line, nil
}

// Lines returns a copy of the lines in entry order.
func (b *OrderBuilder) Lines() []OrderLine {
	return append([]OrderLine(nil), b.lines...)
}

func (b *OrderBuilder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range b.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (b *OrderBuilder) Empty() bool {
	return len(b.lines) == 0
}

// Receipt is what the customer sees after a successful order.
type Receipt struct {
	OrderID      int
	StoreAddress string
	Total        decimal.Decimal
	Lines        []OrderLine
}

type OrderService struct {
	repo *repository.Repository
}

func NewOrderService(repo *repository.Repository) *OrderService {
	return &OrderService{repo: repo}
}

// StoreAddress resolves the store an order is placed against.
func (s *OrderService) StoreAddress(ctx context.Context, sess *session.Session, storeID int) (string, error) {
	if _, err := sess.Require(); err != nil {
		return "", err
	}
	return s.repo.StoreAddress(ctx, storeID)
}

// AddLine prices item by its exact name and adds it to b.
func (s *OrderService) AddLine(ctx context.Context, b *OrderBuilder, item string, quantity int) (OrderLine, error) {
	if quantity <= 0 {
		return OrderLine{}, fmt.Errorf("%w: quantity must be a positive integer", errs.ErrInputParse)
	}
	price, err := s.repo.ItemPrice(ctx, item)
	if err != nil {
		return OrderLine{}, err
	}
	return b.Add(item, quantity, price)
}

// Place writes the order header and its lines atomically.
func (s *OrderService) Place(ctx context.Context, sess *session.Session, storeID int, b *OrderBuilder) (Receipt, error) {
	if _, err := sess.Authorize(ctx, s.repo); err != nil {
		return Receipt{}, err
	}
	address, err := s.repo.StoreAddress(ctx, storeID)
	if err != nil {
		return Receipt{}, err
	}
	if b == nil || b.Empty() {
		return Receipt{}, errs.ErrEmptyOrder
	}

	lines := b.Lines()
	rows := make([]models.ItemsInOrder, len(lines))
	for i, l := range lines {
		rows[i] = models.ItemsInOrder{ItemName: l.ItemName, Quantity: l.Quantity}
	}
	total := b.Total()
	orderID, err := s.repo.CreateOrder(ctx, repository.NewOrder{
		Login:   sess.Login(),
		StoreID: storeID,
		Total:   total,
		Lines:   rows,
	})
	if err != nil {
		return Receipt{}, err
	}
	return Receipt{OrderID: orderID, StoreAddress: address, Total: total, Lines: lines}, nil
}

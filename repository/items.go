package repository

import (
	"context"
	"fmt"
	"io"
	"strings"

	"pizzastore/errs"
	"pizzastore/models"

	"github.com/shopspring/decimal"
)

type MenuSort int

const (
	SortByName MenuSort = iota
	SortPriceAsc
	SortPriceDesc
)

// MenuQuery narrows the menu listing. Zero values mean no filter.
type MenuQuery struct {
	Type     models.ItemType
	MaxPrice *decimal.Decimal
	Sort     MenuSort
}

type MenuRow struct {
	Name        string
	Price       decimal.Decimal
	Type        string
	Description string
}

// ItemField is an items column a manager may edit.
type ItemField string

const (
	FieldPrice       ItemField = "price"
	FieldIngredients ItemField = "ingredients"
	FieldDescription ItemField = "description"
)

func (r *Repository) Menu(ctx context.Context, q MenuQuery) ([]MenuRow, error) {
	var (
		sb   strings.Builder
		args []any
		cond []string
	)
	sb.WriteString(`SELECT itemname, price, typeofitem, description FROM items`)
	if q.Type != "" {
		cond = append(cond, `typeofitem = ?`)
		args = append(args, string(q.Type))
	}
	if q.MaxPrice != nil {
		cond = append(cond, `price <= ?`)
		args = append(args, q.MaxPrice.InexactFloat64())
	}
	if len(cond) > 0 {
		sb.WriteString(" WHERE " + strings.Join(cond, " AND "))
	}
	switch q.Sort {
	case SortPriceAsc:
		sb.WriteString(` ORDER BY price ASC, itemname`)
	case SortPriceDesc:
		sb.WriteString(` ORDER BY price DESC, itemname`)
	default:
		sb.WriteString(` ORDER BY itemname`)
	}

	rows, err := r.gw.Rows(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	menu := make([]MenuRow, 0, len(rows))
	for _, row := range rows {
		price, err := decimal.NewFromString(row[1])
		if err != nil {
			return nil, fmt.Errorf("%w: item %q has price %q", errs.ErrStorage, row[0], row[1])
		}
		menu = append(menu, MenuRow{Name: row[0], Price: price, Type: row[2], Description: row[3]})
	}
	return menu, nil
}

// PrintMenu lists every item with its price, the way the order dialog shows
// it.
func (r *Repository) PrintMenu(ctx context.Context, w io.Writer) (int, error) {
	return r.gw.Print(ctx, w, `SELECT itemname, price FROM items ORDER BY itemname`)
}

// PrintMenuDetails is the manager's view of the menu.
func (r *Repository) PrintMenuDetails(ctx context.Context, w io.Writer) (int, error) {
	return r.gw.Print(ctx, w, `SELECT itemname, typeofitem, price, description FROM items ORDER BY itemname`)
}

// ItemPrice looks an item up by its exact name.
func (r *Repository) ItemPrice(ctx context.Context, name string) (decimal.Decimal, error) {
	rows, err := r.gw.Rows(ctx, `SELECT price FROM items WHERE itemname = ?`, name)
	if err != nil {
		return decimal.Zero, err
	}
	if len(rows) == 0 {
		return decimal.Zero, fmt.Errorf("%w: %q", errs.ErrUnknownItem, name)
	}
	price, err := decimal.NewFromString(rows[0][0])
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: item %q has price %q", errs.ErrStorage, name, rows[0][0])
	}
	return price, nil
}

func (r *Repository) ItemExists(ctx context.Context, name string) (bool, error) {
	n, err := r.count(ctx, `SELECT COUNT(*) FROM items WHERE itemname = ?`, name)
	return n > 0, err
}

func (r *Repository) AddItem(ctx context.Context, item models.Item, price decimal.Decimal) error {
	_, err := r.gw.Exec(ctx,
		`INSERT INTO items (itemname, ingredients, typeofitem, price, description) VALUES (?, ?, ?, ?, ?)`,
		item.ItemName, item.Ingredients, string(item.TypeOfItem), price.InexactFloat64(), item.Description)
	return classify(err)
}

// UpdateItem changes one column of one item. value is a decimal.Decimal for
// FieldPrice and a string otherwise.
func (r *Repository) UpdateItem(ctx context.Context, name string, field ItemField, value any) error {
	switch field {
	case FieldPrice:
		price, ok := value.(decimal.Decimal)
		if !ok {
			return fmt.Errorf("%w: price must be a decimal", errs.ErrBadPrice)
		}
		value = price.InexactFloat64()
	case FieldIngredients, FieldDescription:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("%s must be text", field)
		}
	default:
		return fmt.Errorf("unknown item field %q", field)
	}
	n, err := r.gw.Exec(ctx, `UPDATE items SET `+string(field)+` = ? WHERE itemname = ?`, value, name)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("item %q: %w", name, errs.ErrNotFound)
	}
	return nil
}

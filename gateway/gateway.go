// Package gateway is the single channel to the relational store. Every
// statement is parameterized and every result row comes back as text, so
// callers parse numerics themselves.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"pizzastore/errs"

	"gorm.io/gorm"
)

// TimeLayout is how timestamp columns are rendered.
const TimeLayout = "2006-01-02 15:04:05"

type Gateway struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Gateway {
	return &Gateway{db: db}
}

// DB exposes the gorm handle bound to ctx for typed queries.
func (g *Gateway) DB(ctx context.Context) *gorm.DB {
	return g.db.WithContext(ctx)
}

// Exec runs a statement that returns no rows and reports how many rows it
// touched.
func (g *Gateway) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res := g.db.WithContext(ctx).Exec(query, args...)
	if res.Error != nil {
		return 0, Wrap(res.Error)
	}
	return res.RowsAffected, nil
}

// Rows runs a query and collects every row as a slice of column texts.
func (g *Gateway) Rows(ctx context.Context, query string, args ...any) ([][]string, error) {
	var result [][]string
	err := g.each(ctx, query, args, func(_ []string, row []string) error {
		result = append(result, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Print runs a query and streams the rows to w under a header line of column
// names. Nothing is written when the query yields no rows.
func (g *Gateway) Print(ctx context.Context, w io.Writer, query string, args ...any) (int, error) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	count := 0
	err := g.each(ctx, query, args, func(cols []string, row []string) error {
		if count == 0 {
			fmt.Fprintln(tw, strings.Join(cols, "\t"))
		}
		count++
		_, err := fmt.Fprintln(tw, strings.Join(row, "\t"))
		return err
	})
	if flushErr := tw.Flush(); err == nil && flushErr != nil {
		err = flushErr
	}
	return count, err
}

func (g *Gateway) each(ctx context.Context, query string, args []any, fn func(cols, row []string) error) error {
	rows, err := g.db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return Wrap(err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return Wrap(err)
	}
	values := make([]any, len(cols))
	dest := make([]any, len(cols))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return Wrap(err)
		}
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = Text(v)
		}
		if err := fn(cols, row); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return Wrap(err)
	}
	return nil
}

// Transaction runs fn against a gateway bound to one transaction. The
// transaction commits when fn returns nil and rolls back otherwise. Errors
// returned by fn come back unchanged.
func (g *Gateway) Transaction(ctx context.Context, fn func(tx *Gateway) error) error {
	var fnErr error
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(&Gateway{db: tx})
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	return Wrap(err)
}

// Ping checks that the connection is still usable.
func (g *Gateway) Ping(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return Wrap(err)
	}
	return Wrap(sqlDB.PingContext(ctx))
}

func (g *Gateway) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return Wrap(err)
	}
	return Wrap(sqlDB.Close())
}

// Wrap marks a driver error as a storage failure, keeping the cause
// reachable through errors.Is and errors.As.
func Wrap(err error) error {
	if err == nil || errors.Is(err, errs.ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: %w", errs.ErrStorage, err)
}

// Text renders a scanned column value the way the terminal shows it.
func Text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case bool:
		if x {
			return "t"
		}
		return "f"
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case time.Time:
		return x.Format(TimeLayout)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

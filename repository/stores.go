package repository

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"pizzastore/errs"
	"pizzastore/models"
)

func (r *Repository) StoreAddress(ctx context.Context, storeID int) (string, error) {
	rows, err := r.gw.Rows(ctx, `SELECT address FROM store WHERE storeid = ?`, storeID)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("%w: %d", errs.ErrUnknownStore, storeID)
	}
	return rows[0][0], nil
}

// PrintStores lists store IDs and addresses for the order dialog.
func (r *Repository) PrintStores(ctx context.Context, w io.Writer) (int, error) {
	return r.gw.Print(ctx, w, `SELECT storeid, address FROM store ORDER BY storeid`)
}

func (r *Repository) Stores(ctx context.Context) ([]models.Store, error) {
	rows, err := r.gw.Rows(ctx, `SELECT storeid, address, reviewscore, isopen FROM store ORDER BY storeid`)
	if err != nil {
		return nil, err
	}
	stores := make([]models.Store, 0, len(rows))
	for _, row := range rows {
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("%w: store id %q", errs.ErrStorage, row[0])
		}
		// reviewscore may be NULL for new stores
		score, _ := strconv.ParseFloat(row[2], 64)
		stores = append(stores, models.Store{StoreID: id, Address: row[1], ReviewScore: score, IsOpen: row[3]})
	}
	return stores, nil
}

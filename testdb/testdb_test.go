package testdb_test

import (
	"context"
	"testing"

	"pizzastore/models"
	"pizzastore/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func tableSQL(t *testing.T, db *gorm.DB, table string) string {
	t.Helper()
	var ddl string
	require.NoError(t, db.Raw(`SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&ddl).Error)
	require.NotEmpty(t, ddl, table)
	return ddl
}

func TestForeignKeysPointFromChildToParent(t *testing.T) {
	g := testdb.Open(t)
	db := g.DB(context.Background())

	for _, parent := range []string{"users", "items", "store"} {
		assert.NotContains(t, tableSQL(t, db, parent), "REFERENCES", parent)
	}

	order := tableSQL(t, db, "foodorder")
	assert.Contains(t, order, "REFERENCES users(login)")
	assert.Contains(t, order, "REFERENCES store(storeid)")

	lines := tableSQL(t, db, "itemsinorder")
	assert.Contains(t, lines, "REFERENCES foodorder(orderid)")
	assert.Contains(t, lines, "REFERENCES items(itemname)")
}

func TestSchemaCoversModelColumns(t *testing.T) {
	g := testdb.Open(t)
	m := g.DB(context.Background()).Migrator()

	columns := map[any][]string{
		&models.User{}:         {"login", "password", "role", "favoriteitems", "phonenum"},
		&models.Item{}:         {"itemname", "ingredients", "typeofitem", "price", "description"},
		&models.Store{}:        {"storeid", "address", "reviewscore", "isopen"},
		&models.FoodOrder{}:    {"orderid", "login", "storeid", "totalprice", "orderstatus", "ordertimestamp"},
		&models.ItemsInOrder{}: {"orderid", "itemname", "quantity"},
	}
	for model, cols := range columns {
		require.True(t, m.HasTable(model), "%T", model)
		for _, col := range cols {
			assert.True(t, m.HasColumn(model, col), "%T.%s", model, col)
		}
	}
}

func TestForeignKeysAreEnforced(t *testing.T) {
	g := testdb.Open(t)
	ctx := context.Background()
	testdb.AddUser(t, g, "alice", "secret1", models.RoleCustomer, "5551234567")

	_, err := g.Exec(ctx,
		`INSERT INTO foodorder (login, storeid, totalprice, orderstatus, ordertimestamp) VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		"alice", 99, 1.5, string(models.StatusProcessing))
	assert.ErrorIs(t, err, gorm.ErrForeignKeyViolated)
	assert.Zero(t, testdb.Count(t, g, "foodorder", ""))

	_, err = g.Exec(ctx,
		`INSERT INTO foodorder (login, storeid, totalprice, orderstatus, ordertimestamp) VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		"alice", 1, 1.5, string(models.StatusProcessing))
	require.NoError(t, err)
	assert.Equal(t, 1, testdb.Count(t, g, "foodorder", ""))
}

func TestRenamingUserCascadesToOrders(t *testing.T) {
	g := testdb.Open(t)
	ctx := context.Background()
	testdb.AddUser(t, g, "alice", "secret1", models.RoleCustomer, "5551234567")
	_, err := g.Exec(ctx,
		`INSERT INTO foodorder (login, storeid, totalprice, orderstatus, ordertimestamp) VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		"alice", 1, 1.5, string(models.StatusProcessing))
	require.NoError(t, err)

	_, err = g.Exec(ctx, `UPDATE users SET login = ? WHERE login = ?`, "alicia", "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, testdb.Count(t, g, "foodorder", "login = ?", "alicia"))
}

// Package testdb builds a throwaway in-memory copy of the pizza store schema
// for package tests.
package testdb

import (
	"context"
	"testing"

	"pizzastore/gateway"
	"pizzastore/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Seeded menu prices, referenced by tests that check totals.
const (
	ClassicPrice = 9.99
	SodaPrice    = 1.50
	FriesPrice   = 3.25
)

// orderTables creates the tables that reference users, store and items. The
// foreign keys are spelled out because the models carry no associations.
var orderTables = []string{
	`CREATE TABLE foodorder (
		orderid        integer PRIMARY KEY AUTOINCREMENT,
		login          varchar(50) NOT NULL REFERENCES users(login) ON UPDATE CASCADE,
		storeid        integer NOT NULL REFERENCES store(storeid),
		totalprice     real NOT NULL,
		orderstatus    text NOT NULL,
		ordertimestamp datetime NOT NULL
	)`,
	`CREATE TABLE itemsinorder (
		orderid  integer NOT NULL REFERENCES foodorder(orderid),
		itemname varchar(50) NOT NULL REFERENCES items(itemname) ON UPDATE CASCADE,
		quantity integer NOT NULL,
		PRIMARY KEY (orderid, itemname)
	)`,
}

// Open returns a gateway over a fresh, migrated and seeded database. The
// pool is held to one connection so the in-memory database survives for the
// whole test.
func Open(t testing.TB) *gateway.Gateway {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&models.User{}, &models.Item{}, &models.Store{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for _, ddl := range orderTables {
		if err := db.Exec(ddl).Error; err != nil {
			t.Fatalf("create order tables: %v", err)
		}
	}

	g := gateway.New(db)
	seed(t, g)
	return g
}

func seed(t testing.TB, g *gateway.Gateway) {
	t.Helper()
	db := g.DB(context.Background())
	stores := []models.Store{
		{StoreID: 1, Address: "123 Main St", ReviewScore: 4.5, IsOpen: "t"},
		{StoreID: 2, Address: "9 Elm Ave", ReviewScore: 3.8, IsOpen: "f"},
	}
	items := []models.Item{
		{ItemName: "Classic", Ingredients: "dough,tomato,cheese", TypeOfItem: models.TypeEntree, Price: ClassicPrice, Description: "Cheese pizza"},
		{ItemName: "Soda", Ingredients: "water,sugar", TypeOfItem: models.TypeDrinks, Price: SodaPrice, Description: "Fizzy drink"},
		{ItemName: "Fries", Ingredients: "potato,salt", TypeOfItem: models.TypeSides, Price: FriesPrice, Description: "Crispy fries"},
	}
	if err := db.Create(&stores).Error; err != nil {
		t.Fatalf("seed stores: %v", err)
	}
	if err := db.Create(&items).Error; err != nil {
		t.Fatalf("seed items: %v", err)
	}
}

// AddUser inserts a user row directly, with the password stored as given.
func AddUser(t testing.TB, g *gateway.Gateway, login, password string, role models.UserRole, phone string) {
	t.Helper()
	_, err := g.Exec(context.Background(),
		`INSERT INTO users (login, password, role, favoriteitems, phonenum) VALUES (?, ?, ?, '', ?)`,
		login, password, string(role), phone)
	if err != nil {
		t.Fatalf("add user %s: %v", login, err)
	}
}

// SetRole changes a role behind the application's back.
func SetRole(t testing.TB, g *gateway.Gateway, login string, role models.UserRole) {
	t.Helper()
	if _, err := g.Exec(context.Background(), `UPDATE users SET role = ? WHERE login = ?`, string(role), login); err != nil {
		t.Fatalf("set role %s: %v", login, err)
	}
}

// Count returns SELECT COUNT(*) for the given table and optional filter.
func Count(t testing.TB, g *gateway.Gateway, table, where string, args ...any) int {
	t.Helper()
	var n int64
	q := g.DB(context.Background()).Table(table)
	if where != "" {
		q = q.Where(where, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return int(n)
}

package repository_test

import (
	"context"
	"testing"

	"pizzastore/errs"
	"pizzastore/models"
	"pizzastore/repository"
	"pizzastore/testdb"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) *repository.Repository {
	t.Helper()
	g := testdb.Open(t)
	testdb.AddUser(t, g, "alice", "secret1", models.RoleCustomer, "5551234567")
	testdb.AddUser(t, g, "bob", "secret2", models.RoleDriver, "5559876543")
	return repository.New(g)
}

func placeOrder(t *testing.T, repo *repository.Repository, login string, lines ...models.ItemsInOrder) int {
	t.Helper()
	id, err := repo.CreateOrder(context.Background(), repository.NewOrder{
		Login:   login,
		StoreID: 1,
		Total:   decimal.RequireFromString("10.00"),
		Lines:   lines,
	})
	require.NoError(t, err)
	return id
}

func TestCreateUserDuplicateLogin(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	exists, err := repo.LoginExists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	err = repo.CreateUser(ctx, models.User{Login: "alice", Password: "whatever", Role: models.RoleCustomer, PhoneNum: "5550000000"})
	assert.ErrorIs(t, err, errs.ErrDuplicateKey)
	assert.Equal(t, 1, testdb.Count(t, repo.Gateway(), "users", "login = ?", "alice"))
}

func TestCredentialsAndRoleProbe(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	pw, role, err := repo.Credentials(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "secret2", pw)
	assert.Equal(t, models.RoleDriver, role)

	_, _, err = repo.Credentials(ctx, "Bob")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	testdb.SetRole(t, repo.Gateway(), "bob", "  MANAGER ")
	role, err = repo.RoleOf(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, models.RoleManager, role)

	_, err = repo.RoleOf(ctx, "nobody")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUpdateProfileFieldRejectsUnknownColumn(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	err := repo.UpdateProfileField(ctx, "alice", repository.ProfileField("role"), "manager")
	require.Error(t, err)
	role, err := repo.RoleOf(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, role)

	require.NoError(t, repo.UpdateProfileField(ctx, "alice", repository.FieldFavoriteItems, "Classic'; DELETE FROM users;--"))
	u, err := repo.Profile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Classic'; DELETE FROM users;--", u.FavoriteItems)
	assert.Equal(t, 2, testdb.Count(t, repo.Gateway(), "users", ""))
}

func TestMenuFiltersAndSorts(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	names := func(rows []repository.MenuRow) []string {
		out := make([]string, len(rows))
		for i, r := range rows {
			out[i] = r.Name
		}
		return out
	}

	all, err := repo.Menu(ctx, repository.MenuQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Classic", "Fries", "Soda"}, names(all))
	assert.True(t, all[0].Price.Equal(decimal.RequireFromString("9.99")))

	drinks, err := repo.Menu(ctx, repository.MenuQuery{Type: models.TypeDrinks})
	require.NoError(t, err)
	assert.Equal(t, []string{"Soda"}, names(drinks))

	limit := decimal.RequireFromString("3.25")
	cheap, err := repo.Menu(ctx, repository.MenuQuery{MaxPrice: &limit})
	require.NoError(t, err)
	assert.Equal(t, []string{"Fries", "Soda"}, names(cheap))

	asc, err := repo.Menu(ctx, repository.MenuQuery{Sort: repository.SortPriceAsc})
	require.NoError(t, err)
	assert.Equal(t, []string{"Soda", "Fries", "Classic"}, names(asc))

	desc, err := repo.Menu(ctx, repository.MenuQuery{Sort: repository.SortPriceDesc})
	require.NoError(t, err)
	assert.Equal(t, []string{"Classic", "Fries", "Soda"}, names(desc))
}

func TestItemPriceExactMatch(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	price, err := repo.ItemPrice(ctx, "Soda")
	require.NoError(t, err)
	assert.Equal(t, "1.5", price.String())

	_, err = repo.ItemPrice(ctx, "soda")
	assert.ErrorIs(t, err, errs.ErrUnknownItem)
	_, err = repo.ItemPrice(ctx, "Soda' OR '1'='1")
	assert.ErrorIs(t, err, errs.ErrUnknownItem)
}

func TestAddAndUpdateItem(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	item := models.Item{ItemName: "Calzone", Ingredients: "dough,ricotta", TypeOfItem: models.TypeEntree, Description: "Folded"}
	require.NoError(t, repo.AddItem(ctx, item, decimal.RequireFromString("8.00")))
	assert.ErrorIs(t, repo.AddItem(ctx, item, decimal.Zero), errs.ErrDuplicateKey)

	require.NoError(t, repo.UpdateItem(ctx, "Calzone", repository.FieldPrice, decimal.RequireFromString("8.50")))
	price, err := repo.ItemPrice(ctx, "Calzone")
	require.NoError(t, err)
	assert.Equal(t, "8.5", price.String())

	assert.ErrorIs(t, repo.UpdateItem(ctx, "Nope", repository.FieldDescription, "x"), errs.ErrNotFound)
	assert.Error(t, repo.UpdateItem(ctx, "Calzone", repository.ItemField("itemname"), "x"))
}

func TestStores(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	addr, err := repo.StoreAddress(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "123 Main St", addr)

	_, err = repo.StoreAddress(ctx, 99)
	assert.ErrorIs(t, err, errs.ErrUnknownStore)

	stores, err := repo.Stores(ctx)
	require.NoError(t, err)
	require.Len(t, stores, 2)
	assert.Equal(t, "Open", models.OpenLabel(stores[0].IsOpen))
	assert.Equal(t, "Closed", models.OpenLabel(stores[1].IsOpen))
}

func TestCreateOrderWritesHeaderAndLines(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	id, err := repo.CreateOrder(ctx, repository.NewOrder{
		Login:   "alice",
		StoreID: 1,
		Total:   decimal.RequireFromString("21.48"),
		Lines: []models.ItemsInOrder{
			{ItemName: "Classic", Quantity: 2},
			{ItemName: "Soda", Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	order, err := repo.Order(ctx, id, "alice")
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, order.Status)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("21.48")), order.Total.String())
	assert.NotEmpty(t, order.Timestamp)

	lines, err := repo.OrderLines(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []models.ItemsInOrder{
		{OrderID: id, ItemName: "Classic", Quantity: 2},
		{OrderID: id, ItemName: "Soda", Quantity: 1},
	}, lines)
}

func TestCreateOrderIsAtomic(t *testing.T) {
	repo := newRepo(t)

	// the second line violates the (orderid, itemname) key
	_, err := repo.CreateOrder(context.Background(), repository.NewOrder{
		Login:   "alice",
		StoreID: 1,
		Total:   decimal.RequireFromString("3.00"),
		Lines: []models.ItemsInOrder{
			{ItemName: "Soda", Quantity: 1},
			{ItemName: "Soda", Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrStorage)
	assert.Zero(t, testdb.Count(t, repo.Gateway(), "foodorder", ""))
	assert.Zero(t, testdb.Count(t, repo.Gateway(), "itemsinorder", ""))
}

func TestOrdersVisibility(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	a1 := placeOrder(t, repo, "alice", models.ItemsInOrder{ItemName: "Soda", Quantity: 1})
	b1 := placeOrder(t, repo, "bob", models.ItemsInOrder{ItemName: "Fries", Quantity: 1})
	a2 := placeOrder(t, repo, "alice", models.ItemsInOrder{ItemName: "Classic", Quantity: 1})

	own, err := repo.Orders(ctx, repository.OrderQuery{Login: "alice"})
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Len(t, own[0], 5)
	assert.Equal(t, []string{itoa(a2), itoa(a1)}, []string{own[0][0], own[1][0]})

	all, err := repo.Orders(ctx, repository.OrderQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Len(t, all[0], 6)
	assert.Equal(t, itoa(a2), all[0][0])
	assert.Equal(t, "alice", all[0][1])
	assert.Equal(t, itoa(b1), all[1][0])

	recent, err := repo.Orders(ctx, repository.OrderQuery{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestOrderOwnerScoping(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	id := placeOrder(t, repo, "bob", models.ItemsInOrder{ItemName: "Soda", Quantity: 1})

	_, err := repo.Order(ctx, id, "alice")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	order, err := repo.Order(ctx, id, "")
	require.NoError(t, err)
	assert.Equal(t, "bob", order.Customer)
}

func TestSetOrderStatusIsConditional(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	id := placeOrder(t, repo, "alice", models.ItemsInOrder{ItemName: "Soda", Quantity: 1})

	require.NoError(t, repo.SetOrderStatus(ctx, id, models.StatusProcessing, models.StatusOutForDelivery))
	err := repo.SetOrderStatus(ctx, id, models.StatusProcessing, models.StatusCancelled)
	assert.ErrorIs(t, err, errs.ErrStaleStatus)

	order, err := repo.Order(ctx, id, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusOutForDelivery, order.Status)
}

func TestRenameUserAndSetRole(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.RenameUser(ctx, "alice", "alice2"))
	assert.ErrorIs(t, repo.RenameUser(ctx, "alice", "x"), errs.ErrNotFound)
	assert.ErrorIs(t, repo.RenameUser(ctx, "alice2", "bob"), errs.ErrDuplicateKey)

	require.NoError(t, repo.SetRole(ctx, "alice2", models.RoleDriver))
	role, err := repo.RoleOf(ctx, "alice2")
	require.NoError(t, err)
	assert.Equal(t, models.RoleDriver, role)
	assert.ErrorIs(t, repo.SetRole(ctx, "ghost", models.RoleDriver), errs.ErrNotFound)
}

func itoa(n int) string {
	return decimal.NewFromInt(int64(n)).String()
}

package validation

import (
	"errors"
	"strings"
	"testing"

	"pizzastore/errs"
	"pizzastore/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassword(t *testing.T) {
	for n := 0; n < 10; n++ {
		pw := strings.Repeat("x", n)
		err := Password(pw)
		if n < MinPasswordLen {
			assert.ErrorIs(t, err, errs.ErrWeakPassword, "len %d", n)
		} else {
			assert.NoError(t, err, "len %d", n)
		}
	}
}

func TestPhone(t *testing.T) {
	valid := []string{"5551234567", "0000000000"}
	invalid := []string{"", "555123456", "55512345678", "555-123-456", "+555123456", "555123456a", "-555123456", "555123.456"}
	for _, p := range valid {
		assert.NoError(t, Phone(p), p)
	}
	for _, p := range invalid {
		assert.ErrorIs(t, Phone(p), errs.ErrBadPhone, p)
	}
}

func TestLogin(t *testing.T) {
	assert.NoError(t, Login("alice"))
	assert.NoError(t, Login("o'brien; DROP TABLE users;--"))
	assert.ErrorIs(t, Login(""), errs.ErrBadLogin)
	assert.ErrorIs(t, Login(" alice"), errs.ErrBadLogin)
	assert.ErrorIs(t, Login(strings.Repeat("a", MaxLoginLen+1)), errs.ErrBadLogin)
}

func TestCheckAccountReportsFirstFailingField(t *testing.T) {
	assert.NoError(t, CheckAccount(Account{Login: "alice", Password: "secret1", PhoneNum: "5551234567"}))
	assert.ErrorIs(t, CheckAccount(Account{Login: "", Password: "x", PhoneNum: "x"}), errs.ErrBadLogin)
	assert.ErrorIs(t, CheckAccount(Account{Login: "alice", Password: "short", PhoneNum: "x"}), errs.ErrWeakPassword)
	assert.ErrorIs(t, CheckAccount(Account{Login: "alice", Password: "secret1", PhoneNum: "12345"}), errs.ErrBadPhone)
}

func TestParsePrice(t *testing.T) {
	price, err := ParsePrice(" 8.00 ")
	require.NoError(t, err)
	assert.Equal(t, "8", price.String())

	price, err = ParsePrice("0")
	require.NoError(t, err)
	assert.True(t, price.IsZero())

	price, err = ParsePrice("1.25e2")
	require.NoError(t, err)
	assert.Equal(t, "125.00", price.StringFixed(2))

	price, err = ParsePrice("999999.99")
	require.NoError(t, err)
	assert.Equal(t, 999999.99, price.InexactFloat64())

	for _, bad := range []string{"", "-1", "abc", "1,50", "NaN", "Inf", "1e400", "1000000", "1e6"} {
		_, err := ParsePrice(bad)
		assert.True(t, errors.Is(err, errs.ErrBadPrice), bad)
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range models.Statuses {
		got, err := ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	for _, bad := range []string{"", "processing", "Out For Delivery", "Shipped", "Delivered'; --"} {
		_, err := ParseStatus(bad)
		assert.ErrorIs(t, err, errs.ErrInvalidStatus, bad)
	}
}

func TestParseRole(t *testing.T) {
	got, err := ParseRole("  Manager ")
	require.NoError(t, err)
	assert.Equal(t, models.RoleManager, got)

	_, err = ParseRole("admin")
	assert.ErrorIs(t, err, errs.ErrInvalidRole)
}

func TestParseItemType(t *testing.T) {
	got, err := ParseItemType("DRINKS")
	require.NoError(t, err)
	assert.Equal(t, models.TypeDrinks, got)

	_, err = ParseItemType("dessert")
	assert.ErrorIs(t, err, errs.ErrInvalidType)
}

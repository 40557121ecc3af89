package inventory

import (
	"errors"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/robinvdvleuten/beancount-core/amount"
	"github.com/robinvdvleuten/beancount-core/position"
	"github.com/shopspring/decimal"
)

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestInventory_Add(t *testing.T) {
	t.Run("MergesEqualLots", func(t *testing.T) {
		inv := New()
		inv.Add(position.NewCurrencyLot("USD"), mustDecimal("10"))
		inv.Add(position.NewCurrencyLot("USD"), mustDecimal("5.50"))

		assert.Equal(t, 1, inv.Len())
		assert.Equal(t, "15.5 USD", inv.Units("USD").String())
	})

	t.Run("KeepsDistinctLots", func(t *testing.T) {
		inv := New()
		inv.Add(position.NewLot("GOOG", amount.NewPtr(mustDecimal("500"), "USD"), time.Time{}), mustDecimal("10"))
		inv.Add(position.NewLot("GOOG", amount.NewPtr(mustDecimal("600"), "USD"), time.Time{}), mustDecimal("5"))

		assert.Equal(t, 2, inv.Len())
		assert.Equal(t, "15 GOOG", inv.Units("GOOG").String())
	})

	t.Run("RemovesZero", func(t *testing.T) {
		inv := New()
		inv.Add(position.NewCurrencyLot("USD"), mustDecimal("10"))
		inv.Add(position.NewCurrencyLot("CAD"), mustDecimal("3"))
		inv.Add(position.NewCurrencyLot("USD"), mustDecimal("-10"))

		assert.Equal(t, 1, inv.Len())
		assert.Equal(t, "Inventory(3 CAD)", inv.String())

		_, ok := inv.Get(position.NewCurrencyLot("USD"))
		assert.False(t, ok)
		p, ok := inv.Get(position.NewCurrencyLot("CAD"))
		assert.True(t, ok)
		assert.Equal(t, "3 CAD", p.String())
	})

	t.Run("IgnoresZeroInsert", func(t *testing.T) {
		inv := New()
		inv.Add(position.NewCurrencyLot("USD"), decimal.Zero)
		assert.True(t, inv.IsEmpty())
		assert.Equal(t, 0, inv.Len())
	})

	t.Run("AllowsNegative", func(t *testing.T) {
		inv := MustParse("-10 GOOG {500 USD}")
		assert.Equal(t, "Inventory(-10 GOOG {500 USD})", inv.String())
	})
}

func TestInventory_AddPosition_Provisional(t *testing.T) {
	spec := position.NewLotSpec("GOOG", nil, time.Time{}, "", true)
	err := New().AddPosition(position.New(spec, mustDecimal("1")))
	assert.True(t, errors.Is(err, position.ErrProvisionalLot))
}

func TestInventory_AddInventory(t *testing.T) {
	inv := MustParse("10 USD, 5 GOOG {500 USD}")
	inv.AddInventory(MustParse("-10 USD, 2 GOOG {500 USD}, 1 CAD"))

	assert.True(t, inv.Equal(MustParse("7 GOOG {500 USD}, 1 CAD")))
}

func TestInventory_Cost(t *testing.T) {
	inv := MustParse("10 GOOG {500 USD}, 4 HOOL {25 USD}, 100 USD, 30 CAD")

	cost := inv.Cost()
	assert.Equal(t, "Inventory(5200 USD, 30 CAD)", cost.String())

	t.Run("Idempotent", func(t *testing.T) {
		assert.True(t, cost.Cost().Equal(cost))
	})

	t.Run("DoesNotModify", func(t *testing.T) {
		assert.Equal(t, 4, inv.Len())
	})
}

func TestInventory_UnitsInventory(t *testing.T) {
	inv := MustParse("10 GOOG {500 USD}, 5 GOOG {600 USD, 2014-01-01}, 3 USD")
	assert.Equal(t, "Inventory(3 USD, 15 GOOG)", inv.UnitsInventory().String())
}

func TestInventory_Neg(t *testing.T) {
	inv := MustParse("10 GOOG {500 USD}, -3 CAD")
	neg := inv.Neg()

	assert.Equal(t, "Inventory(3 CAD, -10 GOOG {500 USD})", neg.String())

	sum := inv.Copy()
	sum.AddInventory(neg)
	assert.True(t, sum.IsEmpty())
}

func TestInventory_Copy(t *testing.T) {
	inv := MustParse("10 USD")
	cp := inv.Copy()
	cp.Add(position.NewCurrencyLot("USD"), mustDecimal("5"))

	assert.Equal(t, "10 USD", inv.Units("USD").String())
	assert.Equal(t, "15 USD", cp.Units("USD").String())
}

func TestInventory_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b *Inventory
		want bool
	}{
		{"Empty", New(), New(), true},
		{"NilAndEmpty", nil, New(), true},
		{"OrderIgnored", MustParse("1 USD, 2 CAD"), MustParse("2 CAD, 1 USD"), true},
		{"ScaleIgnored", MustParse("1.00 USD"), MustParse("1 USD"), true},
		{"DifferentNumber", MustParse("1 USD"), MustParse("2 USD"), false},
		{"DifferentLot", MustParse("1 GOOG {1 USD}"), MustParse("1 GOOG"), false},
		{"DifferentLength", MustParse("1 USD"), MustParse("1 USD, 1 CAD"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
		})
	}
}

func TestInventory_IsSmall(t *testing.T) {
	inv := MustParse("0.004 USD, -0.003 CAD")
	assert.True(t, inv.IsSmall(mustDecimal("0.005")))
	assert.False(t, inv.IsSmall(mustDecimal("0.0035")))
}

func TestInventory_Currencies(t *testing.T) {
	inv := MustParse("1 GOOG {500 USD}, 3 CAD, 2 USD, 1 AAPL")
	assert.Equal(t, []string{"USD", "CAD", "AAPL", "GOOG"}, inv.Currencies())
	assert.Equal(t, [][2]string{
		{"GOOG", "USD"},
		{"CAD", ""},
		{"USD", ""},
		{"AAPL", ""},
	}, inv.CurrencyPairs())
}

func TestInventory_Positions(t *testing.T) {
	inv := MustParse("3 CAD, 2 USD")
	positions := inv.Positions()
	assert.Equal(t, 2, len(positions))
	assert.Equal(t, "3 CAD", positions[0].String())
	assert.Equal(t, "2 USD", positions[1].String())

	sorted := inv.Sorted()
	assert.Equal(t, "2 USD", sorted[0].String())
}

func TestFromString(t *testing.T) {
	t.Run("CommasInsideCost", func(t *testing.T) {
		inv, err := FromString("10 GOOG {500 USD, 2014-01-01}, 100 USD")
		assert.NoError(t, err)
		assert.Equal(t, 2, inv.Len())
		assert.Equal(t, "Inventory(100 USD, 10 GOOG {500 USD, 2014-01-01})", inv.String())
	})

	t.Run("Empty", func(t *testing.T) {
		inv, err := FromString("")
		assert.NoError(t, err)
		assert.True(t, inv.IsEmpty())
		assert.Equal(t, "Inventory()", inv.String())
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := FromString("10 USD, bogus")
		assert.True(t, errors.Is(err, position.ErrInvalidPosition))
	})
}

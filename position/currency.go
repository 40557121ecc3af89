package position

import "strings"

// currencyOrder ranks the major currencies first, then the cross currencies.
var currencyOrder = map[string]int{
	"USD": 0,
	"EUR": 1,
	"JPY": 2,
	"CAD": 3,
	"GBP": 4,
	"AUD": 5,
	"NZD": 6,
	"CHF": 7,
}

// CurrencyRank returns the sort rank of a currency. Known currencies rank by
// the fixed table; all others rank after them, shorter symbols first.
func CurrencyRank(currency string) int {
	if rank, ok := currencyOrder[currency]; ok {
		return rank
	}
	return len(currencyOrder) + len(currency)
}

// CompareCurrencies orders two currencies by rank, breaking ties
// alphabetically.
func CompareCurrencies(a, b string) int {
	ra, rb := CurrencyRank(a), CurrencyRank(b)
	if ra < rb {
		return -1
	}
	if ra > rb {
		return 1
	}
	return strings.Compare(a, b)
}

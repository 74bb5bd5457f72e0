package calculation

import (
	"github.com/rgehrsitz/vehtax/internal/domain"
	"github.com/shopspring/decimal"
)

// lookupBracket returns the first bracket whose upper bound covers key, and its index.
// A validated table always ends with an open-ended row, so the loop always matches;
// for a malformed table the last row is used rather than failing.
func lookupBracket(table []domain.TaxBracket, key decimal.Decimal) (domain.TaxBracket, int) {
	for i, b := range table {
		if b.Contains(key) {
			return b, i
		}
	}
	if len(table) == 0 {
		return domain.TaxBracket{}, -1
	}
	return table[len(table)-1], len(table) - 1
}

// lastClosedBound returns the highest finite upper bound of a table
func lastClosedBound(table []domain.TaxBracket) decimal.Decimal {
	for i := len(table) - 1; i >= 0; i-- {
		if !table[i].IsOpenEnded() {
			return *table[i].UpperBoundInclusive
		}
	}
	return decimal.Zero
}

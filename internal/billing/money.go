package billing

import (
	"fmt"
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the ISO code balances are kept in
const Currency = money.USD

// FormatUSD renders a dollar amount for display, e.g. $1,234.50.
// Amounts are rounded half away from zero to whole cents. Values that are
// not finite, or too large to count in int64 cents, are printed plainly.
func FormatUSD(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Sprintf("$%.2f", amount)
	}

	cents := decimal.NewFromFloat(amount).Shift(2).Round(0)
	if !cents.BigInt().IsInt64() {
		return fmt.Sprintf("$%.2f", amount)
	}
	return money.New(cents.IntPart(), Currency).Display()
}

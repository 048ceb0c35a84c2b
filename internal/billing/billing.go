// Package billing applies monthly berth fees and owner payments to an inventory.
package billing

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/ngmaloney/marina-ledger/internal/inventory"
	"github.com/ngmaloney/marina-ledger/internal/models"
)

var (
	// ErrExceedsBalance is matched by payments larger than the amount owed
	ErrExceedsBalance = errors.New("payment exceeds balance")
	// ErrInvalidAmount is returned for NaN or infinite payment amounts
	ErrInvalidAmount = errors.New("invalid payment amount")
)

// OverpaymentError reports a refused payment together with the balance that
// was owed at the time.
type OverpaymentError struct {
	Name   string
	Amount float64
	Owed   float64
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment of %s for %s is more than the %s owed",
		FormatUSD(e.Amount), e.Name, FormatUSD(e.Owed))
}

func (e *OverpaymentError) Is(target error) bool {
	return target == ErrExceedsBalance
}

// AcceptPayment subtracts amount from the named boat's balance. Payments
// larger than the balance are refused and leave it unchanged.
func AcceptPayment(inv *inventory.Inventory, name string, amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}

	boat, err := inv.Lookup(name)
	if err != nil {
		return err
	}

	if math.IsNaN(boat.Owed) {
		return fmt.Errorf("%w: balance for %s is not a number", ErrInvalidAmount, boat.Name)
	}
	if amount > boat.Owed {
		return &OverpaymentError{Name: boat.Name, Amount: amount, Owed: boat.Owed}
	}

	boat.Owed -= amount
	slog.Debug("billing.payment", "boat", boat.Name, "amount", amount, "owed", boat.Owed)
	return nil
}

// MonthlyCharge returns one month's berth fee for a boat
func MonthlyCharge(b models.Boat) float64 {
	return float64(b.Length) * b.Type().MonthlyFeePerFoot()
}

// ApplyMonthlyCharge adds one month's fee to every boat and returns the
// total charged. Calling it twice in a month charges twice.
func ApplyMonthlyCharge(inv *inventory.Inventory) float64 {
	var total float64
	inv.Each(func(b *models.Boat) {
		fee := MonthlyCharge(*b)
		b.Owed += fee
		total += fee
	})
	slog.Debug("billing.monthly_charge", "boats", inv.Len(), "total", total)
	return total
}

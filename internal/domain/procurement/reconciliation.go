package procurement

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tiendapro/backend/internal/domain/shared"
)

// Pure reconciliation arithmetic. These functions have no I/O; the
// application layer feeds them freshly read payment sets and persists the
// results transactionally.

// TotalPaid sums the amounts of a payment set. Returns zero for an empty
// set.
func TotalPaid(payments []Payment) decimal.Decimal {
	total := shared.ZeroMoney()
	for _, p := range payments {
		total = total.Add(shared.NewMoney(p.Amount))
	}
	return total.Amount()
}

// RemainingBalance returns total - paid. A negative result indicates a
// prior invariant violation and is surfaced as a data-integrity error,
// never clamped to zero.
func RemainingBalance(total, paid decimal.Decimal) (decimal.Decimal, error) {
	remaining := shared.NewMoney(total).Sub(shared.NewMoney(paid))
	if remaining.IsNegative() {
		return remaining.Amount(), shared.NewIntegrityError("NEGATIVE_BALANCE",
			fmt.Sprintf("Paid amount %s exceeds purchase total %s",
				shared.NewMoney(paid), shared.NewMoney(total)))
	}
	return remaining.Amount(), nil
}

// CheckAgainstBalance verifies that applying amount does not push the paid
// total above the purchase total. The error message quotes the remaining
// balance so the caller can surface it directly.
func CheckAgainstBalance(amount, remaining decimal.Decimal) error {
	if shared.NewMoney(amount).GreaterThan(shared.NewMoney(remaining)) {
		return shared.NewValidationError("EXCEEDS_BALANCE",
			fmt.Sprintf("amount exceeds remaining balance of %s", shared.NewMoney(remaining)))
	}
	return nil
}

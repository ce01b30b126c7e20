// billing/payment.go
package billing

import "github.com/shopspring/decimal"

// PaymentValidation reports whether the payment split covers the rounded
// grand total. Difference is total minus (payments + credit): positive is
// a shortfall, negative an excess. FullCredit marks an invoice settled
// entirely against the customer's credit, which is valid only with no
// payment amounts at all.
type PaymentValidation struct {
	Valid      bool            `json:"valid"`
	FullCredit bool            `json:"fullCredit"`
	Difference decimal.Decimal `json:"difference"`
}

// ValidatePayments checks payments + credit against the rounded total.
// Negative payment amounts and negative credit count as zero.
func ValidatePayments(payments []PaymentEntry, credit, roundedTotal decimal.Decimal) PaymentValidation {
	paid := decimal.Zero
	for _, p := range payments {
		amt := p.Amount
		if amt.Sign() < 0 {
			amt = decimal.Zero
		}
		paid = paid.Add(amt)
	}
	if credit.Sign() < 0 {
		credit = decimal.Zero
	}
	diff := roundedTotal.Sub(paid.Add(credit)).Round(2)

	fullCredit := roundedTotal.Sign() > 0 && credit.Round(2).Equal(roundedTotal.Round(2))
	valid := diff.IsZero()
	if fullCredit {
		valid = paid.IsZero()
	}
	return PaymentValidation{Valid: valid, FullCredit: fullCredit, Difference: diff}
}

// RebalancePayments rescales existing payment amounts when the grand total
// changes mid-edit. Every mode but the last is scaled by newTotal/oldTotal
// and rounded; the last mode receives whatever remains, so the rebalanced
// amounts always sum to exactly the new total.
func RebalancePayments(payments []PaymentEntry, oldTotal, newTotal decimal.Decimal) []PaymentEntry {
	out := append([]PaymentEntry(nil), payments...)
	if len(out) == 0 {
		return out
	}
	if newTotal.Sign() < 0 {
		newTotal = decimal.Zero
	}

	last := len(out) - 1
	scaled := decimal.Zero
	if oldTotal.Sign() > 0 {
		ratio := newTotal.Div(oldTotal)
		for i := 0; i < last; i++ {
			out[i].Amount = out[i].Amount.Mul(ratio).Round(2)
			scaled = scaled.Add(out[i].Amount)
		}
	} else {
		for i := 0; i < last; i++ {
			out[i].Amount = decimal.Zero
		}
	}
	out[last].Amount = newTotal.Sub(scaled)
	return out
}

// ApplyCreditAmount clamps the entered credit to [0, roundedTotal] and
// redistributes the remaining payable across the existing payment modes in
// proportion to their current amounts. When no mode carries an amount yet
// the whole remainder goes to the first mode. Returns the updated payments
// and the clamped credit.
func ApplyCreditAmount(payments []PaymentEntry, credit, roundedTotal decimal.Decimal) ([]PaymentEntry, decimal.Decimal) {
	credit = clampAmount(credit.Round(2), roundedTotal)
	out := append([]PaymentEntry(nil), payments...)
	if len(out) == 0 {
		return out, credit
	}

	remaining := roundedTotal.Sub(credit)
	weights := make([]decimal.Decimal, len(out))
	allZero := true
	for i, p := range out {
		weights[i] = p.Amount
		if p.Amount.Sign() > 0 {
			allZero = false
		}
	}

	if allZero {
		for i := range out {
			out[i].Amount = decimal.Zero
		}
		out[0].Amount = remaining
		return out, credit
	}

	shares := Allocate(remaining, weights)
	for i := range out {
		out[i].Amount = shares[i]
	}
	return out, credit
}

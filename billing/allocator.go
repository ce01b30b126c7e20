// billing/allocator.go
package billing

import "github.com/shopspring/decimal"

// Allocate distributes total across the weighted buckets and returns one
// share per weight, each rounded to 2 decimals. Independent rounding can
// leave the shares short of (or over) the total by a paisa or two, so the
// residual is added to the last weighted share; the returned shares always
// sum to exactly total. A non-positive total or an all-zero weight vector
// yields all-zero shares.
func Allocate(total decimal.Decimal, weights []decimal.Decimal) []decimal.Decimal {
	shares := make([]decimal.Decimal, len(weights))
	for i := range shares {
		shares[i] = decimal.Zero
	}
	if total.Sign() <= 0 || len(weights) == 0 {
		return shares
	}

	sum := decimal.Zero
	last := -1
	for i, w := range weights {
		if w.Sign() > 0 {
			sum = sum.Add(w)
			last = i
		}
	}
	if last < 0 {
		return shares
	}

	running := decimal.Zero
	for i, w := range weights {
		if w.Sign() <= 0 {
			continue
		}
		shares[i] = w.Div(sum).Mul(total).Round(2)
		running = running.Add(shares[i])
	}

	if drift := total.Sub(running); !drift.IsZero() {
		shares[last] = shares[last].Add(drift)
	}
	return shares
}

// AllocateEligible zeroes the weight of every ineligible bucket before
// allocating, so ineligible buckets can never receive a share (including
// the drift residual).
func AllocateEligible(total decimal.Decimal, weights []decimal.Decimal, eligible []bool) []decimal.Decimal {
	filtered := make([]decimal.Decimal, len(weights))
	for i, w := range weights {
		if i < len(eligible) && eligible[i] {
			filtered[i] = w
		} else {
			filtered[i] = decimal.Zero
		}
	}
	return Allocate(total, filtered)
}

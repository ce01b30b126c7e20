// billing/discount.go
package billing

import "github.com/shopspring/decimal"

// DiscountFillState tracks who last set the discount box, so membership
// auto-fill never clobbers a value the cashier typed.
type DiscountFillState int

const (
	DiscountUnset DiscountFillState = iota
	DiscountSystemFilled
	DiscountUserOverridden
)

// AfterSystemFill is the transition taken when the engine writes the
// membership value into the discount box.
func (s DiscountFillState) AfterSystemFill() DiscountFillState {
	if s == DiscountUserOverridden {
		return s
	}
	return DiscountSystemFilled
}

// AfterUserEdit is the transition taken when the cashier edits the box.
func (s DiscountFillState) AfterUserEdit() DiscountFillState {
	return DiscountUserOverridden
}

// AllowsSystemFill reports whether auto-fill may overwrite the current value.
func (s DiscountFillState) AllowsSystemFill() bool {
	return s != DiscountUserOverridden
}

// DiscountBreakdown splits the single user-facing discount value into the
// membership portion and the additional (manual) portion, each spread
// per line.
type DiscountBreakdown struct {
	MembershipAmount decimal.Decimal
	AdditionalAmount decimal.Decimal
	MembershipShares []decimal.Decimal
	AdditionalShares []decimal.Decimal
}

// TotalAmount is the combined discount across both portions.
func (d DiscountBreakdown) TotalAmount() decimal.Decimal {
	return d.MembershipAmount.Add(d.AdditionalAmount)
}

// LineShare is the combined discount landing on line i.
func (d DiscountBreakdown) LineShare(i int) decimal.Decimal {
	share := decimal.Zero
	if i < len(d.MembershipShares) {
		share = share.Add(d.MembershipShares[i])
	}
	if i < len(d.AdditionalShares) {
		share = share.Add(d.AdditionalShares[i])
	}
	return share
}

// ResolveDiscount turns the discount box value into membership and
// additional amounts and spreads both per line.
//
// While the membership is applied the box shows a combined value: in
// percent mode the combined percent, in fixed mode the combined amount.
// The membership portion only ever touches service lines; the additional
// portion spreads over every line. A fixed input below the membership
// amount clamps the additional portion to zero and leaves the membership
// amount whole.
func ResolveDiscount(state InvoiceState) DiscountBreakdown {
	weights := make([]decimal.Decimal, len(state.Lines))
	eligible := make([]bool, len(state.Lines))
	totalGross := decimal.Zero
	serviceGross := decimal.Zero
	for i, line := range state.Lines {
		weights[i] = line.Gross()
		totalGross = totalGross.Add(weights[i])
		if line.Category == CategoryService {
			eligible[i] = true
			serviceGross = serviceGross.Add(weights[i])
		}
	}

	membershipPercent := decimal.Zero
	if state.MembershipApplied {
		membershipPercent = clampPercent(state.MembershipPercent)
	}
	membershipAmount := serviceGross.Mul(membershipPercent).Div(hundred).Round(2)

	input := parseAmount(state.DiscountInput)
	additionalAmount := decimal.Zero
	switch state.DiscountType {
	case DiscountTypeFixed:
		combined := clampAmount(input, totalGross)
		additionalAmount = combined.Sub(membershipAmount)
		if additionalAmount.Sign() < 0 {
			additionalAmount = decimal.Zero
		}
	default: // percent
		combined := clampPercent(input)
		additionalPercent := combined.Sub(membershipPercent)
		if additionalPercent.Sign() < 0 {
			additionalPercent = decimal.Zero
		}
		additionalAmount = additionalPercent.Mul(totalGross).Div(hundred).Round(2)
	}

	return DiscountBreakdown{
		MembershipAmount: membershipAmount,
		AdditionalAmount: additionalAmount,
		MembershipShares: AllocateEligible(membershipAmount, weights, eligible),
		AdditionalShares: Allocate(additionalAmount, weights),
	}
}

// ConvertDiscountInput recomputes the displayed combined value when the
// cashier flips the discount type, so switching percent to fixed and back
// never changes the effective discount. Pure function of current state.
func ConvertDiscountInput(value decimal.Decimal, from, to DiscountType, membershipPercent decimal.Decimal, membershipApplied bool, totalGross, serviceGross decimal.Decimal) decimal.Decimal {
	if from == to {
		return value
	}
	mp := decimal.Zero
	if membershipApplied {
		mp = clampPercent(membershipPercent)
	}
	membershipAmount := serviceGross.Mul(mp).Div(hundred).Round(2)

	if from == DiscountTypePercent {
		combined := clampPercent(value)
		additionalPercent := combined.Sub(mp)
		if additionalPercent.Sign() < 0 {
			additionalPercent = decimal.Zero
		}
		additional := additionalPercent.Mul(totalGross).Div(hundred).Round(2)
		return membershipAmount.Add(additional)
	}

	// fixed -> percent
	combined := clampAmount(value, totalGross)
	additional := combined.Sub(membershipAmount)
	if additional.Sign() < 0 {
		additional = decimal.Zero
	}
	if totalGross.Sign() <= 0 {
		return mp
	}
	return additional.Div(totalGross).Mul(hundred).Add(mp).Round(2)
}

// StripMembershipPortion removes the membership portion from the displayed
// combined value when the membership toggle is switched off, so the
// membership discount is never left silently folded into the manual one.
func StripMembershipPortion(value decimal.Decimal, dtype DiscountType, membershipPercent, serviceGross decimal.Decimal) decimal.Decimal {
	mp := clampPercent(membershipPercent)
	var portion decimal.Decimal
	if dtype == DiscountTypeFixed {
		portion = serviceGross.Mul(mp).Div(hundred).Round(2)
	} else {
		portion = mp
	}
	stripped := value.Sub(portion)
	if stripped.Sign() < 0 {
		return decimal.Zero
	}
	return stripped
}

// SystemFillValue is what auto-fill writes into the discount box when a
// membership is applied and the box is not user-owned: the membership
// percent, or its fixed-amount equivalent.
func SystemFillValue(dtype DiscountType, membershipPercent, serviceGross decimal.Decimal) decimal.Decimal {
	mp := clampPercent(membershipPercent)
	if dtype == DiscountTypeFixed {
		return serviceGross.Mul(mp).Div(hundred).Round(2)
	}
	return mp
}

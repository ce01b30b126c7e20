// billing/engine.go
package billing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Summary is the invoice-level financial breakdown.
type Summary struct {
	Subtotal           decimal.Decimal `json:"subtotal"`
	MembershipDiscount decimal.Decimal `json:"membershipDiscount"`
	AdditionalDiscount decimal.Decimal `json:"additionalDiscount"`
	TaxableAmount      decimal.Decimal `json:"taxableAmount"`
	CGSTTotal          decimal.Decimal `json:"cgstTotal"`
	SGSTTotal          decimal.Decimal `json:"sgstTotal"`
	IGSTTotal          decimal.Decimal `json:"igstTotal"`
	TaxAmount          decimal.Decimal `json:"taxAmount"`
	RoundOff           decimal.Decimal `json:"roundOff"`
	GrandTotal         decimal.Decimal `json:"grandTotal"`
}

// MissingStaffSlot identifies a staff slot still empty on a line that
// requires one.
type MissingStaffSlot struct {
	LineIndex int    `json:"lineIndex"`
	Slot      int    `json:"slot"`
	LineName  string `json:"lineName"`
}

// Validation collects everything that blocks finalization. Pricing always
// succeeds regardless, so partial totals stay displayable.
type Validation struct {
	MissingStaff            []MissingStaffSlot `json:"missingStaff"`
	Payment                 PaymentValidation  `json:"payment"`
	NeedsCreditConfirmation bool               `json:"needsCreditConfirmation"`
}

// CanFinalize reports whether the invoice may be finalized as-is.
func (v Validation) CanFinalize() bool {
	return len(v.MissingStaff) == 0 && v.Payment.Valid && !v.NeedsCreditConfirmation
}

// Result is the full output of one recomputation pass.
type Result struct {
	Lines      []ComputedLine    `json:"lines"`
	Discount   DiscountBreakdown `json:"-"`
	Summary    Summary           `json:"summary"`
	Validation Validation        `json:"validation"`
}

// Recompute derives the complete financial breakdown from the current form
// state. It is the single entry point for every trigger (line edit,
// discount change, toggle, staff change, payment entry): pure, idempotent,
// and O(lines), so callers just rerun it on any change. Drift correction
// follows display order, so reordering lines moves which line absorbs a
// paisa but never changes any total.
func Recompute(state InvoiceState, cat Catalogs) Result {
	lines := make([]LineItem, len(state.Lines))
	for i, line := range state.Lines {
		synced := SyncAssignments(line, StaffAssignment{})
		if synced.UnitPrice.Sign() < 0 {
			synced.UnitPrice = decimal.Zero
		}
		lines[i] = synced
	}
	state.Lines = lines

	disc := ResolveDiscount(state)
	taxes := ComputeTaxes(lines, disc, cat, state.Exemptions, state.LockedTax)

	computed := make([]ComputedLine, len(lines))
	summary := Summary{
		Subtotal:           decimal.Zero,
		MembershipDiscount: disc.MembershipAmount,
		AdditionalDiscount: disc.AdditionalAmount,
		TaxableAmount:      decimal.Zero,
		CGSTTotal:          decimal.Zero,
		SGSTTotal:          decimal.Zero,
		IGSTTotal:          decimal.Zero,
		TaxAmount:          decimal.Zero,
	}
	for i, line := range lines {
		membership := decimal.Zero
		if i < len(disc.MembershipShares) {
			membership = disc.MembershipShares[i]
		}
		additional := decimal.Zero
		if i < len(disc.AdditionalShares) {
			additional = disc.AdditionalShares[i]
		}
		computed[i] = ComputedLine{
			LineItem:        line,
			Gross:           line.Gross(),
			MembershipShare: membership,
			AdditionalShare: additional,
			Tax:             taxes[i],
		}
		summary.Subtotal = summary.Subtotal.Add(computed[i].Gross)
		summary.TaxableAmount = summary.TaxableAmount.Add(taxes[i].TaxableAmount)
		summary.CGSTTotal = summary.CGSTTotal.Add(taxes[i].CGST)
		summary.SGSTTotal = summary.SGSTTotal.Add(taxes[i].SGST)
		summary.IGSTTotal = summary.IGSTTotal.Add(taxes[i].IGST)
		summary.TaxAmount = summary.TaxAmount.Add(taxes[i].TaxAmount)
	}

	exact := summary.TaxableAmount.Add(summary.TaxAmount)
	summary.GrandTotal = exact.Round(0)
	summary.RoundOff = summary.GrandTotal.Sub(exact).Round(2)

	validation := Validation{
		Payment: ValidatePayments(state.Payments, state.CreditAmount, summary.GrandTotal),
	}
	for i, line := range lines {
		if line.Category == CategoryProduct {
			continue
		}
		for slot, sa := range line.StaffAssignments {
			if sa.StaffID == uuid.Nil {
				validation.MissingStaff = append(validation.MissingStaff, MissingStaffSlot{
					LineIndex: i,
					Slot:      slot,
					LineName:  line.Name,
				})
			}
		}
	}
	validation.NeedsCreditConfirmation = validation.Payment.FullCredit && !state.CreditConfirmed

	return Result{
		Lines:      computed,
		Discount:   disc,
		Summary:    summary,
		Validation: validation,
	}
}

// ExpandForPersistence expands the computed lines of a finalized invoice
// into unit records.
func (r Result) ExpandForPersistence() []UnitRecord {
	return ExpandLines(r.Lines)
}

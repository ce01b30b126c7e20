package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mirrors a worked example from the billing form: one service, qty 2,
// base 500 with a 10% staff markup, 20% membership, a fixed "320" in the
// discount box and an 18% combined rate.
func TestRecomputeWorkedExample(t *testing.T) {
	senior := uuid.New()
	cat := Catalogs{
		StaffRates: map[uuid.UUID]StaffRate{senior: {MarkupPercent: d("10")}},
	}
	staff := StaffAssignment{StaffID: senior, StaffName: "Senior"}

	line := pricedServiceLine("Spa", 2, "500")
	line.TaxRatePercent = d("18")
	line = SyncAssignments(line, staff)
	line = AssignStaff(line, 0, staff, cat.StaffRates)
	require.True(t, line.UnitPrice.Equal(d("550")))

	state := InvoiceState{
		Lines:             []LineItem{line},
		DiscountType:      DiscountTypeFixed,
		DiscountInput:     "320",
		MembershipPercent: d("20"),
		MembershipApplied: true,
	}

	res := Recompute(state, cat)
	s := res.Summary

	assert.True(t, s.Subtotal.Equal(d("1100")), "subtotal %s", s.Subtotal)
	assert.True(t, s.MembershipDiscount.Equal(d("220")), "membership %s", s.MembershipDiscount)
	assert.True(t, s.AdditionalDiscount.Equal(d("100")), "additional %s", s.AdditionalDiscount)
	assert.True(t, s.TaxableAmount.Equal(d("780")), "taxable %s", s.TaxableAmount)
	assert.True(t, s.CGSTTotal.Equal(d("70.20")), "cgst %s", s.CGSTTotal)
	assert.True(t, s.SGSTTotal.Equal(d("70.20")), "sgst %s", s.SGSTTotal)
	assert.True(t, s.TaxAmount.Equal(d("140.40")), "tax %s", s.TaxAmount)
	assert.True(t, s.GrandTotal.Equal(d("920")), "grand total %s", s.GrandTotal)
	assert.True(t, s.RoundOff.Equal(d("-0.40")), "round off %s", s.RoundOff)
}

func TestRecomputeIsIdempotent(t *testing.T) {
	state := InvoiceState{
		Lines: []LineItem{
			serviceLine("Haircut", 2, "350.50"),
			productLine("Shampoo", 1, "449.99"),
		},
		DiscountType:      DiscountTypePercent,
		DiscountInput:     "12.5",
		MembershipPercent: d("10"),
		MembershipApplied: true,
	}
	state.Lines[0].TaxRatePercent = d("18")
	state.Lines[1].TaxRatePercent = d("12")

	first := Recompute(state, Catalogs{})
	second := Recompute(state, Catalogs{})
	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, first.Lines, second.Lines)
}

func TestRecomputeValidation(t *testing.T) {
	t.Run("empty staff slots block finalization but not pricing", func(t *testing.T) {
		line := serviceLine("Haircut", 2, "500")
		line.TaxRatePercent = d("18")
		state := InvoiceState{Lines: []LineItem{line}}

		res := Recompute(state, Catalogs{})
		require.Len(t, res.Validation.MissingStaff, 2)
		assert.Equal(t, 0, res.Validation.MissingStaff[0].LineIndex)
		assert.False(t, res.Validation.CanFinalize())
		// Totals still computed for display.
		assert.True(t, res.Summary.Subtotal.Equal(d("1000")))
	})

	t.Run("product lines never demand staff", func(t *testing.T) {
		state := InvoiceState{Lines: []LineItem{productLine("Shampoo", 3, "100")}}
		res := Recompute(state, Catalogs{})
		assert.Empty(t, res.Validation.MissingStaff)
	})

	t.Run("full credit requires confirmation before finalizing", func(t *testing.T) {
		staff := StaffAssignment{StaffID: uuid.New(), StaffName: "Alice"}
		line := serviceLine("Haircut", 1, "500")
		line.StaffAssignments = []StaffAssignment{staff}
		state := InvoiceState{
			Lines:        []LineItem{line},
			CreditAmount: d("500"),
		}

		res := Recompute(state, Catalogs{})
		require.True(t, res.Validation.Payment.FullCredit)
		assert.True(t, res.Validation.NeedsCreditConfirmation)
		assert.False(t, res.Validation.CanFinalize())

		state.CreditConfirmed = true
		res = Recompute(state, Catalogs{})
		assert.False(t, res.Validation.NeedsCreditConfirmation)
		assert.True(t, res.Validation.CanFinalize())
	})

	t.Run("payment mismatch carries the shortfall", func(t *testing.T) {
		staff := StaffAssignment{StaffID: uuid.New(), StaffName: "Alice"}
		line := serviceLine("Haircut", 1, "500")
		line.StaffAssignments = []StaffAssignment{staff}
		state := InvoiceState{
			Lines:    []LineItem{line},
			Payments: []PaymentEntry{pay("Cash", "300")},
		}

		res := Recompute(state, Catalogs{})
		assert.False(t, res.Validation.Payment.Valid)
		assert.True(t, res.Validation.Payment.Difference.Equal(d("200")))
	})
}

func TestRecomputeLockedTax(t *testing.T) {
	staff := StaffAssignment{StaffID: uuid.New(), StaffName: "Alice"}
	a := serviceLine("Facial", 1, "300")
	b := serviceLine("Spa", 1, "700")
	a.StaffAssignments = []StaffAssignment{staff}
	b.StaffAssignments = []StaffAssignment{staff}
	a.TaxRatePercent = d("18")
	b.TaxRatePercent = d("18")

	state := InvoiceState{
		Lines:     []LineItem{a, b},
		LockedTax: &LockedTaxSummary{CGST: d("45"), SGST: d("45"), Total: d("1090")},
	}

	res := Recompute(state, Catalogs{})
	assert.True(t, res.Summary.CGSTTotal.Equal(d("45")))
	assert.True(t, res.Summary.SGSTTotal.Equal(d("45")))
	assert.True(t, res.Summary.IGSTTotal.IsZero())
	assert.True(t, res.Summary.TaxAmount.Equal(d("90")))
	assert.True(t, res.Summary.GrandTotal.Equal(d("1090")))
}

func TestRecomputeDropsZeroQuantitySlots(t *testing.T) {
	// A quantity edit before recompute must re-sync slot counts.
	staff := StaffAssignment{StaffID: uuid.New(), StaffName: "Alice"}
	line := serviceLine("Haircut", 1, "500")
	line.StaffAssignments = []StaffAssignment{staff, staff, staff}
	state := InvoiceState{Lines: []LineItem{line}}

	res := Recompute(state, Catalogs{})
	assert.Len(t, res.Lines[0].StaffAssignments, 1)
}

func TestExpandForPersistenceRoundTrip(t *testing.T) {
	staff := StaffAssignment{StaffID: uuid.New(), StaffName: "Alice"}
	line := serviceLine("Spa", 3, "366.67")
	line.StaffAssignments = []StaffAssignment{staff, staff, staff}
	line.TaxRatePercent = d("18")
	state := InvoiceState{
		Lines:         []LineItem{line},
		DiscountType:  DiscountTypeFixed,
		DiscountInput: "100",
	}

	res := Recompute(state, Catalogs{})
	units := res.ExpandForPersistence()
	require.Len(t, units, 3)

	grouped := GroupUnits(units)
	require.Len(t, grouped, 1)
	assert.Equal(t, 3, grouped[0].Quantity)
	assert.True(t, grouped[0].TaxableAmount.Equal(res.Summary.TaxableAmount))
	assert.True(t, grouped[0].TaxAmount.Equal(res.Summary.TaxAmount))
	assert.True(t, grouped[0].DiscountAmount.Equal(res.Discount.TotalAmount()))
}

func TestSummaryRoundOff(t *testing.T) {
	line := productLine("Serum", 1, "100.30")
	state := InvoiceState{Lines: []LineItem{line}}

	res := Recompute(state, Catalogs{})
	assert.True(t, res.Summary.GrandTotal.Equal(d("100")))
	assert.True(t, res.Summary.RoundOff.Equal(d("-0.30")))
}

func TestRecomputeClampsNegativeUnitPrice(t *testing.T) {
	staff := StaffAssignment{StaffID: uuid.New(), StaffName: "Alice"}
	line := serviceLine("Haircut", 2, "-500")
	line.StaffAssignments = []StaffAssignment{staff, staff}
	line.TaxRatePercent = d("18")
	state := InvoiceState{Lines: []LineItem{line}}

	res := Recompute(state, Catalogs{})

	assert.True(t, res.Summary.Subtotal.IsZero(), "subtotal %s", res.Summary.Subtotal)
	assert.True(t, res.Summary.GrandTotal.IsZero())
	require.Len(t, res.Lines, 1)
	assert.True(t, res.Lines[0].UnitPrice.IsZero())

	units := res.ExpandForPersistence()
	for _, u := range units {
		assert.False(t, u.UnitPrice.IsNegative())
		assert.False(t, u.TaxableAmount.IsNegative())
	}
}

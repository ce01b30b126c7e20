package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serviceLine(name string, qty int, unitPrice string) LineItem {
	return LineItem{
		ID:        uuid.New(),
		CatalogID: uuid.New(),
		Name:      name,
		Category:  CategoryService,
		Quantity:  qty,
		UnitPrice: d(unitPrice),
	}
}

func productLine(name string, qty int, unitPrice string) LineItem {
	return LineItem{
		ID:        uuid.New(),
		CatalogID: uuid.New(),
		Name:      name,
		Category:  CategoryProduct,
		Quantity:  qty,
		UnitPrice: d(unitPrice),
	}
}

func TestResolveDiscount(t *testing.T) {
	t.Run("membership discount touches service lines only", func(t *testing.T) {
		state := InvoiceState{
			Lines: []LineItem{
				serviceLine("Haircut", 1, "1000"),
				productLine("Shampoo", 1, "500"),
			},
			DiscountType:      DiscountTypePercent,
			DiscountInput:     "20",
			MembershipPercent: d("20"),
			MembershipApplied: true,
		}
		disc := ResolveDiscount(state)

		assert.True(t, disc.MembershipAmount.Equal(d("200")), "got %s", disc.MembershipAmount)
		assert.True(t, disc.MembershipShares[0].Equal(d("200")))
		assert.True(t, disc.MembershipShares[1].IsZero())
		// Input equals the membership percent, so no additional discount.
		assert.True(t, disc.AdditionalAmount.IsZero())
	})

	t.Run("percent input above membership yields additional across all lines", func(t *testing.T) {
		state := InvoiceState{
			Lines: []LineItem{
				serviceLine("Haircut", 1, "600"),
				productLine("Shampoo", 1, "400"),
			},
			DiscountType:      DiscountTypePercent,
			DiscountInput:     "15",
			MembershipPercent: d("10"),
			MembershipApplied: true,
		}
		disc := ResolveDiscount(state)

		assert.True(t, disc.MembershipAmount.Equal(d("60")))
		// 5% of the 1000 total gross.
		assert.True(t, disc.AdditionalAmount.Equal(d("50")), "got %s", disc.AdditionalAmount)
		assert.True(t, disc.AdditionalShares[0].Equal(d("30")))
		assert.True(t, disc.AdditionalShares[1].Equal(d("20")))
	})

	t.Run("fixed input is a combined amount with a membership floor", func(t *testing.T) {
		state := InvoiceState{
			Lines:             []LineItem{serviceLine("Spa", 2, "550")},
			DiscountType:      DiscountTypeFixed,
			DiscountInput:     "320",
			MembershipPercent: d("20"),
			MembershipApplied: true,
		}
		disc := ResolveDiscount(state)

		assert.True(t, disc.MembershipAmount.Equal(d("220")))
		assert.True(t, disc.AdditionalAmount.Equal(d("100")))
	})

	t.Run("fixed input below the membership floor clamps additional to zero", func(t *testing.T) {
		state := InvoiceState{
			Lines:             []LineItem{serviceLine("Spa", 1, "1000")},
			DiscountType:      DiscountTypeFixed,
			DiscountInput:     "150",
			MembershipPercent: d("20"),
			MembershipApplied: true,
		}
		disc := ResolveDiscount(state)

		assert.True(t, disc.MembershipAmount.Equal(d("200")))
		assert.True(t, disc.AdditionalAmount.IsZero())
	})

	t.Run("fixed input is capped by the gross amount", func(t *testing.T) {
		state := InvoiceState{
			Lines:         []LineItem{productLine("Oil", 1, "300")},
			DiscountType:  DiscountTypeFixed,
			DiscountInput: "99999",
		}
		disc := ResolveDiscount(state)
		assert.True(t, disc.AdditionalAmount.Equal(d("300")))
	})

	t.Run("garbage input clamps to zero", func(t *testing.T) {
		state := InvoiceState{
			Lines:         []LineItem{serviceLine("Haircut", 1, "500")},
			DiscountType:  DiscountTypeFixed,
			DiscountInput: "abc",
		}
		disc := ResolveDiscount(state)
		assert.True(t, disc.TotalAmount().IsZero())
	})

	t.Run("unapplied membership contributes nothing", func(t *testing.T) {
		state := InvoiceState{
			Lines:             []LineItem{serviceLine("Haircut", 1, "500")},
			DiscountType:      DiscountTypePercent,
			DiscountInput:     "10",
			MembershipPercent: d("20"),
			MembershipApplied: false,
		}
		disc := ResolveDiscount(state)
		assert.True(t, disc.MembershipAmount.IsZero())
		assert.True(t, disc.AdditionalAmount.Equal(d("50")))
	})
}

func TestConvertDiscountInput(t *testing.T) {
	totalGross := d("1000")
	serviceGross := d("600")

	t.Run("percent to fixed and back reproduces the percent", func(t *testing.T) {
		original := d("25")
		fixed := ConvertDiscountInput(original, DiscountTypePercent, DiscountTypeFixed, d("10"), true, totalGross, serviceGross)
		back := ConvertDiscountInput(fixed, DiscountTypeFixed, DiscountTypePercent, d("10"), true, totalGross, serviceGross)
		diff := back.Sub(original).Abs()
		assert.True(t, diff.LessThanOrEqual(d("0.01")), "round trip drifted to %s", back)
	})

	t.Run("percent to fixed includes the membership amount", func(t *testing.T) {
		fixed := ConvertDiscountInput(d("10"), DiscountTypePercent, DiscountTypeFixed, d("10"), true, totalGross, serviceGross)
		// Membership amount alone: 10% of 600.
		assert.True(t, fixed.Equal(d("60")), "got %s", fixed)
	})

	t.Run("fixed to percent with zero gross falls back to the membership percent", func(t *testing.T) {
		pct := ConvertDiscountInput(d("50"), DiscountTypeFixed, DiscountTypePercent, d("10"), true, decimal.Zero, decimal.Zero)
		assert.True(t, pct.Equal(d("10")))
	})

	t.Run("same type is a no-op", func(t *testing.T) {
		v := ConvertDiscountInput(d("42"), DiscountTypePercent, DiscountTypePercent, d("10"), true, totalGross, serviceGross)
		assert.True(t, v.Equal(d("42")))
	})
}

func TestStripMembershipPortion(t *testing.T) {
	t.Run("percent mode subtracts the membership percent", func(t *testing.T) {
		v := StripMembershipPortion(d("25"), DiscountTypePercent, d("20"), d("1000"))
		assert.True(t, v.Equal(d("5")))
	})

	t.Run("fixed mode subtracts the membership amount", func(t *testing.T) {
		v := StripMembershipPortion(d("320"), DiscountTypeFixed, d("20"), d("1100"))
		assert.True(t, v.Equal(d("100")))
	})

	t.Run("never goes negative", func(t *testing.T) {
		v := StripMembershipPortion(d("5"), DiscountTypePercent, d("20"), d("1000"))
		assert.True(t, v.IsZero())
	})
}

func TestDiscountFillState(t *testing.T) {
	t.Run("system fill owns the box until the user edits", func(t *testing.T) {
		s := DiscountUnset
		s = s.AfterSystemFill()
		require.Equal(t, DiscountSystemFilled, s)
		assert.True(t, s.AllowsSystemFill())

		s = s.AfterUserEdit()
		require.Equal(t, DiscountUserOverridden, s)
		assert.False(t, s.AllowsSystemFill())
	})

	t.Run("system fill never reclaims a user-owned box", func(t *testing.T) {
		s := DiscountUserOverridden.AfterSystemFill()
		assert.Equal(t, DiscountUserOverridden, s)
	})
}

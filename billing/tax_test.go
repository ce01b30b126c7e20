package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRates(t *testing.T) {
	gstID := uuid.New()
	groups := map[uuid.UUID]TaxGroup{
		gstID: {CGSTPercent: d("9"), SGSTPercent: d("9"), IGSTPercent: d("0")},
	}

	t.Run("linked tax group wins", func(t *testing.T) {
		line := serviceLine("Haircut", 1, "100")
		line.TaxGroupID = gstID
		line.TaxRatePercent = d("5")
		cgst, sgst, igst := ResolveRates(line, groups, Exemptions{})
		assert.True(t, cgst.Equal(d("9")))
		assert.True(t, sgst.Equal(d("9")))
		assert.True(t, igst.IsZero())
	})

	t.Run("missing group falls back to an even split of the combined rate", func(t *testing.T) {
		line := serviceLine("Haircut", 1, "100")
		line.TaxGroupID = uuid.New() // not in the table
		line.TaxRatePercent = d("18")
		cgst, sgst, igst := ResolveRates(line, groups, Exemptions{})
		assert.True(t, cgst.Equal(d("9")))
		assert.True(t, sgst.Equal(d("9")))
		assert.True(t, igst.IsZero())
	})

	t.Run("no link and no combined rate means zero tax", func(t *testing.T) {
		line := serviceLine("Haircut", 1, "100")
		cgst, sgst, igst := ResolveRates(line, groups, Exemptions{})
		assert.True(t, cgst.IsZero())
		assert.True(t, sgst.IsZero())
		assert.True(t, igst.IsZero())
	})

	t.Run("category exemption beats catalog data", func(t *testing.T) {
		line := productLine("Shampoo", 1, "100")
		line.TaxGroupID = gstID
		cgst, sgst, _ := ResolveRates(line, groups, Exemptions{Products: true})
		assert.True(t, cgst.IsZero())
		assert.True(t, sgst.IsZero())
	})

	t.Run("package exemption leaves services taxed", func(t *testing.T) {
		line := serviceLine("Haircut", 1, "100")
		line.TaxGroupID = gstID
		cgst, _, _ := ResolveRates(line, groups, Exemptions{Packages: true})
		assert.True(t, cgst.Equal(d("9")))
	})
}

func TestComputeTaxes(t *testing.T) {
	t.Run("taxable base is gross minus discount shares floored at zero", func(t *testing.T) {
		line := serviceLine("Spa", 2, "550")
		line.TaxRatePercent = d("18")
		disc := DiscountBreakdown{
			MembershipShares: ds("220"),
			AdditionalShares: ds("100"),
		}
		taxes := ComputeTaxes([]LineItem{line}, disc, Catalogs{}, Exemptions{}, nil)
		require.Len(t, taxes, 1)
		assert.True(t, taxes[0].TaxableAmount.Equal(d("780")))
		assert.True(t, taxes[0].CGST.Equal(d("70.20")), "got %s", taxes[0].CGST)
		assert.True(t, taxes[0].SGST.Equal(d("70.20")))
		assert.True(t, taxes[0].TaxAmount.Equal(d("140.40")))
	})

	t.Run("discount larger than gross floors the base at zero", func(t *testing.T) {
		line := serviceLine("Trim", 1, "100")
		line.TaxRatePercent = d("18")
		disc := DiscountBreakdown{AdditionalShares: ds("150")}
		taxes := ComputeTaxes([]LineItem{line}, disc, Catalogs{}, Exemptions{}, nil)
		assert.True(t, taxes[0].TaxableAmount.IsZero())
		assert.True(t, taxes[0].TaxAmount.IsZero())
	})

	t.Run("locked mode allocates the external totals over taxable bases", func(t *testing.T) {
		a := serviceLine("Facial", 1, "300")
		b := serviceLine("Spa", 1, "700")
		a.TaxRatePercent = d("18") // must be ignored in locked mode
		locked := &LockedTaxSummary{CGST: d("45"), SGST: d("45"), Total: d("1090")}
		taxes := ComputeTaxes([]LineItem{a, b}, DiscountBreakdown{}, Catalogs{}, Exemptions{}, locked)

		assert.True(t, taxes[0].CGST.Equal(d("13.50")), "got %s", taxes[0].CGST)
		assert.True(t, taxes[1].CGST.Equal(d("31.50")))
		assert.True(t, taxes[0].SGST.Equal(d("13.50")))
		assert.True(t, taxes[1].SGST.Equal(d("31.50")))
		assert.True(t, taxes[0].IGST.IsZero())
		assert.True(t, taxes[1].IGST.IsZero())

		total := taxes[0].TaxAmount.Add(taxes[1].TaxAmount)
		assert.True(t, total.Equal(d("90")))
	})

	t.Run("global exemption zeroes taxes even in locked mode", func(t *testing.T) {
		line := serviceLine("Spa", 1, "500")
		locked := &LockedTaxSummary{CGST: d("45"), SGST: d("45")}
		taxes := ComputeTaxes([]LineItem{line}, DiscountBreakdown{}, Catalogs{}, Exemptions{All: true}, locked)
		assert.True(t, taxes[0].TaxAmount.IsZero())
		assert.True(t, taxes[0].TaxableAmount.Equal(d("500")))
	})
}

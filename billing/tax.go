// billing/tax.go
package billing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineTax is the computed tax block for one line.
type LineTax struct {
	TaxableAmount decimal.Decimal `json:"taxableAmount"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`
	IGST          decimal.Decimal `json:"igst"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`
}

func exemptCategory(cat Category, ex Exemptions) bool {
	if ex.All {
		return true
	}
	if ex.Packages && cat == CategoryPackage {
		return true
	}
	if ex.Products && cat == CategoryProduct {
		return true
	}
	return false
}

// ResolveRates returns the CGST/SGST/IGST percents for a line. The tax
// group wins when linked and present; otherwise a denormalized combined
// rate is split evenly into CGST/SGST. Exempt categories always get zero,
// and a missing tax-group row degrades to the fallback, never an error.
func ResolveRates(line LineItem, groups map[uuid.UUID]TaxGroup, ex Exemptions) (cgst, sgst, igst decimal.Decimal) {
	if exemptCategory(line.Category, ex) {
		return decimal.Zero, decimal.Zero, decimal.Zero
	}
	if line.TaxGroupID != uuid.Nil {
		if g, ok := groups[line.TaxGroupID]; ok {
			return g.CGSTPercent, g.SGSTPercent, g.IGSTPercent
		}
	}
	if line.TaxRatePercent.IsPositive() {
		half := line.TaxRatePercent.Div(two)
		return half, half, decimal.Zero
	}
	return decimal.Zero, decimal.Zero, decimal.Zero
}

// ComputeTaxes produces one LineTax per line.
//
// Normal mode resolves per-line rates and applies them to the taxable base
// (gross minus the line's discount shares, floored at zero). Locked mode
// ignores per-line rates and spreads the externally supplied CGST/SGST
// totals across the taxable bases instead, with IGST forced to zero. The
// global exemption wins over both modes.
func ComputeTaxes(lines []LineItem, disc DiscountBreakdown, cat Catalogs, ex Exemptions, locked *LockedTaxSummary) []LineTax {
	taxes := make([]LineTax, len(lines))
	bases := make([]decimal.Decimal, len(lines))
	for i, line := range lines {
		base := line.Gross().Sub(disc.LineShare(i))
		if base.Sign() < 0 {
			base = decimal.Zero
		}
		bases[i] = base
		taxes[i] = LineTax{
			TaxableAmount: base,
			CGST:          decimal.Zero,
			SGST:          decimal.Zero,
			IGST:          decimal.Zero,
			TaxAmount:     decimal.Zero,
		}
	}

	if ex.All {
		return taxes
	}

	if locked != nil {
		cgstShares := Allocate(locked.CGST, bases)
		sgstShares := Allocate(locked.SGST, bases)
		for i := range taxes {
			taxes[i].CGST = cgstShares[i]
			taxes[i].SGST = sgstShares[i]
			taxes[i].TaxAmount = cgstShares[i].Add(sgstShares[i])
		}
		return taxes
	}

	for i, line := range lines {
		cgstPct, sgstPct, igstPct := ResolveRates(line, cat.TaxGroups, ex)
		taxes[i].CGST = bases[i].Mul(cgstPct).Div(hundred).Round(2)
		taxes[i].SGST = bases[i].Mul(sgstPct).Div(hundred).Round(2)
		taxes[i].IGST = bases[i].Mul(igstPct).Div(hundred).Round(2)
		taxes[i].TaxAmount = taxes[i].CGST.Add(taxes[i].SGST).Add(taxes[i].IGST)
	}
	return taxes
}

var two = decimal.NewFromInt(2)

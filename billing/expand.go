// billing/expand.go
package billing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnitRecord is one persistence-ready row. Service and package lines are
// expanded into quantity-1 records, one per staff slot, each carrying a
// proportional share of the line's money columns; product lines pass
// through with their quantity intact.
type UnitRecord struct {
	CatalogID      uuid.UUID       `json:"catalogId"`
	Name           string          `json:"name"`
	Category       Category        `json:"category"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	StaffID        uuid.UUID       `json:"staffId"`
	StaffName      string          `json:"staffName"`
	TaxableAmount  decimal.Decimal `json:"taxableAmount"`
	CGST           decimal.Decimal `json:"cgst"`
	SGST           decimal.Decimal `json:"sgst"`
	IGST           decimal.Decimal `json:"igst"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
}

// ComputedLine pairs a line with the amounts the engine derived for it.
type ComputedLine struct {
	LineItem
	Gross           decimal.Decimal `json:"gross"`
	MembershipShare decimal.Decimal `json:"membershipShare"`
	AdditionalShare decimal.Decimal `json:"additionalShare"`
	Tax             LineTax         `json:"tax"`
}

// DiscountAmount is the combined discount landing on this line.
func (c ComputedLine) DiscountAmount() decimal.Decimal {
	return c.MembershipShare.Add(c.AdditionalShare)
}

// ExpandLine converts one computed line into its persistence rows.
// Equal-weight allocation puts the rounding residual of every money column
// on the final unit, so summing the units reconstructs the line exactly.
func ExpandLine(cl ComputedLine) []UnitRecord {
	if cl.Quantity <= 0 {
		return nil
	}

	if cl.Category == CategoryProduct {
		rec := UnitRecord{
			CatalogID:      cl.CatalogID,
			Name:           cl.Name,
			Category:       cl.Category,
			Quantity:       cl.Quantity,
			UnitPrice:      cl.UnitPrice,
			TaxableAmount:  cl.Tax.TaxableAmount,
			CGST:           cl.Tax.CGST,
			SGST:           cl.Tax.SGST,
			IGST:           cl.Tax.IGST,
			DiscountAmount: cl.DiscountAmount(),
			TaxAmount:      cl.Tax.TaxAmount,
		}
		if len(cl.StaffAssignments) > 0 {
			rec.StaffID = cl.StaffAssignments[0].StaffID
			rec.StaffName = cl.StaffAssignments[0].StaffName
		}
		return []UnitRecord{rec}
	}

	n := cl.Quantity
	weights := make([]decimal.Decimal, n)
	for i := range weights {
		weights[i] = decimal.NewFromInt(1)
	}
	taxable := Allocate(cl.Tax.TaxableAmount, weights)
	cgst := Allocate(cl.Tax.CGST, weights)
	sgst := Allocate(cl.Tax.SGST, weights)
	igst := Allocate(cl.Tax.IGST, weights)
	discount := Allocate(cl.DiscountAmount(), weights)

	units := make([]UnitRecord, n)
	for i := 0; i < n; i++ {
		units[i] = UnitRecord{
			CatalogID:      cl.CatalogID,
			Name:           cl.Name,
			Category:       cl.Category,
			Quantity:       1,
			UnitPrice:      cl.UnitPrice,
			TaxableAmount:  taxable[i],
			CGST:           cgst[i],
			SGST:           sgst[i],
			IGST:           igst[i],
			DiscountAmount: discount[i],
			TaxAmount:      cgst[i].Add(sgst[i]).Add(igst[i]),
		}
		if i < len(cl.StaffAssignments) {
			units[i].StaffID = cl.StaffAssignments[i].StaffID
			units[i].StaffName = cl.StaffAssignments[i].StaffName
		}
	}
	return units
}

// ExpandLines expands every computed line in display order.
func ExpandLines(lines []ComputedLine) []UnitRecord {
	var units []UnitRecord
	for _, cl := range lines {
		units = append(units, ExpandLine(cl)...)
	}
	return units
}

// GroupedLine is the editor-side reconstruction of an expanded line.
type GroupedLine struct {
	CatalogID        uuid.UUID
	Name             string
	Category         Category
	Quantity         int
	UnitPrice        decimal.Decimal
	StaffAssignments []StaffAssignment
	TaxableAmount    decimal.Decimal
	CGST             decimal.Decimal
	SGST             decimal.Decimal
	IGST             decimal.Decimal
	DiscountAmount   decimal.Decimal
	TaxAmount        decimal.Decimal
}

// GroupUnits is the inverse of ExpandLines: unit records regroup by
// catalog item (in first-appearance order) and their shares sum back to
// the original line aggregates. Used when a persisted invoice is loaded
// back into the editor.
func GroupUnits(units []UnitRecord) []GroupedLine {
	var out []GroupedLine
	index := make(map[uuid.UUID]int)

	for _, u := range units {
		i, ok := index[u.CatalogID]
		if !ok {
			index[u.CatalogID] = len(out)
			out = append(out, GroupedLine{
				CatalogID: u.CatalogID,
				Name:      u.Name,
				Category:  u.Category,
				UnitPrice: u.UnitPrice,
			})
			i = len(out) - 1
		}
		g := &out[i]
		g.Quantity += u.Quantity
		g.TaxableAmount = g.TaxableAmount.Add(u.TaxableAmount)
		g.CGST = g.CGST.Add(u.CGST)
		g.SGST = g.SGST.Add(u.SGST)
		g.IGST = g.IGST.Add(u.IGST)
		g.DiscountAmount = g.DiscountAmount.Add(u.DiscountAmount)
		g.TaxAmount = g.TaxAmount.Add(u.TaxAmount)
		if u.Category != CategoryProduct || u.StaffID != uuid.Nil {
			g.StaffAssignments = append(g.StaffAssignments, StaffAssignment{StaffID: u.StaffID, StaffName: u.StaffName})
		}
	}
	return out
}

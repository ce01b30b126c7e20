// billing/types.go
package billing

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category classifies a billable line and drives every eligibility rule
// (membership discount, markup, exemptions).
type Category string

const (
	CategoryService Category = "service"
	CategoryPackage Category = "package"
	CategoryProduct Category = "product"
)

// DiscountType mirrors the percent/amount pair used on the billing form.
type DiscountType string

const (
	DiscountTypePercent DiscountType = "percent"
	DiscountTypeFixed   DiscountType = "fixed"
)

// StaffAssignment is one staff slot on a line. Service and package lines
// carry one slot per billed unit, product lines at most one.
type StaffAssignment struct {
	StaffID   uuid.UUID `json:"staffId"`
	StaffName string    `json:"staffName"`
}

// LineItem is a single editable row on the billing form.
// BasePrice is the catalog price the markup is computed from; it becomes
// nil once the cashier overrides the unit price by hand, which pins the
// price against further markup recomputation.
type LineItem struct {
	ID               uuid.UUID         `json:"id"`
	CatalogID        uuid.UUID         `json:"catalogId"`
	Name             string            `json:"name"`
	Category         Category          `json:"category"`
	Quantity         int               `json:"quantity"`
	UnitPrice        decimal.Decimal   `json:"unitPrice"`
	BasePrice        *decimal.Decimal  `json:"basePrice"`
	DiscountPercent  decimal.Decimal   `json:"discountPercent"`
	TaxGroupID       uuid.UUID         `json:"taxGroupId"`
	TaxRatePercent   decimal.Decimal   `json:"taxRatePercent"`
	StaffAssignments []StaffAssignment `json:"staffAssignments"`
}

// Gross is the line amount before invoice-level discounts: quantity times
// unit price, less the line-local discount percent. A negative unit price
// counts as zero.
func (l LineItem) Gross() decimal.Decimal {
	if l.Quantity <= 0 {
		return decimal.Zero
	}
	price := l.UnitPrice
	if price.Sign() < 0 {
		price = decimal.Zero
	}
	gross := price.Mul(decimal.NewFromInt(int64(l.Quantity)))
	if l.DiscountPercent.IsPositive() {
		pct := clampPercent(l.DiscountPercent)
		gross = gross.Sub(gross.Mul(pct).Div(hundred))
	}
	return gross.Round(2)
}

func (l LineItem) clone() LineItem {
	out := l
	if l.BasePrice != nil {
		bp := *l.BasePrice
		out.BasePrice = &bp
	}
	out.StaffAssignments = append([]StaffAssignment(nil), l.StaffAssignments...)
	return out
}

// TaxGroup is a read-only row from the tax table.
type TaxGroup struct {
	CGSTPercent decimal.Decimal `json:"cgstPercent"`
	SGSTPercent decimal.Decimal `json:"sgstPercent"`
	IGSTPercent decimal.Decimal `json:"igstPercent"`
}

// StaffRate is the pricing-relevant slice of an employee record.
// FixedMarkup wins over MarkupPercent when set.
type StaffRate struct {
	DisplayName   string           `json:"displayName"`
	SkillLevel    string           `json:"skillLevel"`
	MarkupPercent decimal.Decimal  `json:"markupPercent"`
	FixedMarkup   *decimal.Decimal `json:"fixedMarkup"`
}

// Catalogs bundles the read-only master-data snapshots the engine consumes.
type Catalogs struct {
	TaxGroups  map[uuid.UUID]TaxGroup
	StaffRates map[uuid.UUID]StaffRate
}

// Exemptions are the three independent tax-exemption toggles.
type Exemptions struct {
	All      bool `json:"all"`
	Packages bool `json:"packages"`
	Products bool `json:"products"`
}

// LockedTaxSummary is an externally supplied CGST/SGST override, used when
// upstream prices already embed tax computed elsewhere (appointments).
type LockedTaxSummary struct {
	CGST  decimal.Decimal `json:"cgst"`
	SGST  decimal.Decimal `json:"sgst"`
	Total decimal.Decimal `json:"total"`
}

// PaymentEntry is one chosen payment instrument and its amount.
type PaymentEntry struct {
	ModeID uuid.UUID       `json:"modeId"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// InvoiceState is the full editable state of the billing form. Recompute
// derives everything else from it; no aggregate is stored independently.
type InvoiceState struct {
	Lines             []LineItem        `json:"lines"`
	DiscountInput     string            `json:"discountInput"`
	DiscountType      DiscountType      `json:"discountType"`
	MembershipPercent decimal.Decimal   `json:"membershipPercent"`
	MembershipApplied bool              `json:"membershipApplied"`
	Exemptions        Exemptions        `json:"exemptions"`
	LockedTax         *LockedTaxSummary `json:"lockedTax"`
	Payments          []PaymentEntry    `json:"payments"`
	CreditAmount      decimal.Decimal   `json:"creditAmount"`
	CreditConfirmed   bool              `json:"creditConfirmed"`
}

var hundred = decimal.NewFromInt(100)

func clampPercent(p decimal.Decimal) decimal.Decimal {
	if p.Sign() < 0 {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}

func clampAmount(a, ceiling decimal.Decimal) decimal.Decimal {
	if a.Sign() < 0 {
		return decimal.Zero
	}
	if a.GreaterThan(ceiling) {
		return ceiling
	}
	return a
}

// parseAmount reads a user-entered numeric string. Anything unparseable or
// negative becomes zero instead of an error.
func parseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.Sign() < 0 {
		return decimal.Zero
	}
	return d
}

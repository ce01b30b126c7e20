// billing/staff.go
package billing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SyncAssignments returns a copy of the line whose staff slot list matches
// its quantity: one slot per billed unit for services and packages, at most
// one for products. Growth pads with the first existing slot, then the
// provided fallback (the globally selected staff), then an empty slot;
// shrink truncates from the end.
func SyncAssignments(line LineItem, fallback StaffAssignment) LineItem {
	out := line.clone()

	if out.Category == CategoryProduct {
		if len(out.StaffAssignments) > 1 {
			out.StaffAssignments = out.StaffAssignments[:1]
		}
		return out
	}

	target := out.Quantity
	if target < 0 {
		target = 0
	}
	if len(out.StaffAssignments) > target {
		out.StaffAssignments = out.StaffAssignments[:target]
		return out
	}

	pad := fallback
	if len(out.StaffAssignments) > 0 {
		pad = out.StaffAssignments[0]
	}
	for len(out.StaffAssignments) < target {
		out.StaffAssignments = append(out.StaffAssignments, pad)
	}
	return out
}

// MarkupPrice applies a staff rate to a catalog base price: the fixed
// extra when configured, else the percent markup.
func MarkupPrice(base decimal.Decimal, rate StaffRate) decimal.Decimal {
	if rate.FixedMarkup != nil {
		return base.Add(*rate.FixedMarkup).Round(2)
	}
	return base.Add(base.Mul(rate.MarkupPercent).Div(hundred)).Round(2)
}

// AssignStaff places staff into the given slot and returns the updated
// line. Slot 0 drives pricing: assigning it recomputes the unit price from
// the base price with that staff's markup, unless the price was pinned by a
// manual override or the line is a product (products never carry markup).
// Other slots only change identity.
func AssignStaff(line LineItem, slot int, staff StaffAssignment, rates map[uuid.UUID]StaffRate) LineItem {
	out := line.clone()
	if slot < 0 || slot >= len(out.StaffAssignments) {
		return out
	}
	out.StaffAssignments[slot] = staff

	if slot != 0 || out.Category == CategoryProduct || out.BasePrice == nil {
		return out
	}
	if rate, ok := rates[staff.StaffID]; ok {
		out.UnitPrice = MarkupPrice(*out.BasePrice, rate)
	}
	return out
}

// OverrideUnitPrice records a manual price edit. The price is clamped at
// zero and the base price is cleared, pinning the line against markup
// recomputation until a fresh catalog selection resets it.
func OverrideUnitPrice(line LineItem, price decimal.Decimal) LineItem {
	out := line.clone()
	if price.Sign() < 0 {
		price = decimal.Zero
	}
	out.UnitPrice = price.Round(2)
	out.BasePrice = nil
	return out
}

// BulkAssignStaff applies one staff to slot 0 of every line. Eligible
// lines get the markup-adjusted price exactly as the single-slot path
// does; product lines record the assignment but keep their price.
func BulkAssignStaff(lines []LineItem, staff StaffAssignment, rates map[uuid.UUID]StaffRate) []LineItem {
	out := make([]LineItem, len(lines))
	for i, line := range lines {
		synced := SyncAssignments(line, staff)
		if synced.Category == CategoryProduct && len(synced.StaffAssignments) == 0 {
			synced.StaffAssignments = []StaffAssignment{staff}
		}
		out[i] = AssignStaff(synced, 0, staff, rates)
	}
	return out
}

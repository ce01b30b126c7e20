package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pricedServiceLine(name string, qty int, basePrice string) LineItem {
	bp := d(basePrice)
	line := serviceLine(name, qty, basePrice)
	line.BasePrice = &bp
	return line
}

func TestSyncAssignments(t *testing.T) {
	alice := StaffAssignment{StaffID: uuid.New(), StaffName: "Alice"}
	bob := StaffAssignment{StaffID: uuid.New(), StaffName: "Bob"}

	t.Run("slot count tracks quantity through any edit sequence", func(t *testing.T) {
		line := pricedServiceLine("Haircut", 1, "500")
		line.StaffAssignments = []StaffAssignment{alice}

		for _, qty := range []int{3, 1, 5, 2, 0, 4} {
			line.Quantity = qty
			line = SyncAssignments(line, bob)
			assert.Len(t, line.StaffAssignments, qty, "qty %d", qty)
		}
	})

	t.Run("growth pads with the first existing slot", func(t *testing.T) {
		line := pricedServiceLine("Haircut", 3, "500")
		line.StaffAssignments = []StaffAssignment{alice}
		line = SyncAssignments(line, bob)
		require.Len(t, line.StaffAssignments, 3)
		assert.Equal(t, alice, line.StaffAssignments[1])
		assert.Equal(t, alice, line.StaffAssignments[2])
	})

	t.Run("growth without existing slots uses the fallback", func(t *testing.T) {
		line := pricedServiceLine("Haircut", 2, "500")
		line = SyncAssignments(line, bob)
		require.Len(t, line.StaffAssignments, 2)
		assert.Equal(t, bob, line.StaffAssignments[0])
	})

	t.Run("products keep at most one slot", func(t *testing.T) {
		line := productLine("Shampoo", 5, "200")
		line.StaffAssignments = []StaffAssignment{alice, bob}
		line = SyncAssignments(line, bob)
		assert.Len(t, line.StaffAssignments, 1)
		assert.Equal(t, alice, line.StaffAssignments[0])
	})

	t.Run("returns a copy and leaves the input alone", func(t *testing.T) {
		line := pricedServiceLine("Haircut", 2, "500")
		line.StaffAssignments = []StaffAssignment{alice}
		out := SyncAssignments(line, bob)
		out.StaffAssignments[0] = bob
		assert.Equal(t, alice, line.StaffAssignments[0])
	})
}

func TestMarkupPrice(t *testing.T) {
	t.Run("percent markup", func(t *testing.T) {
		price := MarkupPrice(d("500"), StaffRate{MarkupPercent: d("10")})
		assert.True(t, price.Equal(d("550")), "got %s", price)
	})

	t.Run("fixed markup wins over percent", func(t *testing.T) {
		extra := d("75")
		price := MarkupPrice(d("500"), StaffRate{MarkupPercent: d("10"), FixedMarkup: &extra})
		assert.True(t, price.Equal(d("575")))
	})
}

func TestAssignStaff(t *testing.T) {
	senior := uuid.New()
	rates := map[uuid.UUID]StaffRate{
		senior: {DisplayName: "Senior", MarkupPercent: d("10")},
	}
	staff := StaffAssignment{StaffID: senior, StaffName: "Senior"}

	t.Run("slot zero drives the unit price", func(t *testing.T) {
		line := pricedServiceLine("Haircut", 2, "500")
		line = SyncAssignments(line, StaffAssignment{})
		line = AssignStaff(line, 0, staff, rates)
		assert.True(t, line.UnitPrice.Equal(d("550")))
	})

	t.Run("other slots change identity only", func(t *testing.T) {
		line := pricedServiceLine("Haircut", 2, "500")
		line = SyncAssignments(line, StaffAssignment{})
		line = AssignStaff(line, 1, staff, rates)
		assert.True(t, line.UnitPrice.Equal(d("500")))
		assert.Equal(t, staff, line.StaffAssignments[1])
	})

	t.Run("products never get markup", func(t *testing.T) {
		line := productLine("Shampoo", 1, "200")
		bp := d("200")
		line.BasePrice = &bp
		line.StaffAssignments = []StaffAssignment{{}}
		line = AssignStaff(line, 0, staff, rates)
		assert.True(t, line.UnitPrice.Equal(d("200")))
		assert.Equal(t, staff, line.StaffAssignments[0])
	})

	t.Run("a pinned price stays pinned", func(t *testing.T) {
		line := pricedServiceLine("Haircut", 1, "500")
		line = SyncAssignments(line, StaffAssignment{})
		line = OverrideUnitPrice(line, d("450"))
		line = AssignStaff(line, 0, staff, rates)
		assert.True(t, line.UnitPrice.Equal(d("450")))
		assert.Nil(t, line.BasePrice)
	})

	t.Run("unknown staff keeps the current price", func(t *testing.T) {
		line := pricedServiceLine("Haircut", 1, "500")
		line = SyncAssignments(line, StaffAssignment{})
		line = AssignStaff(line, 0, StaffAssignment{StaffID: uuid.New()}, rates)
		assert.True(t, line.UnitPrice.Equal(d("500")))
	})
}

func TestOverrideUnitPrice(t *testing.T) {
	t.Run("negative input clamps to zero", func(t *testing.T) {
		line := pricedServiceLine("Haircut", 1, "500")
		line = OverrideUnitPrice(line, decimal.NewFromInt(-10))
		assert.True(t, line.UnitPrice.IsZero())
		assert.Nil(t, line.BasePrice)
	})
}

func TestBulkAssignStaff(t *testing.T) {
	senior := uuid.New()
	rates := map[uuid.UUID]StaffRate{senior: {MarkupPercent: d("20")}}
	staff := StaffAssignment{StaffID: senior, StaffName: "Senior"}

	t.Run("applies to slot zero of every line with per-line pricing", func(t *testing.T) {
		svc := pricedServiceLine("Haircut", 2, "500")
		prod := productLine("Shampoo", 1, "200")
		out := BulkAssignStaff([]LineItem{svc, prod}, staff, rates)

		require.Len(t, out, 2)
		assert.True(t, out[0].UnitPrice.Equal(d("600")))
		assert.Equal(t, staff, out[0].StaffAssignments[0])
		// Same staff padded into every slot.
		assert.Len(t, out[0].StaffAssignments, 2)

		assert.True(t, out[1].UnitPrice.Equal(d("200")))
		assert.Equal(t, staff, out[1].StaffAssignments[0])
	})
}

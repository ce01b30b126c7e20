package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func ds(ss ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(ss))
	for i, s := range ss {
		out[i] = d(s)
	}
	return out
}

func sumOf(shares []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, s := range shares {
		total = total.Add(s)
	}
	return total
}

func TestAllocate(t *testing.T) {
	t.Run("splits proportionally across weights", func(t *testing.T) {
		shares := Allocate(d("50"), ds("300", "700"))
		require.Len(t, shares, 2)
		assert.True(t, shares[0].Equal(d("15")), "got %s", shares[0])
		assert.True(t, shares[1].Equal(d("35")), "got %s", shares[1])
	})

	t.Run("shares always sum back to the total", func(t *testing.T) {
		cases := []struct {
			total   string
			weights []string
		}{
			{"100", []string{"1", "1", "1"}},
			{"10", []string{"3", "3", "3"}},
			{"0.01", []string{"5", "5"}},
			{"999.99", []string{"123.45", "0.01", "678.9"}},
			{"1", []string{"1", "1", "1", "1", "1", "1", "1"}},
		}
		for _, tc := range cases {
			shares := Allocate(d(tc.total), ds(tc.weights...))
			assert.True(t, sumOf(shares).Equal(d(tc.total)),
				"total %s weights %v -> sum %s", tc.total, tc.weights, sumOf(shares))
		}
	})

	t.Run("zero total yields zero shares", func(t *testing.T) {
		shares := Allocate(decimal.Zero, ds("10", "20"))
		assert.True(t, shares[0].IsZero())
		assert.True(t, shares[1].IsZero())
	})

	t.Run("all-zero weights yield zero shares", func(t *testing.T) {
		shares := Allocate(d("100"), ds("0", "0", "0"))
		for _, s := range shares {
			assert.True(t, s.IsZero())
		}
	})

	t.Run("drift lands on the last weighted share", func(t *testing.T) {
		// 10 / 3 rounds to 3.33 per bucket, leaving 0.01 to absorb.
		shares := Allocate(d("10"), ds("1", "1", "1"))
		assert.True(t, shares[0].Equal(d("3.33")))
		assert.True(t, shares[1].Equal(d("3.33")))
		assert.True(t, shares[2].Equal(d("3.34")))
	})

	t.Run("order decides the absorbing bucket but not the total", func(t *testing.T) {
		forward := Allocate(d("10"), ds("1", "2"))
		reversed := Allocate(d("10"), ds("2", "1"))
		assert.True(t, sumOf(forward).Equal(d("10")))
		assert.True(t, sumOf(reversed).Equal(d("10")))
		assert.True(t, forward[0].Equal(reversed[1]))
	})

	t.Run("does not mutate the caller's weights", func(t *testing.T) {
		weights := ds("300", "700")
		Allocate(d("50"), weights)
		assert.True(t, weights[0].Equal(d("300")))
		assert.True(t, weights[1].Equal(d("700")))
	})
}

func TestAllocateEligible(t *testing.T) {
	t.Run("ineligible buckets never receive a share", func(t *testing.T) {
		shares := AllocateEligible(d("100"), ds("50", "50", "50"), []bool{true, false, true})
		assert.True(t, shares[0].Equal(d("50")))
		assert.True(t, shares[1].IsZero())
		assert.True(t, shares[2].Equal(d("50")))
	})

	t.Run("drift skips a trailing ineligible bucket", func(t *testing.T) {
		shares := AllocateEligible(d("10"), ds("1", "1", "1"), []bool{true, true, false})
		assert.True(t, shares[2].IsZero())
		assert.True(t, sumOf(shares).Equal(d("10")))
	})

	t.Run("no eligible buckets yields zero shares", func(t *testing.T) {
		shares := AllocateEligible(d("10"), ds("1", "1"), []bool{false, false})
		assert.True(t, sumOf(shares).IsZero())
	})
}

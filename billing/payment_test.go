package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pay(name, amount string) PaymentEntry {
	return PaymentEntry{ModeID: uuid.New(), Name: name, Amount: d(amount)}
}

func TestValidatePayments(t *testing.T) {
	t.Run("amounts plus credit must cover the rounded total", func(t *testing.T) {
		v := ValidatePayments([]PaymentEntry{pay("Cash", "600"), pay("Card", "300")}, d("100"), d("1000"))
		assert.True(t, v.Valid)
		assert.False(t, v.FullCredit)
		assert.True(t, v.Difference.IsZero())
	})

	t.Run("shortfall is surfaced for display", func(t *testing.T) {
		v := ValidatePayments([]PaymentEntry{pay("Cash", "600")}, decimal.Zero, d("1000"))
		assert.False(t, v.Valid)
		assert.True(t, v.Difference.Equal(d("400")))
	})

	t.Run("excess is negative", func(t *testing.T) {
		v := ValidatePayments([]PaymentEntry{pay("Cash", "1200")}, decimal.Zero, d("1000"))
		assert.False(t, v.Valid)
		assert.True(t, v.Difference.Equal(d("-200")))
	})

	t.Run("full credit needs no payment modes", func(t *testing.T) {
		v := ValidatePayments(nil, d("1000"), d("1000"))
		assert.True(t, v.Valid)
		assert.True(t, v.FullCredit)
	})

	t.Run("full credit with payment amounts is invalid", func(t *testing.T) {
		v := ValidatePayments([]PaymentEntry{pay("Cash", "100")}, d("1000"), d("1000"))
		assert.True(t, v.FullCredit)
		assert.False(t, v.Valid)
	})

	t.Run("negative amounts count as zero", func(t *testing.T) {
		v := ValidatePayments([]PaymentEntry{pay("Cash", "-100"), pay("Card", "1100")}, decimal.Zero, d("1000"))
		assert.False(t, v.Valid)
		assert.True(t, v.Difference.Equal(d("-100")), "got %s", v.Difference)
	})

	t.Run("negative credit counts as zero", func(t *testing.T) {
		v := ValidatePayments([]PaymentEntry{pay("Cash", "1000")}, d("-50"), d("1000"))
		assert.True(t, v.Valid)
		assert.True(t, v.Difference.IsZero())
	})
}

func TestRebalancePayments(t *testing.T) {
	t.Run("scales every mode but the last, which absorbs the remainder", func(t *testing.T) {
		payments := []PaymentEntry{pay("Cash", "600"), pay("Card", "400")}
		out := RebalancePayments(payments, d("1000"), d("800"))

		require.Len(t, out, 2)
		assert.True(t, out[0].Amount.Equal(d("480")), "got %s", out[0].Amount)
		assert.True(t, out[1].Amount.Equal(d("320")))
	})

	t.Run("rebalanced amounts sum to exactly the new total", func(t *testing.T) {
		payments := []PaymentEntry{pay("Cash", "333.33"), pay("Card", "333.33"), pay("UPI", "333.34")}
		out := RebalancePayments(payments, d("1000"), d("701")) // awkward ratio

		sum := decimal.Zero
		for _, p := range out {
			sum = sum.Add(p.Amount)
		}
		assert.True(t, sum.Equal(d("701")), "got %s", sum)
	})

	t.Run("no modes is a no-op", func(t *testing.T) {
		assert.Empty(t, RebalancePayments(nil, d("1000"), d("800")))
	})

	t.Run("zero old total puts the whole new total on the last mode", func(t *testing.T) {
		out := RebalancePayments([]PaymentEntry{pay("Cash", "0"), pay("Card", "0")}, decimal.Zero, d("500"))
		assert.True(t, out[0].Amount.IsZero())
		assert.True(t, out[1].Amount.Equal(d("500")))
	})

	t.Run("does not mutate the caller's slice", func(t *testing.T) {
		payments := []PaymentEntry{pay("Cash", "600"), pay("Card", "400")}
		RebalancePayments(payments, d("1000"), d("800"))
		assert.True(t, payments[0].Amount.Equal(d("600")))
	})
}

func TestApplyCreditAmount(t *testing.T) {
	t.Run("redistributes the remainder proportionally", func(t *testing.T) {
		payments := []PaymentEntry{pay("Cash", "600"), pay("Card", "400")}
		out, credit := ApplyCreditAmount(payments, d("200"), d("1000"))

		assert.True(t, credit.Equal(d("200")))
		assert.True(t, out[0].Amount.Equal(d("480")))
		assert.True(t, out[1].Amount.Equal(d("320")))
	})

	t.Run("all-zero modes put the remainder on the first", func(t *testing.T) {
		payments := []PaymentEntry{pay("Cash", "0"), pay("Card", "0")}
		out, _ := ApplyCreditAmount(payments, d("300"), d("1000"))
		assert.True(t, out[0].Amount.Equal(d("700")))
		assert.True(t, out[1].Amount.IsZero())
	})

	t.Run("credit clamps to the rounded total", func(t *testing.T) {
		payments := []PaymentEntry{pay("Cash", "500")}
		out, credit := ApplyCreditAmount(payments, d("5000"), d("1000"))
		assert.True(t, credit.Equal(d("1000")))
		assert.True(t, out[0].Amount.IsZero())
	})

	t.Run("negative credit clamps to zero", func(t *testing.T) {
		payments := []PaymentEntry{pay("Cash", "500")}
		out, credit := ApplyCreditAmount(payments, d("-10"), d("1000"))
		assert.True(t, credit.IsZero())
		assert.True(t, out[0].Amount.Equal(d("1000")))
	})
}

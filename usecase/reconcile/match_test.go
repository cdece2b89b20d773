package reconcile

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrtools/settlement-ledger/entity"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func ndec(t *testing.T, s string) decimal.NullDecimal {
	t.Helper()
	return decimal.NullDecimal{Decimal: dec(t, s), Valid: true}
}

func at(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04:05", s)
	require.NoError(t, err)
	return ts
}

func paymentTxn(t *testing.T, platform entity.Platform, gross, fee, eventTime string) entity.SettlementTxn {
	t.Helper()
	txn := entity.SettlementTxn{
		EventTime:      at(t, eventTime),
		SettlementDate: eventTime[:10],
		Platform:       platform,
		Kind:           entity.KindPayment,
		Gross:          ndec(t, gross),
		Fee:            ndec(t, fee),
	}
	applyDebitCredit(&txn)
	return txn
}

func candidate(t *testing.T, orderID, total, paidAt string) entity.OrderCandidate {
	t.Helper()
	c := entity.OrderCandidate{
		OrderID:        orderID,
		Total:          dec(t, total),
		BillingName:    "Buyer " + orderID,
		BillingStreet:  "Street " + orderID,
		BillingCompany: "Co " + orderID,
	}
	if paidAt != "" {
		c.PaidAt = at(t, paidAt)
	}
	return c
}

func TestMatchOrdersAnnotatesMatch(t *testing.T) {
	paytm := []entity.SettlementTxn{
		paymentTxn(t, entity.PlatformPaytm, "500.00", "10.00", "2024-01-05 11:30:00"),
	}
	pool := []entity.OrderCandidate{
		candidate(t, "#2001", "500.00", "2024-01-05 09:00:00"),
	}

	residual, collisions := matchOrders([][]entity.SettlementTxn{paytm}, pool)

	txn := paytm[0]
	assert.Equal(t, "#2001", txn.OrderRef)
	assert.Equal(t, "Buyer #2001", txn.BuyerName)
	assert.Equal(t, "Street #2001", txn.BuyerStreet)
	assert.Equal(t, "Co #2001", txn.BuyerCompany)
	assert.True(t, txn.Credit.Valid)
	assert.True(t, txn.Credit.Decimal.Equal(dec(t, "490.00")))
	assert.True(t, txn.Debit.Decimal.IsZero())
	assert.Empty(t, residual)
	assert.Empty(t, collisions)
}

func TestMatchOrdersAmountMustBeExact(t *testing.T) {
	paytm := []entity.SettlementTxn{
		paymentTxn(t, entity.PlatformPaytm, "500.00", "10.00", "2024-01-05 11:30:00"),
	}
	pool := []entity.OrderCandidate{
		candidate(t, "#2001", "499.99", "2024-01-05 09:00:00"),
	}

	residual, _ := matchOrders([][]entity.SettlementTxn{paytm}, pool)

	assert.Empty(t, paytm[0].OrderRef)
	assert.Empty(t, paytm[0].BuyerName)
	require.Len(t, residual, 1)
	assert.Equal(t, "#2001", residual[0].OrderID)
}

func TestMatchOrdersDateMustMatchCalendarDay(t *testing.T) {
	cases := []struct {
		name    string
		paidAt  string
		matched bool
	}{
		{"same day different time", "2024-01-05 23:59:59", true},
		{"next day", "2024-01-06 00:00:00", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			txns := []entity.SettlementTxn{
				paymentTxn(t, entity.PlatformPaytm, "500.00", "0", "2024-01-05 11:30:00"),
			}
			pool := []entity.OrderCandidate{candidate(t, "#2001", "500.00", tc.paidAt)}

			matchOrders([][]entity.SettlementTxn{txns}, pool)

			if tc.matched {
				assert.Equal(t, "#2001", txns[0].OrderRef)
			} else {
				assert.Empty(t, txns[0].OrderRef)
			}
		})
	}
}

func TestMatchOrdersTieBreakLowestOrderID(t *testing.T) {
	txns := []entity.SettlementTxn{
		paymentTxn(t, entity.PlatformPaytm, "250.00", "5.00", "2024-02-01 10:00:00"),
	}
	// Pool arrives sorted ascending from the pool builder.
	pool := []entity.OrderCandidate{
		candidate(t, "#1001", "250.00", "2024-02-01 08:00:00"),
		candidate(t, "#1002", "250.00", "2024-02-01 09:00:00"),
	}

	residual, _ := matchOrders([][]entity.SettlementTxn{txns}, pool)

	assert.Equal(t, "#1001", txns[0].OrderRef)
	require.Len(t, residual, 1)
	assert.Equal(t, "#1002", residual[0].OrderID)
}

func TestMatchOrdersClaimExclusivityWithinSource(t *testing.T) {
	txns := []entity.SettlementTxn{
		paymentTxn(t, entity.PlatformPaytm, "250.00", "5.00", "2024-02-01 10:00:00"),
		paymentTxn(t, entity.PlatformPaytm, "250.00", "5.00", "2024-02-01 12:00:00"),
		paymentTxn(t, entity.PlatformPaytm, "250.00", "5.00", "2024-02-01 14:00:00"),
	}
	pool := []entity.OrderCandidate{
		candidate(t, "#1001", "250.00", "2024-02-01 08:00:00"),
		candidate(t, "#1002", "250.00", "2024-02-01 09:00:00"),
	}

	residual, _ := matchOrders([][]entity.SettlementTxn{txns}, pool)

	assert.Equal(t, "#1001", txns[0].OrderRef)
	assert.Equal(t, "#1002", txns[1].OrderRef)
	assert.Empty(t, txns[2].OrderRef, "third transaction finds every candidate claimed")
	assert.Empty(t, residual)
}

func TestMatchOrdersCrossSourceCollisionReported(t *testing.T) {
	paytm := []entity.SettlementTxn{
		paymentTxn(t, entity.PlatformPaytm, "300.00", "5.00", "2024-03-01 10:00:00"),
	}
	razorpay := []entity.SettlementTxn{
		paymentTxn(t, entity.PlatformRazorpay, "300.00", "6.00", "2024-03-01 16:00:00"),
	}
	pool := []entity.OrderCandidate{
		candidate(t, "#3001", "300.00", "2024-03-01 09:00:00"),
	}

	residual, collisions := matchOrders([][]entity.SettlementTxn{paytm, razorpay}, pool)

	// Claim sets are private per source, so both feeds claim the same order.
	assert.Equal(t, "#3001", paytm[0].OrderRef)
	assert.Equal(t, "#3001", razorpay[0].OrderRef)
	assert.Empty(t, residual)
	assert.Equal(t, []string{"#3001"}, collisions)
}

func TestMatchOrdersMissingValuesNeverMatch(t *testing.T) {
	noTime := paymentTxn(t, entity.PlatformPaytm, "500.00", "10.00", "2024-01-05 11:30:00")
	noTime.EventTime = time.Time{}
	noAmount := paymentTxn(t, entity.PlatformPaytm, "500.00", "10.00", "2024-01-05 11:30:00")
	noAmount.Gross = decimal.NullDecimal{}

	txns := []entity.SettlementTxn{noTime, noAmount}
	pool := []entity.OrderCandidate{
		candidate(t, "#2001", "500.00", "2024-01-05 09:00:00"),
		candidate(t, "#2002", "500.00", ""), // unparseable paid-at
	}

	residual, _ := matchOrders([][]entity.SettlementTxn{txns}, pool)

	assert.Empty(t, txns[0].OrderRef)
	assert.Empty(t, txns[1].OrderRef)
	assert.Len(t, residual, 2)
}

func TestMatchOrdersResidualCorrectness(t *testing.T) {
	paytm := []entity.SettlementTxn{
		paymentTxn(t, entity.PlatformPaytm, "100.00", "2.00", "2024-04-02 10:00:00"),
		paymentTxn(t, entity.PlatformPaytm, "900.00", "9.00", "2024-04-03 10:00:00"),
	}
	razorpay := []entity.SettlementTxn{
		paymentTxn(t, entity.PlatformRazorpay, "200.00", "4.00", "2024-04-02 15:00:00"),
	}
	pool := []entity.OrderCandidate{
		candidate(t, "#4001", "100.00", "2024-04-02 09:00:00"),
		candidate(t, "#4002", "200.00", "2024-04-02 09:30:00"),
		candidate(t, "#4003", "555.00", "2024-04-02 11:00:00"),
	}

	residual, _ := matchOrders([][]entity.SettlementTxn{paytm, razorpay}, pool)

	claimed := map[string]bool{}
	for _, txns := range [][]entity.SettlementTxn{paytm, razorpay} {
		for _, txn := range txns {
			if txn.OrderRef != "" {
				claimed[txn.OrderRef] = true
			}
		}
	}
	require.Len(t, residual, 1)
	assert.Equal(t, "#4003", residual[0].OrderID)
	for _, c := range residual {
		assert.False(t, claimed[c.OrderID], "residual order %s is referenced by a transaction", c.OrderID)
	}
}

func TestMatchOrdersSkipsAlreadyAnnotated(t *testing.T) {
	txn := paymentTxn(t, entity.PlatformPaytm, "500.00", "10.00", "2024-01-05 11:30:00")
	txn.OrderRef = "#9999"
	txns := []entity.SettlementTxn{txn}
	pool := []entity.OrderCandidate{
		candidate(t, "#2001", "500.00", "2024-01-05 09:00:00"),
	}

	residual, _ := matchOrders([][]entity.SettlementTxn{txns}, pool)

	assert.Equal(t, "#9999", txns[0].OrderRef)
	require.Len(t, residual, 1)
	assert.Equal(t, "#2001", residual[0].OrderID)
}

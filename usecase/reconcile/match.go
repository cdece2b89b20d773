package reconcile

import (
	"sort"

	"github.com/rrtools/settlement-ledger/entity"
	"github.com/rrtools/settlement-ledger/utils"
)

// matchOrders pairs each settlement transaction with at most one order
// candidate carrying the same amount and calendar date, annotating the
// transactions in place. Claim sets are private per source: a claim made by
// one feed does not block another feed from claiming the same order, it only
// shows up in the returned collision list. Within a source a claimed order
// is never handed out twice.
//
// Candidates are visited in pool order, so with the pool sorted by order id
// the lowest unclaimed id wins a tie. An unmatched transaction is a normal
// outcome, not an error: refunds often have no order to find, and rounding
// or multi-day settlement shifts amounts and dates. Pure computation over
// the inputs; no I/O.
func matchOrders(sources [][]entity.SettlementTxn, pool []entity.OrderCandidate) (residual []entity.OrderCandidate, collisions []string) {
	claimCount := make(map[string]int)

	for _, txns := range sources {
		claimed := make(map[string]bool)
		for i := range txns {
			t := &txns[i]
			if t.OrderRef != "" {
				continue
			}
			if !t.Gross.Valid || t.EventTime.IsZero() {
				continue
			}
			for j := range pool {
				c := &pool[j]
				if claimed[c.OrderID] {
					continue
				}
				if !t.Gross.Decimal.Equal(c.Total) {
					continue
				}
				if !utils.SameDay(t.EventTime, c.PaidAt) {
					continue
				}
				t.OrderRef = c.OrderID
				t.BuyerName = c.BillingName
				t.BuyerStreet = c.BillingStreet
				t.BuyerCompany = c.BillingCompany
				claimed[c.OrderID] = true
				break
			}
		}
		for id := range claimed {
			claimCount[id]++
		}
	}

	residual = make([]entity.OrderCandidate, 0)
	for _, c := range pool {
		if claimCount[c.OrderID] == 0 {
			residual = append(residual, c)
		}
	}

	for id, n := range claimCount {
		if n > 1 {
			collisions = append(collisions, id)
		}
	}
	sort.Strings(collisions)

	return residual, collisions
}

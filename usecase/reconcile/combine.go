package reconcile

import (
	"sort"

	"github.com/rrtools/settlement-ledger/entity"
)

// combineLedger merges the annotated sources into the final numbered
// ledger. Rows order by settled date, then platform, then kind, then order
// ref; unmatched rows (empty ref) sort after matched ones within a group.
// Seq is assigned dense and 1-based in final order.
func combineLedger(sources [][]entity.SettlementTxn) []entity.LedgerRow {
	var all []entity.SettlementTxn
	for _, txns := range sources {
		all = append(all, txns...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.SettlementDate != b.SettlementDate {
			return a.SettlementDate < b.SettlementDate
		}
		if a.Platform != b.Platform {
			return a.Platform < b.Platform
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return lessOrderRef(a.OrderRef, b.OrderRef)
	})

	rows := make([]entity.LedgerRow, len(all))
	for i, t := range all {
		rows[i] = entity.LedgerRow{Seq: i + 1, SettlementTxn: t}
	}
	return rows
}

// lessOrderRef orders refs ascending with empty (unmatched) last.
func lessOrderRef(a, b string) bool {
	if a == "" {
		return false
	}
	if b == "" {
		return true
	}
	return a < b
}

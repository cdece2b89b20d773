package reconcile

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/labstack/gommon/log"

	"github.com/rrtools/settlement-ledger/entity"
)

// Order-export pages are recognized by file name; anything else uploaded
// alongside them is ignored.
const orderExportMarker = "orders_export"

var shopifyTimeLayouts = []string{
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
}

// buildOrderPool reads every recognized order-export page, concatenates the
// candidates and sorts the pool by order id ascending. Sorting makes the
// output ordering reproducible; matching itself is a search over the pool,
// not an index scan.
func buildOrderPool(paths []string) ([]entity.OrderCandidate, error) {
	var pool []entity.OrderCandidate
	for _, path := range paths {
		if !strings.Contains(strings.ToLower(filepath.Base(path)), orderExportMarker) {
			log.Infof("[OrderPool] Skipping %s: not an orders export", path)
			continue
		}
		batch, usable, err := parseOrderExport(path)
		if err != nil {
			return nil, err
		}
		if !usable {
			log.Infof("[OrderPool] Skipping %s: no Total column", path)
			continue
		}
		pool = append(pool, batch...)
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].OrderID < pool[j].OrderID
	})

	log.Infof("[OrderPool] Built pool of %d order candidates", len(pool))
	return pool, nil
}

// parseOrderExport reads one export page. Pages without a Total column are
// reported unusable rather than failing the run. Rows without a parseable
// total are dropped; rows with an unparseable paid-at timestamp are kept
// with a zero time and will simply never match.
func parseOrderExport(path string) ([]entity.OrderCandidate, bool, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, false, err
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}
	if _, err := headerIndex(header, "Total"); err != nil {
		return nil, false, nil
	}
	cols, err := headerIndex(header,
		"Name", "Total", "Billing Name", "Billing Street", "Billing Company", "Paid at")
	if err != nil {
		return nil, false, fmt.Errorf("orders export %s: %w", path, err)
	}

	var batch []entity.OrderCandidate
	for _, rec := range records[1:] {
		if len(rec) < len(header) {
			continue
		}
		field := func(name string) string {
			return strings.TrimSpace(rec[cols[name]])
		}

		total := parseAmount(field("Total"))
		if !total.Valid {
			continue
		}

		batch = append(batch, entity.OrderCandidate{
			OrderID:        field("Name"),
			PaidAt:         parseTimeAny(field("Paid at"), shopifyTimeLayouts),
			Total:          total.Decimal,
			BillingName:    field("Billing Name"),
			BillingStreet:  field("Billing Street"),
			BillingCompany: field("Billing Company"),
		})
	}
	return batch, true, nil
}

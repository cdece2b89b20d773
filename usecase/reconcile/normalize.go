package reconcile

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"

	"github.com/rrtools/settlement-ledger/entity"
)

// Paytm settlement reports label events ACQUIRING/REFUND; anything else is
// carried through as-is and will simply never be a payment or refund.
var paytmKindMap = map[string]entity.TxnKind{
	"ACQUIRING": entity.KindPayment,
	"REFUND":    entity.KindRefund,
}

var paytmTimeLayouts = []string{
	"02-01-2006 15:04:05",
	"02-01-2006",
}

// Razorpay exports carry day-first timestamps in a few shapes.
var razorpayTimeLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02-01-2006 15:04:05",
	"02-01-2006 15:04",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"02-01-2006",
	"2006-01-02",
}

// parsePaytmSettlements normalizes a Paytm settlement report into canonical
// settlement transactions. Field values may be wrapped in single quotes by
// the report generator; these are stripped. An unreadable file or a missing
// required column is fatal; unparseable amounts and dates on individual
// rows are kept as missing values.
func parsePaytmSettlements(path string) ([]entity.SettlementTxn, error) {
	log.Infof("[PaytmParser] Reading settlement file: %s", path)

	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	cols, err := headerIndex(records[0],
		"transaction_date", "settled_date", "transaction_type", "amount", "commission", "gst")
	if err != nil {
		return nil, fmt.Errorf("paytm settlement file %s: %w", path, err)
	}

	txns := make([]entity.SettlementTxn, 0, len(records)-1)
	skipped := 0
	for _, rec := range records[1:] {
		if len(rec) < len(records[0]) {
			skipped++
			continue
		}
		field := func(name string) string {
			return strings.Trim(strings.TrimSpace(rec[cols[name]]), "'")
		}

		label := field("transaction_type")
		kind, ok := paytmKindMap[label]
		if !ok {
			kind = entity.TxnKind(label)
		}

		txn := entity.SettlementTxn{
			EventTime:      parseTimeAny(field("transaction_date"), paytmTimeLayouts),
			SettlementDate: field("settled_date"),
			Platform:       entity.PlatformPaytm,
			Kind:           kind,
			Gross:          parseAmount(field("amount")),
			Fee:            sumFees(parseAmount(field("commission")), parseAmount(field("gst"))),
		}
		applyDebitCredit(&txn)
		txns = append(txns, txn)
	}

	log.Infof("[PaytmParser] Parsed %d settlement rows, skipped %d short rows", len(txns), skipped)
	return txns, nil
}

// parseRazorpaySettlements normalizes a Razorpay settlement report. The
// transaction_entity column already uses payment/refund labels, so it maps
// straight onto the canonical kind.
func parseRazorpaySettlements(path string) ([]entity.SettlementTxn, error) {
	log.Infof("[RazorpayParser] Reading settlement file: %s", path)

	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	cols, err := headerIndex(records[0],
		"payment_captured_at", "settled_at", "transaction_entity", "amount", "fee (exclusive tax)", "tax")
	if err != nil {
		return nil, fmt.Errorf("razorpay settlement file %s: %w", path, err)
	}

	txns := make([]entity.SettlementTxn, 0, len(records)-1)
	skipped := 0
	for _, rec := range records[1:] {
		if len(rec) < len(records[0]) {
			skipped++
			continue
		}
		field := func(name string) string {
			return strings.TrimSpace(rec[cols[name]])
		}

		txn := entity.SettlementTxn{
			EventTime:      parseTimeAny(field("payment_captured_at"), razorpayTimeLayouts),
			SettlementDate: field("settled_at"),
			Platform:       entity.PlatformRazorpay,
			Kind:           entity.TxnKind(field("transaction_entity")),
			Gross:          parseAmount(field("amount")),
			Fee:            sumFees(parseAmount(field("fee (exclusive tax)")), parseAmount(field("tax"))),
		}
		applyDebitCredit(&txn)
		txns = append(txns, txn)
	}

	log.Infof("[RazorpayParser] Parsed %d settlement rows, skipped %d short rows", len(txns), skipped)
	return txns, nil
}

// applyDebitCredit fills the debit/credit split: refunds debit the net
// amount, payments credit it, and the other side is zero. When gross or fee
// is missing the net is not computable and both sides stay missing.
func applyDebitCredit(t *entity.SettlementTxn) {
	if !t.Gross.Valid || !t.Fee.Valid {
		return
	}
	net := decimal.NullDecimal{Decimal: t.Gross.Decimal.Sub(t.Fee.Decimal), Valid: true}
	zero := decimal.NullDecimal{Decimal: decimal.Zero, Valid: true}
	switch t.Kind {
	case entity.KindRefund:
		t.Debit, t.Credit = net, zero
	case entity.KindPayment:
		t.Debit, t.Credit = zero, net
	default:
		t.Debit, t.Credit = zero, zero
	}
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV from %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty CSV file %s", path)
	}
	return records, nil
}

// headerIndex maps trimmed column names to positions and checks that every
// required column is present.
func headerIndex(header []string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	return idx, nil
}

// parseAmount coerces a numeric field. Failures become missing values, not
// errors: a missing amount keeps its row but can never satisfy a match.
func parseAmount(raw string) decimal.NullDecimal {
	if raw == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// sumFees adds fee components; if any component is missing the total is
// missing.
func sumFees(parts ...decimal.NullDecimal) decimal.NullDecimal {
	total := decimal.Zero
	for _, p := range parts {
		if !p.Valid {
			return decimal.NullDecimal{}
		}
		total = total.Add(p.Decimal)
	}
	return decimal.NullDecimal{Decimal: total, Valid: true}
}

// parseTimeAny tries each layout in order, returning the zero time when
// none fits.
func parseTimeAny(raw string, layouts []string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

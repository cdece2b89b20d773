package reconcile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/rrtools/settlement-ledger/entity"
)

var ledgerHeader = []string{
	"Sr. No.", "Date", "Platform", "Type", "Order Amt", "Fee", "Debit", "Credit",
	"Order ID", "Party Information 1", "Party Information 2", "Party Information 3",
}

var residualHeader = []string{
	"Name", "Total", "Billing Name", "Billing Street", "Billing Company", "Paid at",
}

func writeLedgerCSV(w io.Writer, rows []entity.LedgerRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ledgerHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.Seq),
			r.SettlementDate,
			string(r.Platform),
			string(r.Kind),
			formatAmount(r.Gross),
			formatAmount(r.Fee),
			formatAmount(r.Debit),
			formatAmount(r.Credit),
			r.OrderRef,
			r.BuyerName,
			r.BuyerStreet,
			r.BuyerCompany,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeResidualCSV(w io.Writer, residual []entity.OrderCandidate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(residualHeader); err != nil {
		return err
	}
	for _, c := range residual {
		paidAt := ""
		if !c.PaidAt.IsZero() {
			paidAt = c.PaidAt.Format("2006-01-02 15:04:05")
		}
		rec := []string{
			c.OrderID,
			c.Total.String(),
			c.BillingName,
			c.BillingStreet,
			c.BillingCompany,
			paidAt,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// formatAmount renders missing values as empty cells.
func formatAmount(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

// exportRunOutputs writes both result tables for a run into dir and returns
// their paths.
func exportRunOutputs(dir string, runID int64, rows []entity.LedgerRow, residual []entity.OrderCandidate) (ledgerPath, residualPath string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create output dir %s: %w", dir, err)
	}

	ledgerPath = filepath.Join(dir, fmt.Sprintf("%d_ledger.csv", runID))
	residualPath = filepath.Join(dir, fmt.Sprintf("%d_residual.csv", runID))

	if err := writeCSVFile(ledgerPath, func(w io.Writer) error {
		return writeLedgerCSV(w, rows)
	}); err != nil {
		return "", "", err
	}
	if err := writeCSVFile(residualPath, func(w io.Writer) error {
		return writeResidualCSV(w, residual)
	}); err != nil {
		return "", "", err
	}
	return ledgerPath, residualPath, nil
}

func writeCSVFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Platform identifies which acquirer feed produced a settlement row.
type Platform string

const (
	PlatformPaytm    Platform = "PayTm"
	PlatformRazorpay Platform = "Razorpay"
)

// TxnKind is the canonical event type of a settlement row.
type TxnKind string

const (
	KindPayment TxnKind = "payment"
	KindRefund  TxnKind = "refund"
)

// SettlementTxn is one normalized payment or refund event from an acquirer
// settlement feed. EventTime is when the payment or refund happened and is
// what date matching runs against; SettlementDate is the raw settled-date
// value from the feed and is only a display and sort key. A zero EventTime
// or an invalid amount means the source value could not be parsed; such a
// row stays in the output but can never match an order.
//
// OrderRef and the buyer fields are filled together on a successful match,
// never partially.
type SettlementTxn struct {
	EventTime      time.Time
	SettlementDate string
	Platform       Platform
	Kind           TxnKind
	Gross          decimal.NullDecimal
	Fee            decimal.NullDecimal
	Debit          decimal.NullDecimal
	Credit         decimal.NullDecimal

	OrderRef     string
	BuyerName    string
	BuyerStreet  string
	BuyerCompany string
}

// OrderCandidate is one paid storefront order eligible for matching. Rows
// without a parseable total never become candidates, so Total is always
// valid. PaidAt is zero when the export value was unparseable; such a
// candidate is retained but unmatchable.
type OrderCandidate struct {
	OrderID        string
	PaidAt         time.Time
	Total          decimal.Decimal
	BillingName    string
	BillingStreet  string
	BillingCompany string
}

// LedgerRow is one line of the final merged ledger. Seq is dense and
// 1-based in final sort order.
type LedgerRow struct {
	Seq int
	SettlementTxn
}

// RunSummary is the result payload persisted on a finished ReconRun.
type RunSummary struct {
	TotalTransactions     int             `json:"total_transactions"`
	Matched               int             `json:"matched"`
	Unmatched             int             `json:"unmatched"`
	TotalCredit           decimal.Decimal `json:"total_credit"`
	TotalDebit            decimal.Decimal `json:"total_debit"`
	ResidualOrders        int             `json:"residual_orders"`
	CrossSourceCollisions []string        `json:"cross_source_collisions,omitempty"`
	LedgerFile            string          `json:"ledger_file"`
	ResidualFile          string          `json:"residual_file"`
}

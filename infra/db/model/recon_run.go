package model

// ReconRun is one reconciliation run over an uploaded set of settlement and
// order-export files. Result holds the JSON-encoded entity.RunSummary once
// the run finishes, or an error payload when it fails.
type ReconRun struct {
	ID          int64  `gorm:"primary_key" json:"id"`
	Status      int    `gorm:"not null" json:"status"`
	TotalTxnRow int64  `gorm:"not null" json:"total_txn_row"`
	Result      string `gorm:"type:text;not null" json:"result"`
	CreateTime  int64  `gorm:"not null" json:"create_time"`
	CreateBy    string `gorm:"size:100;not null" json:"create_by"`
	UpdateTime  int64  `gorm:"not null" json:"update_time"`
	UpdateBy    string `gorm:"size:100;not null" json:"update_by"`
}

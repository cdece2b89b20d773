package model

// ReconRunAsset is one staged input file belonging to a run. DataType says
// which feed the file carries (see consts.DataType*).
type ReconRunAsset struct {
	ID         int64  `gorm:"primary_key" json:"id"`
	ReconRunID int64  `gorm:"not null;index" json:"recon_run_id"`
	DataType   int64  `gorm:"not null" json:"data_type"`
	FileName   string `gorm:"size:100;not null" json:"file_name"`
	FileUrl    string `gorm:"size:255;not null" json:"file_url"`
	CreateTime int64  `gorm:"not null" json:"create_time"`
	CreateBy   string `gorm:"size:100;not null" json:"create_by"`
}

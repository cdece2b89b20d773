package dao

import (
	"fmt"

	"github.com/rrtools/settlement-ledger/infra/db/model"
)

func (d *dao) CreateReconRunAsset(asset model.ReconRunAsset) error {
	if err := d.db.Create(&asset).Error; err != nil {
		return fmt.Errorf("failed to save run asset: %w", err)
	}
	return nil
}

func (d *dao) GetReconRunAssetsByRunID(runID int64) ([]model.ReconRunAsset, error) {
	var assets []model.ReconRunAsset
	if err := d.db.Where("recon_run_id = ?", runID).Find(&assets).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch run assets: %w", err)
	}
	return assets, nil
}

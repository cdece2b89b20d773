package dao

import (
	"fmt"

	"github.com/rrtools/settlement-ledger/infra/db/model"
)

func (d *dao) ListReconRuns() ([]model.ReconRun, error) {
	var runs []model.ReconRun
	if err := d.db.Order("create_time DESC").Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

func (d *dao) GetReconRunsByStatusList(statusList []int) ([]model.ReconRun, error) {
	var runs []model.ReconRun
	if err := d.db.
		Select("id").
		Where("status IN (?)", statusList).
		Order("create_time ASC").
		Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

func (d *dao) GetReconRunByID(runID int64) (model.ReconRun, error) {
	var run model.ReconRun
	if err := d.db.First(&run, runID).Error; err != nil {
		return run, fmt.Errorf("run not found: %w", err)
	}
	return run, nil
}

func (d *dao) CreateReconRun(run *model.ReconRun) error {
	if err := d.db.Create(run).Error; err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

func (d *dao) UpdateReconRun(run model.ReconRun) error {
	if err := d.db.Save(&run).Error; err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

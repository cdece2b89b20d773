package dao

import (
	"github.com/rrtools/settlement-ledger/infra/db/model"

	"github.com/jinzhu/gorm"
)

type DaoMethod interface {
	ListReconRuns() ([]model.ReconRun, error)
	GetReconRunsByStatusList(statusList []int) ([]model.ReconRun, error)
	GetReconRunByID(runID int64) (model.ReconRun, error)
	CreateReconRun(run *model.ReconRun) error
	UpdateReconRun(run model.ReconRun) error
	CreateReconRunAsset(asset model.ReconRunAsset) error
	GetReconRunAssetsByRunID(runID int64) ([]model.ReconRunAsset, error)
}

type dao struct {
	db *gorm.DB
}

func NewDaoMethod(db *gorm.DB) DaoMethod {
	return &dao{db: db}
}

package reconcile

import (
	"context"

	"github.com/jinzhu/gorm"

	"github.com/rrtools/settlement-ledger/infra/db/dao"
	"github.com/rrtools/settlement-ledger/infra/db/model"
	"github.com/rrtools/settlement-ledger/infra/locker"
)

type RunUsecase interface {
	ProcessRunInit(paytmCSV, razorpayCSV string, shopifyCSVs []string, operator string) (*model.ReconRun, error)
	ProcessRunJob(ctx context.Context, runID int64) error
	GetRunResult(runID int64) (model.ReconRun, error)
	ListRuns() ([]model.ReconRun, error)
	TryAcquireRun(ctx context.Context) (bool, int64, error)
	ReleaseRun(ctx context.Context, runID int64)
}

type runUsecase struct {
	dao       dao.DaoMethod
	locker    *locker.Locker
	uploadDir string
	outputDir string
}

func NewRunUsecase(db *gorm.DB, lk *locker.Locker, uploadDir, outputDir string) RunUsecase {
	return &runUsecase{
		dao:       dao.NewDaoMethod(db),
		locker:    lk,
		uploadDir: uploadDir,
		outputDir: outputDir,
	}
}

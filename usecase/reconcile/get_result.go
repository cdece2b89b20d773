package reconcile

import (
	"github.com/rrtools/settlement-ledger/infra/db/model"
)

func (u *runUsecase) GetRunResult(runID int64) (model.ReconRun, error) {
	return u.dao.GetReconRunByID(runID)
}

func (u *runUsecase) ListRuns() ([]model.ReconRun, error) {
	return u.dao.ListReconRuns()
}

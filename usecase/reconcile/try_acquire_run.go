package reconcile

import (
	"context"

	"github.com/labstack/gommon/log"

	"github.com/rrtools/settlement-ledger/consts"
)

// TryAcquireRun picks the oldest pending run not already held by another
// worker. Running runs stay eligible so a restarted worker can re-execute
// them; the computation is idempotent.
func (u *runUsecase) TryAcquireRun(ctx context.Context) (bool, int64, error) {
	runs, err := u.dao.GetReconRunsByStatusList([]int{consts.StatusInit, consts.StatusRunning})
	if err != nil {
		return false, 0, err
	}

	for _, run := range runs {
		if !u.locker.Acquire(run.ID) {
			continue
		}
		log.Infof("[RunLock] acquired run %d", run.ID)
		return true, run.ID, nil
	}

	return false, 0, nil
}

func (u *runUsecase) ReleaseRun(ctx context.Context, runID int64) {
	u.locker.Release(runID)
	log.Infof("[RunLock] released run %d", runID)
}

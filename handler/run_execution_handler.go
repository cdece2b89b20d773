package handler

import (
	"context"
)

// RunExecution is the cron-side entry point: grab one pending run if any is
// free and execute it. Returning nil with no work is the idle case.
func (h *ReconHandler) RunExecution(ctx context.Context) error {
	acquired, runID, err := h.Usecase.TryAcquireRun(ctx)
	if err != nil {
		return err
	}
	if !acquired {
		return nil
	}
	defer h.Usecase.ReleaseRun(ctx, runID)

	return h.Usecase.ProcessRunJob(ctx, runID)
}

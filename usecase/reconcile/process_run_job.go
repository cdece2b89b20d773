package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"

	"github.com/rrtools/settlement-ledger/consts"
	"github.com/rrtools/settlement-ledger/entity"
	"github.com/rrtools/settlement-ledger/infra/db/model"
)

// ProcessRunJob executes one reconciliation run end to end: parse the
// staged feeds, match settlement events against the order pool, write both
// output tables and persist the summary. The whole computation is one
// synchronous pass; re-running after fixing an input file is the recovery
// path for failed runs.
func (u *runUsecase) ProcessRunJob(ctx context.Context, runID int64) error {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("[ReconJob] Panic recovered for run %d: %v", runID, r)
			u.failRun(runID, fmt.Sprintf("panic: %v", r))
		}
	}()

	log.Infof("[ReconJob] Starting run %d", runID)

	run, err := u.dao.GetReconRunByID(runID)
	if err != nil {
		log.Errorf("[ReconJob] Could not fetch run %d: %v", runID, err)
		return err
	}

	assets, err := u.dao.GetReconRunAssetsByRunID(runID)
	if err != nil {
		log.Errorf("[ReconJob] Could not fetch assets for run %d: %v", runID, err)
		return err
	}

	run.Status = consts.StatusRunning
	run.UpdateTime = time.Now().Unix()
	run.UpdateBy = "system"
	if err := u.dao.UpdateReconRun(run); err != nil {
		return err
	}

	summary, err := u.reconcileAssets(runID, assets)
	if err != nil {
		log.Errorf("[ReconJob] Run %d failed: %v", runID, err)
		u.failRun(runID, err.Error())
		return err
	}

	resultJSON, err := json.Marshal(summary)
	if err != nil {
		u.failRun(runID, err.Error())
		return fmt.Errorf("failed to marshal run summary: %w", err)
	}

	run.Status = consts.StatusFinished
	run.TotalTxnRow = int64(summary.TotalTransactions)
	run.Result = string(resultJSON)
	run.UpdateTime = time.Now().Unix()
	run.UpdateBy = "system"
	if err := u.dao.UpdateReconRun(run); err != nil {
		return err
	}

	log.Infof("[ReconJob] Run %d completed: %d transactions, %d matched, %d residual orders",
		runID, summary.TotalTransactions, summary.Matched, summary.ResidualOrders)
	return nil
}

// reconcileAssets runs the engine over the staged files of a run.
func (u *runUsecase) reconcileAssets(runID int64, assets []model.ReconRunAsset) (*entity.RunSummary, error) {
	paytmPath, err := findAssetPath(assets, consts.DataTypePaytmSettlement)
	if err != nil {
		return nil, err
	}
	razorpayPath, err := findAssetPath(assets, consts.DataTypeRazorpaySettlement)
	if err != nil {
		return nil, err
	}
	shopifyPaths := assetPaths(assets, consts.DataTypeShopifyOrders)
	if len(shopifyPaths) == 0 {
		return nil, errors.New("missing orders export files")
	}

	paytmTxns, err := parsePaytmSettlements(paytmPath)
	if err != nil {
		return nil, err
	}
	razorpayTxns, err := parseRazorpaySettlements(razorpayPath)
	if err != nil {
		return nil, err
	}
	pool, err := buildOrderPool(shopifyPaths)
	if err != nil {
		return nil, err
	}

	sources := [][]entity.SettlementTxn{paytmTxns, razorpayTxns}
	residual, collisions := matchOrders(sources, pool)
	rows := combineLedger(sources)

	log.Infof("[ReconJob] Matched orders for run %d: ledger=%d residual=%d collisions=%d",
		runID, len(rows), len(residual), len(collisions))

	ledgerPath, residualPath, err := exportRunOutputs(u.outputDir, runID, rows, residual)
	if err != nil {
		return nil, err
	}

	summary := buildRunSummary(rows, residual, collisions)
	summary.LedgerFile = ledgerPath
	summary.ResidualFile = residualPath
	return summary, nil
}

func buildRunSummary(rows []entity.LedgerRow, residual []entity.OrderCandidate, collisions []string) *entity.RunSummary {
	summary := &entity.RunSummary{
		TotalTransactions:     len(rows),
		TotalCredit:           decimal.Zero,
		TotalDebit:            decimal.Zero,
		ResidualOrders:        len(residual),
		CrossSourceCollisions: collisions,
	}
	for _, r := range rows {
		if r.OrderRef != "" {
			summary.Matched++
		} else {
			summary.Unmatched++
		}
		if r.Credit.Valid {
			summary.TotalCredit = summary.TotalCredit.Add(r.Credit.Decimal)
		}
		if r.Debit.Valid {
			summary.TotalDebit = summary.TotalDebit.Add(r.Debit.Decimal)
		}
	}
	return summary
}

func (u *runUsecase) failRun(runID int64, msg string) {
	run, err := u.dao.GetReconRunByID(runID)
	if err != nil {
		log.Errorf("[ReconJob] Could not mark run %d failed: %v", runID, err)
		return
	}
	payload, _ := json.Marshal(map[string]string{"error": msg})
	run.Status = consts.StatusFailed
	run.Result = string(payload)
	run.UpdateTime = time.Now().Unix()
	run.UpdateBy = "system"
	if err := u.dao.UpdateReconRun(run); err != nil {
		log.Errorf("[ReconJob] Could not mark run %d failed: %v", runID, err)
	}
}

func findAssetPath(assets []model.ReconRunAsset, dataType int64) (string, error) {
	for _, asset := range assets {
		if asset.DataType == dataType {
			return asset.FileUrl, nil
		}
	}
	return "", fmt.Errorf("missing asset of type %d", dataType)
}

func assetPaths(assets []model.ReconRunAsset, dataType int64) []string {
	var paths []string
	for _, asset := range assets {
		if asset.DataType == dataType {
			paths = append(paths, asset.FileUrl)
		}
	}
	return paths
}

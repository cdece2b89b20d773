package reconcile

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rrtools/settlement-ledger/consts"
	"github.com/rrtools/settlement-ledger/infra/db/model"
	"github.com/rrtools/settlement-ledger/utils"
)

// ProcessRunInit validates and stages the uploaded files, then registers a
// pending run for the cron workers to pick up.
func (u *runUsecase) ProcessRunInit(paytmCSV, razorpayCSV string, shopifyCSVs []string, operator string) (*model.ReconRun, error) {
	now := time.Now().Unix()

	type input struct {
		path     string
		dataType int64
	}
	inputs := []input{
		{paytmCSV, consts.DataTypePaytmSettlement},
		{razorpayCSV, consts.DataTypeRazorpaySettlement},
	}
	for _, p := range shopifyCSVs {
		inputs = append(inputs, input{p, consts.DataTypeShopifyOrders})
	}

	staged := make([]input, 0, len(inputs))
	for _, in := range inputs {
		if err := utils.ValidateCSVPath(in.path); err != nil {
			return nil, err
		}
		url, err := u.stageFile(in.path)
		if err != nil {
			return nil, fmt.Errorf("failed to stage %s: %w", in.path, err)
		}
		staged = append(staged, input{url, in.dataType})
	}

	run := &model.ReconRun{
		Status:     consts.StatusInit,
		Result:     "",
		CreateTime: now,
		CreateBy:   operator,
		UpdateTime: now,
		UpdateBy:   operator,
	}
	if err := u.dao.CreateReconRun(run); err != nil {
		return nil, err
	}

	for _, s := range staged {
		asset := model.ReconRunAsset{
			ReconRunID: run.ID,
			DataType:   s.dataType,
			FileName:   filepath.Base(s.path),
			FileUrl:    s.path,
			CreateTime: now,
			CreateBy:   operator,
		}
		if err := u.dao.CreateReconRunAsset(asset); err != nil {
			return nil, err
		}
	}

	return run, nil
}

// stageFile copies an input into the uploads dir. This stands in for object
// storage; swap in a real uploader for production deployments.
func (u *runUsecase) stageFile(path string) (string, error) {
	input, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(u.uploadDir, 0o755); err != nil {
		return "", err
	}

	destPath := filepath.Join(u.uploadDir, fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(path)))
	if err := os.WriteFile(destPath, input, 0o644); err != nil {
		return "", err
	}

	return destPath, nil
}

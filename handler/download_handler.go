package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rrtools/settlement-ledger/consts"
	"github.com/rrtools/settlement-ledger/entity"
)

// DownloadResult streams one of the two output tables of a finished run:
// table=ledger (default) or table=residual.
func (h *ReconHandler) DownloadResult(w http.ResponseWriter, r *http.Request) {
	runID, err := strconv.ParseInt(r.URL.Query().Get("run_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, APIResponse{
			Status:  "error",
			Message: "run_id must be a valid integer",
		})
		return
	}

	run, err := h.Usecase.GetRunResult(runID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, APIResponse{
			Status:  "error",
			Message: "Run not found",
		})
		return
	}
	if run.Status != consts.StatusFinished {
		writeJSON(w, http.StatusConflict, APIResponse{
			Status:  "error",
			Message: "Run has not finished",
		})
		return
	}

	var summary entity.RunSummary
	if err := json.Unmarshal([]byte(run.Result), &summary); err != nil {
		writeJSON(w, http.StatusInternalServerError, APIResponse{
			Status:  "error",
			Message: "Run result is unreadable",
		})
		return
	}

	table := r.URL.Query().Get("table")
	if table == "" {
		table = "ledger"
	}
	var path, name string
	switch table {
	case "ledger":
		path, name = summary.LedgerFile, "processed_transactions.csv"
	case "residual":
		path, name = summary.ResidualFile, "unmatched_orders.csv"
	default:
		writeJSON(w, http.StatusBadRequest, APIResponse{
			Status:  "error",
			Message: "table must be ledger or residual",
		})
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeFile(w, r, path)
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/gommon/log"
)

type ProcessReconciliationRequest struct {
	PaytmCSVPath    string   `json:"paytm_csv_path"`
	RazorpayCSVPath string   `json:"razorpay_csv_path"`
	ShopifyCSVPaths []string `json:"shopify_csv_paths"`
	Operator        string   `json:"operator"`
}

// ProcessReconciliation registers a run over one Paytm settlement file, one
// Razorpay settlement file and one or more Shopify order-export pages.
func (h *ReconHandler) ProcessReconciliation(w http.ResponseWriter, r *http.Request) {
	var req ProcessReconciliationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, APIResponse{
			Status:  "error",
			Message: "Invalid request body",
		})
		return
	}

	if req.PaytmCSVPath == "" || req.RazorpayCSVPath == "" || len(req.ShopifyCSVPaths) == 0 {
		writeJSON(w, http.StatusBadRequest, APIResponse{
			Status:  "error",
			Message: "paytm_csv_path, razorpay_csv_path and shopify_csv_paths are required",
		})
		return
	}

	run, err := h.Usecase.ProcessRunInit(req.PaytmCSVPath, req.RazorpayCSVPath, req.ShopifyCSVPaths, req.Operator)
	if err != nil {
		log.Errorf("[ProcessReconciliation] init failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, APIResponse{
			Status:  "error",
			Message: "Failed to register reconciliation run",
		})
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Status: "success",
		Data:   run,
	})
}

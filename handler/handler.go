package handler

import (
	"encoding/json"
	"net/http"

	usecase "github.com/rrtools/settlement-ledger/usecase/reconcile"
)

type ReconHandler struct {
	Usecase usecase.RunUsecase
}

func NewReconHandler(uc usecase.RunUsecase) *ReconHandler {
	return &ReconHandler{Usecase: uc}
}

type APIResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, resp APIResponse) {
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(resp)
}

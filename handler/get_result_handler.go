package handler

import (
	"net/http"
	"strconv"
)

// GetResult returns one run when run_id is given, else every run newest
// first.
func (h *ReconHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	runIDStr := r.URL.Query().Get("run_id")
	if runIDStr == "" {
		runs, err := h.Usecase.ListRuns()
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, APIResponse{
				Status:  "error",
				Message: "Failed to list runs",
			})
			return
		}
		writeJSON(w, http.StatusOK, APIResponse{Status: "success", Data: runs})
		return
	}

	runID, err := strconv.ParseInt(runIDStr, 10, 64)
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

	writeJSON(w, http.StatusOK, APIResponse{Status: "success", Data: run})
}

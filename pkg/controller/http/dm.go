package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/herald/pkg/usecase"
	"github.com/secmon-lab/herald/pkg/utils/errutil"
	"github.com/secmon-lab/herald/pkg/utils/logging"
)

const (
	msgDMFieldsRequired = "Role ID and message are required"
	// maxRequestBodySize bounds JSON request bodies
	maxRequestBodySize = 64 * 1024
)

// dmHandler runs a broadcast. Partial delivery failures are part of a
// successful response; only a broadcast that cannot start reports success=false.
func dmHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dmRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodySize)).Decode(&req); err != nil {
			errutil.HandleHTTP(r.Context(), goerr.Wrap(err, "failed to decode dm request"), "invalid dm request", http.StatusBadRequest)
			writeResult(w, r, http.StatusBadRequest, false, msgDMFieldsRequired)
			return
		}

		if err := req.Validate(); err != nil {
			msg := msgDMFieldsRequired
			if req.hasRequired() {
				msg = "Invalid request: " + err.Error()
			}
			logging.From(r.Context()).Info("rejected dm request", "error", err.Error())
			writeResult(w, r, http.StatusBadRequest, false, msg)
			return
		}

		result, err := uc.Broadcast.Broadcast(r.Context(), req.RoleID, req.Message)
		if err != nil {
			if errors.Is(err, usecase.ErrValidation) {
				writeResult(w, r, http.StatusBadRequest, false, msgDMFieldsRequired)
				return
			}
			errutil.HandleHTTP(r.Context(), err, "failed to send DMs", http.StatusInternalServerError)
			writeResult(w, r, http.StatusOK, false, "Failed to send DMs: "+usecase.Reason(err))
			return
		}

		writeResult(w, r, http.StatusOK, true, result.Summary())
	}
}

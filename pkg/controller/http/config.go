package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/herald/pkg/usecase"
	"github.com/secmon-lab/herald/pkg/utils/errutil"
)

// configHandler records submitted settings in the activity log. Nothing is
// applied to the running process.
func configHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req configRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodySize)).Decode(&req); err != nil {
			errutil.HandleHTTP(r.Context(), goerr.Wrap(err, "failed to decode config request"), "invalid config request", http.StatusBadRequest)
			writeResult(w, r, http.StatusBadRequest, false, "Invalid configuration: malformed JSON body")
			return
		}

		if err := req.Validate(); err != nil {
			writeResult(w, r, http.StatusBadRequest, false, "Invalid configuration: "+err.Error())
			return
		}

		if err := uc.Config.Update(r.Context(), req.toModel()); err != nil {
			errutil.HandleHTTP(r.Context(), err, "failed to update configuration", http.StatusInternalServerError)
			writeResult(w, r, http.StatusOK, false, "Failed to update configuration")
			return
		}

		writeResult(w, r, http.StatusOK, true, "Configuration updated successfully")
	}
}

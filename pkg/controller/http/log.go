package http

import (
	"net/http"

	"github.com/secmon-lab/herald/pkg/usecase"
	"github.com/secmon-lab/herald/pkg/utils/errutil"
)

func logsHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := uc.Log.List(r.Context(), r.URL.Query().Get("filter"))
		if err != nil {
			errutil.HandleHTTP(r.Context(), err, "failed to retrieve logs", http.StatusInternalServerError)
			writeMessage(w, r, http.StatusInternalServerError, "Failed to retrieve logs")
			return
		}
		writeJSON(w, r, http.StatusOK, newLogEntryResponses(entries))
	}
}

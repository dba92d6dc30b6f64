package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/herald/pkg/usecase"
	"github.com/secmon-lab/herald/pkg/utils/errutil"
)

func botStatusHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := uc.Bot.Status(r.Context())
		if err != nil {
			errutil.HandleHTTP(r.Context(), err, "failed to get bot status", http.StatusInternalServerError)
			writeMessage(w, r, http.StatusInternalServerError, "Failed to get bot status")
			return
		}
		writeJSON(w, r, http.StatusOK, newBotStatusResponse(status))
	}
}

func botSystemHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := uc.Bot.SystemInfo(r.Context())
		if err != nil {
			errutil.HandleHTTP(r.Context(), err, "failed to get system info", http.StatusInternalServerError)
			writeMessage(w, r, http.StatusInternalServerError, "Failed to get system info")
			return
		}
		writeJSON(w, r, http.StatusOK, newSystemInfoResponse(info))
	}
}

func botRestartHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := uc.Bot.Restart(r.Context()); err != nil {
			errutil.HandleHTTP(r.Context(), err, "failed to restart bot", http.StatusInternalServerError)
			writeResult(w, r, http.StatusOK, false, "Failed to restart bot")
			return
		}
		writeResult(w, r, http.StatusOK, true, "Bot successfully restarted")
	}
}

func serversHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guilds, err := uc.Bot.Servers(r.Context())
		if err != nil {
			errutil.HandleHTTP(r.Context(), err, "failed to get servers", http.StatusInternalServerError)
			writeMessage(w, r, http.StatusInternalServerError, "Failed to get servers")
			return
		}
		writeJSON(w, r, http.StatusOK, newServerResponses(guilds))
	}
}

func rolesHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roles, err := uc.Bot.Roles(r.Context())
		if err != nil {
			errutil.HandleHTTP(r.Context(), err, "failed to get roles", http.StatusInternalServerError)
			writeMessage(w, r, http.StatusInternalServerError, "Failed to get roles")
			return
		}
		writeJSON(w, r, http.StatusOK, newRoleResponses(roles))
	}
}

// roleMembersHandler answers every failure, unknown roles included, with 500
func roleMembersHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roleID := chi.URLParam(r, "roleId")

		members, err := uc.Bot.RoleMembers(r.Context(), roleID)
		if err != nil {
			errutil.HandleHTTP(r.Context(), goerr.Wrap(err, "role members", goerr.V(usecase.RoleIDKey, roleID)),
				"failed to get role members", http.StatusInternalServerError)
			writeMessage(w, r, http.StatusInternalServerError, "Failed to get role members")
			return
		}
		writeJSON(w, r, http.StatusOK, newRoleMemberResponses(members))
	}
}

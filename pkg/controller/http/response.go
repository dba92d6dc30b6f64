package http

import (
	"encoding/json"
	"net/http"

	"github.com/secmon-lab/herald/pkg/domain/model"
	"github.com/secmon-lab/herald/pkg/utils/logging"
	"github.com/secmon-lab/herald/pkg/utils/safe"
)

// timestampLayout is RFC 3339 with millisecond precision
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// messageResponse is the error body of read endpoints
type messageResponse struct {
	Message string `json:"message"`
}

// resultResponse is the body of mutating endpoints
type resultResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type botStatusResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Server  string `json:"server"`
	Latency string `json:"latency"`
}

func newBotStatusResponse(s *model.BotStatus) botStatusResponse {
	server := s.ServerName
	if server == "" {
		server = "N/A"
	}
	return botStatusResponse{
		Status:  s.State.String(),
		Uptime:  s.UptimeText(),
		Server:  server,
		Latency: s.LatencyText(),
	}
}

type systemInfoResponse struct {
	GoVersion         string  `json:"goVersion"`
	Goroutines        int     `json:"goroutines"`
	CPUCount          int     `json:"cpuCount"`
	CPUPercent        float64 `json:"cpuPercent"`
	MemoryUsedPercent float64 `json:"memoryUsedPercent"`
	MemoryUsedMB      uint64  `json:"memoryUsedMB"`
	MemoryTotalMB     uint64  `json:"memoryTotalMB"`
	Platform          string  `json:"platform"`
	PlatformVersion   string  `json:"platformVersion"`
	KernelVersion     string  `json:"kernelVersion"`
}

func newSystemInfoResponse(info *model.SystemInfo) systemInfoResponse {
	return systemInfoResponse{
		GoVersion:         info.GoVersion,
		Goroutines:        info.Goroutines,
		CPUCount:          info.CPUCount,
		CPUPercent:        info.CPUPercent,
		MemoryUsedPercent: info.MemoryUsedPercent,
		MemoryUsedMB:      info.MemoryUsedMB,
		MemoryTotalMB:     info.MemoryTotalMB,
		Platform:          info.Platform,
		PlatformVersion:   info.PlatformVersion,
		KernelVersion:     info.KernelVersion,
	}
}

type logEntryResponse struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func newLogEntryResponses(entries []*model.LogEntry) []logEntryResponse {
	resp := make([]logEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = logEntryResponse{
			ID:        string(e.ID),
			Type:      e.Type.String(),
			Message:   e.Message,
			Timestamp: e.CreatedAt.UTC().Format(timestampLayout),
		}
	}
	return resp
}

type serverResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newServerResponses(guilds []*model.Guild) []serverResponse {
	resp := make([]serverResponse, len(guilds))
	for i, g := range guilds {
		resp[i] = serverResponse{ID: g.ID, Name: g.Name}
	}
	return resp
}

type roleResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MemberCount int    `json:"memberCount"`
}

func newRoleResponses(roles []*model.Role) []roleResponse {
	resp := make([]roleResponse, len(roles))
	for i, r := range roles {
		resp[i] = roleResponse{ID: r.ID, Name: r.Name, MemberCount: r.MemberCount}
	}
	return resp
}

type roleMemberResponse struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Tag            string `json:"tag"`
	AvatarInitials string `json:"avatarInitials"`
	Status         string `json:"status"`
}

func newRoleMemberResponses(members []*model.RoleMember) []roleMemberResponse {
	resp := make([]roleMemberResponse, len(members))
	for i, m := range members {
		resp[i] = roleMemberResponse{
			ID:             m.ID,
			Username:       m.Username,
			Tag:            m.Tag,
			AvatarInitials: m.AvatarInitials,
			Status:         m.Status.String(),
		}
	}
	return resp
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		logging.From(r.Context()).Error("failed to marshal response", "error", err.Error())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		safe.Write(r.Context(), w, []byte(`{"message":"Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}

func writeMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, messageResponse{Message: message})
}

func writeResult(w http.ResponseWriter, r *http.Request, status int, success bool, message string) {
	writeJSON(w, r, status, resultResponse{Success: success, Message: message})
}

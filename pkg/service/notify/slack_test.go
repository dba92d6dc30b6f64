package notify_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/herald/pkg/domain/model"
	"github.com/secmon-lab/herald/pkg/domain/types"
	"github.com/secmon-lab/herald/pkg/service/notify"
)

func newResult(sent, failed int) *model.BroadcastResult {
	result := &model.BroadcastResult{RoleID: "r1", RoleName: "Moderators"}
	for i := range sent {
		m := model.NewRoleMember(fmt.Sprintf("s%d", i), fmt.Sprintf("sent%d", i), "0", "")
		m.Status = types.MemberStatusSent
		result.Members = append(result.Members, m)
	}
	for i := range failed {
		m := model.NewRoleMember(fmt.Sprintf("f%d", i), fmt.Sprintf("failed%d", i), "0", "")
		m.Status = types.MemberStatusFailed
		result.Members = append(result.Members, m)
	}
	result.Tally()
	return result
}

func TestNewSlackWebhook(t *testing.T) {
	_, err := notify.NewSlackWebhook("")
	gt.Value(t, err).NotNil()
}

func TestBroadcastText(t *testing.T) {
	gt.Value(t, notify.BroadcastText(newResult(3, 1))).
		Equal("DM broadcast to role Moderators: 3 sent, 1 failed")

	noName := &model.BroadcastResult{RoleID: "r42"}
	gt.Value(t, notify.BroadcastText(noName)).
		Equal("DM broadcast to role r42: 0 sent, 0 failed")
}

func TestSlackWebhookNotifyBroadcast(t *testing.T) {
	t.Run("posts summary", func(t *testing.T) {
		var body map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gt.Value(t, r.Method).Equal(http.MethodPost)
			raw, err := io.ReadAll(r.Body)
			gt.NoError(t, err)
			gt.NoError(t, json.Unmarshal(raw, &body))
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		n, err := notify.NewSlackWebhook(srv.URL)
		gt.NoError(t, err).Required()

		gt.NoError(t, n.NotifyBroadcast(context.Background(), newResult(2, 12))).Required()
		gt.Value(t, body["text"]).Equal("DM broadcast to role Moderators: 2 sent, 12 failed")

		blocks, ok := body["blocks"].([]any)
		gt.Bool(t, ok).True()
		gt.Array(t, blocks).Length(2)

		raw, err := json.Marshal(blocks[1])
		gt.NoError(t, err).Required()
		gt.String(t, string(raw)).Contains("failed0")
		gt.String(t, string(raw)).Contains("and 2 more")
	})

	t.Run("no failure block when all sent", func(t *testing.T) {
		var body map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gt.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		}))
		defer srv.Close()

		n, err := notify.NewSlackWebhook(srv.URL)
		gt.NoError(t, err).Required()
		gt.NoError(t, n.NotifyBroadcast(context.Background(), newResult(1, 0))).Required()

		blocks, ok := body["blocks"].([]any)
		gt.Bool(t, ok).True()
		gt.Array(t, blocks).Length(1)
	})

	t.Run("webhook error is returned", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		n, err := notify.NewSlackWebhook(srv.URL)
		gt.NoError(t, err).Required()
		gt.Value(t, n.NotifyBroadcast(context.Background(), newResult(1, 0))).NotNil()
	})
}

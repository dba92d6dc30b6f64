package model

import (
	"fmt"

	"github.com/secmon-lab/herald/pkg/domain/types"
)

// BroadcastResult is the outcome of sending one message to every member of a
// role. SuccessCount + FailedCount always equals len(Members).
type BroadcastResult struct {
	RoleID       string
	RoleName     string
	Members      []*RoleMember
	SuccessCount int
	FailedCount  int
}

// Summary is the tally sentence shown to operators
func (r *BroadcastResult) Summary() string {
	return fmt.Sprintf("Successfully sent DM to %d members. %d failed.", r.SuccessCount, r.FailedCount)
}

// RoleLabel returns the role name if known, otherwise its ID
func (r *BroadcastResult) RoleLabel() string {
	if r.RoleName != "" {
		return r.RoleName
	}
	return r.RoleID
}

// Tally recounts SuccessCount and FailedCount from member statuses
func (r *BroadcastResult) Tally() {
	r.SuccessCount, r.FailedCount = 0, 0
	for _, m := range r.Members {
		switch m.Status {
		case types.MemberStatusSent:
			r.SuccessCount++
		case types.MemberStatusFailed:
			r.FailedCount++
		}
	}
}

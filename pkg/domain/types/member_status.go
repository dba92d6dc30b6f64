package types

// MemberStatus is the delivery state of a role member during a broadcast.
// It is never stored between requests.
type MemberStatus string

const (
	MemberStatusPending MemberStatus = "pending"
	MemberStatusSent    MemberStatus = "sent"
	MemberStatusFailed  MemberStatus = "failed"
)

// IsValid checks if the member status is valid
func (s MemberStatus) IsValid() bool {
	switch s {
	case MemberStatusPending,
		MemberStatusSent,
		MemberStatusFailed:
		return true
	default:
		return false
	}
}

func (s MemberStatus) String() string {
	return string(s)
}

package types

// BotState is the connection state reported on the dashboard
type BotState string

const (
	BotStateOnline  BotState = "online"
	BotStateOffline BotState = "offline"
)

func (s BotState) String() string {
	return string(s)
}

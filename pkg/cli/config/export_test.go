package config

import "time"

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}

// NewDiscordForTest creates a Discord config for testing purposes
func NewDiscordForTest(token, guildID, prefix string, timeout time.Duration) *Discord {
	return &Discord{token: token, guildID: guildID, commandPrefix: prefix, connectTimeout: timeout}
}

// NewPresenceForTest creates a Presence config for testing purposes
func NewPresenceForTest(interval time.Duration, messages []string) *Presence {
	return &Presence{interval: interval, messages: messages}
}

// NewNotifyForTest creates a Notify config for testing purposes
func NewNotifyForTest(slackWebhookURL string) *Notify {
	return &Notify{slackWebhookURL: slackWebhookURL}
}

func (x *Discord) TokenForTest() string {
	return x.token
}

func (x *Broadcast) DMConcurrencyForTest() int {
	return x.dmConcurrency
}

func (x *Presence) IntervalForTest() time.Duration {
	return x.interval
}

package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/herald/pkg/cli/config"
)

func TestNotifyConfigure(t *testing.T) {
	t.Run("disabled without webhook", func(t *testing.T) {
		n, err := config.NewNotifyForTest("").Configure()
		gt.NoError(t, err)
		gt.Bool(t, n == nil).True()
	})

	t.Run("slack webhook", func(t *testing.T) {
		n, err := config.NewNotifyForTest("https://hooks.slack.com/services/T/B/X").Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, n).NotNil()
	})
}

package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/herald/pkg/cli/config"
	"github.com/secmon-lab/herald/pkg/utils/logging"
)

func keepDefaultLogger(t *testing.T) {
	prev := logging.Default()
	t.Cleanup(func() { logging.SetDefault(prev) })
}

func TestLoggerConfigure(t *testing.T) {
	t.Run("json to file with secrets masked", func(t *testing.T) {
		keepDefaultLogger(t)
		path := filepath.Join(t.TempDir(), "herald.log")

		closer, err := config.NewLoggerForTest("debug", "json", path).Configure()
		gt.NoError(t, err).Required()

		logging.Default().Debug("broadcast finished",
			"role_id", "R1",
			"webhook", "https://hooks.slack.com/services/T000/B000/XXXX")
		closer()

		data, err := os.ReadFile(path)
		gt.NoError(t, err).Required()
		out := string(data)
		gt.String(t, out).Contains(`"msg":"broadcast finished"`)
		gt.String(t, out).Contains(`"role_id":"R1"`)
		gt.Bool(t, strings.Contains(out, "T000/B000/XXXX")).False()
	})

	t.Run("level filters lower records", func(t *testing.T) {
		keepDefaultLogger(t)
		path := filepath.Join(t.TempDir(), "herald.log")

		closer, err := config.NewLoggerForTest("warn", "json", path).Configure()
		gt.NoError(t, err).Required()
		logging.Default().Info("quiet")
		logging.Default().Warn("loud")
		closer()

		data, err := os.ReadFile(path)
		gt.NoError(t, err).Required()
		gt.Bool(t, strings.Contains(string(data), "quiet")).False()
		gt.String(t, string(data)).Contains("loud")
	})

	t.Run("unknown level", func(t *testing.T) {
		_, err := config.NewLoggerForTest("verbose", "console", "stdout").Configure()
		gt.Error(t, err).Is(config.ErrInvalidLogger)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := config.NewLoggerForTest("info", "xml", "stderr").Configure()
		gt.Error(t, err).Is(config.ErrInvalidLogger)
	})
}

package cli_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/herald/pkg/cli"
	"github.com/secmon-lab/herald/pkg/cli/config"
	"github.com/secmon-lab/herald/pkg/utils/logging"
)

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	prev := logging.Default()
	t.Cleanup(func() { logging.SetDefault(prev) })

	logPath := filepath.Join(t.TempDir(), "herald.log")
	base := []string{"herald", "--log-output", logPath}
	return cli.Run(context.Background(), append(base, args...), "test")
}

func TestRunRejectsUnknownLogLevel(t *testing.T) {
	err := runCLI(t, "--log-level", "loud", "dm", "--role-id", "R1", "--message", "hi")
	gt.Error(t, err).Is(config.ErrInvalidLogger)
}

func TestDMRequiresToken(t *testing.T) {
	t.Setenv("HERALD_DISCORD_TOKEN", "")

	err := runCLI(t, "dm", "--role-id", "R1", "--message", "hello")
	gt.Error(t, err).Is(config.ErrMissingToken)
}

func TestDMRequiresRoleAndMessage(t *testing.T) {
	err := runCLI(t, "dm", "--discord-token", "dummy")
	gt.Error(t, err)
}

func TestServeRejectsMissingSettingsFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.toml")

	err := runCLI(t, "serve", "--config", missing, "--discord-token", "dummy")
	gt.Error(t, err).Is(config.ErrConfigNotFound)
}

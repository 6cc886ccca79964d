package wellhub

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/slok/wellhub/test/integration/testutils"
)

// Config holds integration test configuration loaded from environment variables.
type Config struct {
	Binary string
}

func (c *Config) defaults() error {
	if c.Binary == "" {
		c.Binary = "wellhub"
	}

	// go test changes the CWD to the package directory, relative paths are ambiguous.
	if !filepath.IsAbs(c.Binary) {
		return fmt.Errorf("WELLHUB_INTEGRATION_BINARY must be an absolute path, got %q", c.Binary)
	}
	if _, err := os.Stat(c.Binary); err != nil {
		return fmt.Errorf("wellhub binary not found at %q: %w", c.Binary, err)
	}

	return nil
}

// NewConfig loads integration test configuration from environment variables.
// If the config is invalid or the activation env var is not set, the test is skipped.
func NewConfig(t *testing.T) Config {
	t.Helper()

	const (
		envActivation = "WELLHUB_INTEGRATION"
		envBinary     = "WELLHUB_INTEGRATION_BINARY"
	)

	if os.Getenv(envActivation) != "true" {
		t.Skipf("Skipping integration test: %s is not set to 'true'", envActivation)
	}

	c := Config{Binary: os.Getenv(envBinary)}
	if err := c.defaults(); err != nil {
		t.Skipf("Skipping due to invalid config: %s", err)
	}

	return c
}

func env(dbPath string) []string {
	return []string{"WELLHUB_DB_PATH=" + dbPath}
}

// RunRegister registers a user with an answers file.
func RunRegister(ctx context.Context, config Config, dbPath, answersPath string) (stdout, stderr []byte, err error) {
	return testutils.RunWellhub(ctx, env(dbPath), config.Binary, fmt.Sprintf("register --answers %s --redirect-delay 10ms", answersPath), nil, true)
}

// RunRegisterInteractive registers a user answering the prompts from stdin.
func RunRegisterInteractive(ctx context.Context, config Config, dbPath string, answers []string) (stdout, stderr []byte, err error) {
	stdin := strings.NewReader(strings.Join(answers, "\n") + "\n")
	return testutils.RunWellhub(ctx, env(dbPath), config.Binary, "register --redirect-delay 10ms", stdin, true)
}

// RunToolRun runs tools for an account, fast and without progress output.
func RunToolRun(ctx context.Context, config Config, dbPath, account string, toolIDs ...string) (stdout, stderr []byte, err error) {
	args := append([]string{"tool", "run", "--account", account, "--tick-interval", "1ms", "--tick-step", "25", "--no-progress", "--format", "json"}, toolIDs...)
	return testutils.RunWellhubArgs(ctx, env(dbPath), config.Binary, args, nil, true)
}

// RunBalance returns the account balance as JSON.
func RunBalance(ctx context.Context, config Config, dbPath, account string) (stdout, stderr []byte, err error) {
	return testutils.RunWellhub(ctx, env(dbPath), config.Binary, fmt.Sprintf("credits balance --account %s --history --format json", account), nil, true)
}

// RunAddCredits tops up an account.
func RunAddCredits(ctx context.Context, config Config, dbPath, account string, amount int) (stdout, stderr []byte, err error) {
	return testutils.RunWellhub(ctx, env(dbPath), config.Binary, fmt.Sprintf("credits add %d --account %s", amount, account), nil, true)
}

// RunRunsList lists the runs of an account as JSON.
func RunRunsList(ctx context.Context, config Config, dbPath, account string) (stdout, stderr []byte, err error) {
	return testutils.RunWellhub(ctx, env(dbPath), config.Binary, fmt.Sprintf("runs list --account %s --format json", account), nil, true)
}

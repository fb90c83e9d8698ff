package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"job-match/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	// Run from a temp dir so a developer's .env is not picked up.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("APP_NAME", "jobmatch-test")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "0")
	t.Setenv("JWT_ACCESS_SECRET", "cli-secret")
	t.Setenv("JWT_ACCESS_EXPIRES_IN", "1h")
	t.Setenv("DB_HOST", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("LOG_LEVEL", "error")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "jobmatch version: unknown\n", out)
}

func TestTokenCommand(t *testing.T) {
	setRequiredEnv(t)
	user := uuid.New()

	out, err := run(t, "token", "--user", user.String())
	require.NoError(t, err)

	claims, err := jwt.NewHMACService("cli-secret", time.Hour).ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, user, claims.UserID)

	_, err = run(t, "token", "--user", "nope")
	assert.Error(t, err)
}

func TestImportCommand(t *testing.T) {
	setRequiredEnv(t)

	path := filepath.Join(t.TempDir(), "jobs.csv")
	require.NoError(t, os.WriteFile(path, []byte("title,company,jobId,required_skills\nSRE,Google,x1,go;linux\nSWE,Meta,,react\n"), 0o600))

	out, err := run(t, "import", "--file", path, "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, "2 jobs parsed from 1 file(s)\n", out)

	out, err = run(t, "import", "-f", path, "-f", path, "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, "4 jobs parsed from 2 file(s)\n", out)

	_, err = run(t, "import", "--file", path)
	assert.ErrorIs(t, err, errDatabaseRequired)

	_, err = run(t, "migrate")
	assert.ErrorIs(t, err, errDatabaseRequired)
}

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func logSingleField(t *testing.T, key, value string) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	handler := NewRedactingHandler(slog.NewJSONHandler(&buf, nil))
	logger := slog.New(handler)
	logger.Info("test message", slog.String(key, value))

	out := map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestRedactionPasswordField(t *testing.T) {
	t.Parallel()
	out := logSingleField(t, "password", "hunter2")
	require.Equal(t, "[REDACTED]", out["password"])
}

func TestRedactionDSNField(t *testing.T) {
	t.Parallel()
	out := logSingleField(t, "dsn", "root:hunter2@tcp(localhost:3306)/contact_database")
	require.Equal(t, "[REDACTED]", out["dsn"])
}

func TestRedactionIsCaseInsensitive(t *testing.T) {
	t.Parallel()
	out := logSingleField(t, "Password", "hunter2")
	require.Equal(t, "[REDACTED]", out["Password"])
}

func TestRedactionLeavesOtherFieldsIntact(t *testing.T) {
	t.Parallel()
	out := logSingleField(t, "email", "ada@example.com")
	require.Equal(t, "ada@example.com", out["email"])
}

func TestRedactionHandlesGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewRedactingHandler(slog.NewJSONHandler(&buf, nil)))
	logger.Info("connect",
		slog.Group("db",
			slog.String("host", "localhost"),
			slog.String("password", "hunter2"),
		),
	)

	out := map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	db, ok := out["db"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "localhost", db["host"])
	require.Equal(t, "[REDACTED]", db["password"])
}

func TestNewWritesToRotatingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "rolodex.log")
	logger, closer, err := New(Options{Level: "debug", File: path})
	require.NoError(t, err)

	logger.Debug("opened store", slog.String("database", "contact_database"))
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "opened store")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, _, err := New(Options{Level: "loud"})
	require.Error(t, err)
}

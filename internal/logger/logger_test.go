package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stdout) })
	return &buf
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	return entry
}

func TestJSON_DefaultLevel(t *testing.T) {
	buf := capture(t)

	JSON(time.UTC, map[string]any{"event": "db_migration_step", "status": "success"})

	entry := decode(t, buf)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "db_migration_step", entry["event"])
	assert.NotEmpty(t, entry["ts"])
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestJSON_ErrorStatusLevel(t *testing.T) {
	buf := capture(t)

	JSON(nil, map[string]any{"status": "error"})

	assert.Equal(t, "error", decode(t, buf)["level"])
}

func TestJSON_ExplicitLevelKept(t *testing.T) {
	buf := capture(t)

	JSON(time.UTC, map[string]any{"status": "error", "level": "warn"})

	assert.Equal(t, "warn", decode(t, buf)["level"])
}

func TestInfoAndError(t *testing.T) {
	buf := capture(t)
	Info(time.UTC, "server_starting", map[string]any{"addr": ":8080"})
	entry := decode(t, buf)
	assert.Equal(t, "server_starting", entry["msg"])
	assert.Equal(t, ":8080", entry["addr"])

	buf.Reset()
	Error(time.UTC, "server_failed", errors.New("boom"), nil)
	entry = decode(t, buf)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "boom", entry["error"])
}

func TestNew_WritesToOwnOutput(t *testing.T) {
	global := capture(t)
	var own bytes.Buffer

	New(&own).JSON(time.UTC, map[string]any{"method": "GET", "status": 200})

	assert.Empty(t, global.String())
	entry := decode(t, &own)
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, float64(200), entry["status"])
	assert.Equal(t, "info", entry["level"])
}

package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONEntries(t *testing.T) {
	var buf bytes.Buffer
	logger := New(InfoLevel, &buf)

	logger.WithField("benchmark", "booth").Info("pair completed",
		map[string]interface{}{"best": 0.5})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "pair completed", entry["message"])
	assert.Equal(t, "booth", entry["benchmark"])
	assert.Equal(t, 0.5, entry["best"])
	assert.NotEmpty(t, entry["timestamp"])
	assert.NotEmpty(t, entry["caller"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(WarnLevel, &buf)

	logger.Debug("hidden")
	logger.Info("hidden")
	assert.Zero(t, buf.Len())

	logger.Warn("visible")
	assert.NotZero(t, buf.Len())
}

func TestDerivedLoggersAreIndependent(t *testing.T) {
	var buf bytes.Buffer
	base := New(InfoLevel, &buf)
	derived := base.WithField("run", "r1")

	base.Info("no run field")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	_, has := entry["run"]
	assert.False(t, has, "fields added to a derived logger never leak to the base")

	buf.Reset()
	derived.Info("with run field")
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "r1", entry["run"])
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(InfoLevel, &buf)
	logger.format = "console"

	logger.Info("suite done", map[string]interface{}{"pairs": 4, "best": 0.25})

	line := buf.String()
	assert.True(t, strings.Contains(line, "[INFO] suite done"), line)
	assert.True(t, strings.Contains(line, "best=0.25"), line)
	assert.True(t, strings.Contains(line, "pairs=4"), line)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, parseLevel("debug"))
	assert.Equal(t, ErrorLevel, parseLevel("ERROR"))
	assert.Equal(t, InfoLevel, parseLevel("bogus"))
}

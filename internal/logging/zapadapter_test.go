package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestZapLoggerRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	zl := NewZapLogger(New(DebugLevel, &buf))

	zl.Info("tuning pass",
		zap.Float64("ratio", 3.5),
		zap.Int("workers", 7),
		zap.String("phase", "unpack"),
		zap.Bool("resumed", true),
	)
	require.NoError(t, zl.Sync())

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "tuning pass", entry["message"])
	// Floats travel through the zap field's integer slot and must decode back
	// bit-exact, not as a truncated integer.
	assert.Equal(t, 3.5, entry["ratio"])
	assert.Equal(t, float64(7), entry["workers"])
	assert.Equal(t, "unpack", entry["phase"])
	assert.Equal(t, true, entry["resumed"])
}

func TestZapLoggerWithCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	zl := NewZapLogger(New(InfoLevel, &buf))

	zl.With(zap.String("run", "run_1")).Info("started", zap.Float64("best", 0.25))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "run_1", entry["run"])
	assert.Equal(t, 0.25, entry["best"])
}

func TestZapLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	zl := NewZapLogger(New(ErrorLevel, &buf))

	zl.Debug("dropped")
	zl.Info("dropped")
	assert.Zero(t, buf.Len())

	zl.Error("kept", zap.String("reason", "boom"))
	assert.Contains(t, buf.String(), "kept")
	assert.Contains(t, buf.String(), "boom")
}

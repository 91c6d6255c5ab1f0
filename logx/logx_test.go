package logx_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/plus3/tetris/logx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLevelByName(t *testing.T) {
	assert.Equal(t, zapcore.InfoLevel, logx.LevelByName("info"))
	assert.Equal(t, zapcore.ErrorLevel, logx.LevelByName("error"))
	assert.Equal(t, zapcore.DebugLevel, logx.LevelByName("chatty"))
	assert.True(t, logx.ValidLevel("warn"))
	assert.False(t, logx.ValidLevel("chatty"))
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logx.New(logx.Options{Level: "info", Output: &buf})

	log.Debug("hidden")
	log.Info("game over", zap.Int("score", 1200))
	require.NoError(t, log.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "game over", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.EqualValues(t, 1200, entry["score"])
	assert.Contains(t, entry, "time")
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	log := logx.New(logx.Options{Level: "debug", Console: true, Dev: true, Output: &buf})

	log.Debug("spawn", zap.String("kind", "T"))
	require.NoError(t, log.Sync())

	assert.Contains(t, buf.String(), "spawn")
	assert.Contains(t, buf.String(), `"kind": "T"`)
}

package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestBuildFallsBackToInfo(t *testing.T) {
	l, cleanup := Build(Options{Level: "nonsense"})
	defer cleanup()

	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestNewWithRotateWritesFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "shop.log")
	l, cleanup := NewWithRotate("debug", true, FileRotate{Filename: file, MaxSizeMB: 1})
	l.Info("hello", zap.String("k", "v"))
	cleanup()

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"hello"`)
	assert.Contains(t, string(b), `"k":"v"`)
}

func TestAtLeast(t *testing.T) {
	assert.Equal(t, 1, atLeast(1, 0))
	assert.Equal(t, 5, atLeast(1, 5))
}

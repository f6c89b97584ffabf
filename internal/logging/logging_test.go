package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	logger, err := New(false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))

	verbose, err := New(true)
	require.NoError(t, err)
	assert.True(t, verbose.Core().Enabled(zap.DebugLevel))
}

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, false)

	logger.Debug("hidden")
	logger.Info("pages read", zap.Int("pages", 3))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "pages read")
	assert.Contains(t, out, `"pages": 3`)
}

func TestNewWriter_Verbose(t *testing.T) {
	var buf bytes.Buffer
	NewWriter(&buf, true).Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}

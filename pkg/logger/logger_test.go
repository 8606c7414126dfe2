package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func withObserver(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, recorded := observer.New(zapcore.DebugLevel)
	prev := singleton.Load()
	singleton.Store(zap.New(core).Sugar())
	t.Cleanup(func() { singleton.Store(prev) })
	return recorded
}

func TestLogLevels(t *testing.T) {
	recorded := withObserver(t)

	Debug("debug msg")
	Infof("info %s", "formatted")
	Warnw("warn kv", "key", "val")
	Errorf("error %s", "formatted")

	require.Equal(t, 4, recorded.Len())
	messages := recorded.TakeAll()
	assert.Equal(t, "debug msg", messages[0].Message)
	assert.Equal(t, "info formatted", messages[1].Message)
	assert.Equal(t, "warn kv", messages[2].Message)
	assert.Equal(t, "error formatted", messages[3].Message)
}

func TestGetReturnsSingleton(t *testing.T) {
	withObserver(t)
	got := Get()
	require.NotNil(t, got)
}

func TestInitializeReplacesSingleton(t *testing.T) {
	prev := singleton.Load()
	defer singleton.Store(prev)

	Initialize(false)
	require.NotNil(t, Get())
}

func TestUnstructuredLogsDefault(t *testing.T) {
	t.Setenv("UNSTRUCTURED_LOGS", "")
	assert.True(t, unstructuredLogs())

	t.Setenv("UNSTRUCTURED_LOGS", "false")
	assert.False(t, unstructuredLogs())

	t.Setenv("UNSTRUCTURED_LOGS", "not-a-bool")
	assert.True(t, unstructuredLogs())
}

package app_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripflow/planner/internal/app"
	"github.com/tripflow/planner/internal/config"
	"github.com/tripflow/planner/internal/repo"
)

func TestBuild_LocalWithoutAI(t *testing.T) {
	var logs bytes.Buffer
	cfg := config.Config{LocalStoreDir: t.TempDir()}

	a, closeFn, err := app.Build(context.Background(), cfg, app.NewLogger(&logs, "info"))
	require.NoError(t, err)
	t.Cleanup(closeFn)

	assert.Equal(t, "local", a.Mode)
	assert.False(t, a.Generator.Enabled())
	assert.Contains(t, logs.String(), "generation disabled")

	trips, err := a.Trips.List(context.Background(), repo.SeedUserID)
	require.NoError(t, err)
	assert.Len(t, trips, 1)
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := app.NewLogger(&buf, "warn")

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewLogger_UnknownLevelIsInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := app.NewLogger(&buf, "loud")

	logger.Debug("hidden")
	logger.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

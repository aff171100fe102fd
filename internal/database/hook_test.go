package database_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sweeplabs/modsweep/internal/database"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func queryEvent(query string, age time.Duration, err error) *bun.QueryEvent {
	return &bun.QueryEvent{
		Query:     query,
		StartTime: time.Now().Add(-age),
		Err:       err,
	}
}

func TestHook_FastQueryLogsDebug(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	hook := database.NewHook(zap.New(core))

	hook.AfterQuery(context.Background(), queryEvent("SELECT 1", time.Millisecond, nil))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "Query executed", entries[0].Message)
	assert.Equal(t, "SELECT", entries[0].ContextMap()["operation"])
}

func TestHook_SlowQueryLogsWarn(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	hook := database.NewHook(zap.New(core))

	hook.AfterQuery(context.Background(), queryEvent("UPDATE connections SET last_scanned_at = NOW()", time.Second, nil))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "Slow query", entries[0].Message)
	assert.Equal(t, "UPDATE", entries[0].ContextMap()["operation"])
}

func TestHook_FailedQueryLogsError(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	hook := database.NewHook(zap.New(core))

	hook.AfterQuery(context.Background(), queryEvent("SELECT 1", time.Millisecond, errors.New("connection refused")))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "Query failed", entries[0].Message)
}

func TestHook_NoRowsStaysQuiet(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	hook := database.NewHook(zap.New(core))

	hook.AfterQuery(context.Background(), queryEvent("SELECT 1", time.Millisecond, sql.ErrNoRows))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
}

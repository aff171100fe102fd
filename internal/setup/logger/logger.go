// Package logger manages timestamped session log directories with a "latest"
// symlink-style directory for easy tailing.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/sweeplabs/modsweep/internal/setup/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Manager handles the creation and rotation of log files and directories.
type Manager struct {
	currentSessionDir string
	logDir            string
	level             string
	maxLogsToKeep     int
}

// NewManager creates a new log manager.
func NewManager(logDir string, cfg *config.Debug) *Manager {
	return &Manager{
		logDir:        logDir,
		level:         cfg.LogLevel,
		maxLogsToKeep: cfg.MaxLogsToKeep,
	}
}

// GetLoggers initializes the main and database loggers. Both write to the
// current session directory and the rolling "latest" directory.
func (lm *Manager) GetLoggers() (*zap.Logger, *zap.Logger, error) {
	if err := lm.setupLogDirectories(); err != nil {
		return nil, nil, err
	}

	mainLogger, err := lm.initLogger([]string{
		filepath.Join(lm.currentSessionDir, "main.log"),
		filepath.Join(lm.logDir, "latest", "main.log"),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize main logger: %w", err)
	}

	dbLogger, err := lm.initLogger([]string{
		filepath.Join(lm.currentSessionDir, "database.log"),
		filepath.Join(lm.logDir, "latest", "database.log"),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database logger: %w", err)
	}

	return mainLogger, dbLogger, nil
}

// setupLogDirectories creates the session directory and refreshes "latest".
func (lm *Manager) setupLogDirectories() error {
	if err := os.MkdirAll(lm.logDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	if err := lm.rotateLogSessions(); err != nil {
		return fmt.Errorf("failed to rotate log sessions: %w", err)
	}

	lm.currentSessionDir = filepath.Join(lm.logDir, time.Now().Format("2006-01-02_15-04-05"))
	if err := os.MkdirAll(lm.currentSessionDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	latestDir := filepath.Join(lm.logDir, "latest")

	// Another process may still be writing to the old latest directory.
	_ = os.RemoveAll(latestDir)

	if err := os.MkdirAll(latestDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create latest directory: %w", err)
	}

	return nil
}

// rotateLogSessions removes the oldest session directories beyond the
// retention limit.
func (lm *Manager) rotateLogSessions() error {
	sessions, err := filepath.Glob(filepath.Join(lm.logDir, "*"))
	if err != nil {
		return fmt.Errorf("failed to list log sessions: %w", err)
	}

	dirs := make([]string, 0, len(sessions))

	for _, session := range sessions {
		if filepath.Base(session) == "latest" {
			continue
		}

		info, err := os.Stat(session)
		if err != nil || !info.IsDir() {
			continue
		}

		dirs = append(dirs, session)
	}

	if lm.maxLogsToKeep <= 0 || len(dirs) < lm.maxLogsToKeep {
		return nil
	}

	// Session names are timestamps, so lexical order is chronological.
	sort.Strings(dirs)

	for _, dir := range dirs[:len(dirs)-lm.maxLogsToKeep+1] {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("failed to remove old session %s: %w", dir, err)
		}
	}

	return nil
}

// initLogger builds a development-encoded file logger at the configured level.
func (lm *Manager) initLogger(outputPaths []string) (*zap.Logger, error) {
	zapLevel, err := zapcore.ParseLevel(lm.level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", lm.level, err)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = outputPaths
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return logger, nil
}

package app

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// NewLogger builds a production zap logger writing JSON lines to path.
// The TUI owns the terminal, so nothing may log to stdout/stderr; an
// empty path yields a no-op logger instead.
func NewLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}

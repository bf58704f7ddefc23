package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	hclog "github.com/hashicorp/go-hclog"
)

// Options selects where and how verbosely the process logs.
type Options struct {
	Name  string
	Level string
	// Path, when set, sends output to a file instead of Output. The TUI owns
	// the terminal, so it always logs to a file.
	Path   string
	Output io.Writer
}

// New builds the process logger. The returned close func releases the log
// file, if any.
func New(opts Options) (hclog.Logger, func() error, error) {
	out := opts.Output
	closeFn := func() error { return nil }
	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeFn = f.Close
	}
	if out == nil {
		out = os.Stderr
	}
	level := hclog.LevelFromString(opts.Level)
	if level == hclog.NoLevel {
		level = hclog.Info
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   opts.Name,
		Level:  level,
		Output: out,
	})
	return logger, closeFn, nil
}

// Discard is used by tests and by components constructed without a logger.
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}

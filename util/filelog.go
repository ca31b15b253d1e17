package util

import (
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TimestampLayout is the format of the timestamp prefix written by FileLogger.
const TimestampLayout = "Mon Jan 02 2006 15:04:05 MST"

// LogOptions control how FileLogger writes to its file.
type LogOptions struct {
	// Overwrite truncates the file when the logger is opened instead of appending.
	Overwrite bool
	// Timestamp prefixes each line with "[<time>]  ".
	Timestamp bool
	// Clock supplies the timestamps. Defaults to the system clock.
	Clock zapcore.Clock
}

// FileLogger writes plain text lines to a file.
type FileLogger struct {
	mu     sync.Mutex
	file   *os.File
	logger *zap.Logger
	closed bool
}

// NewFileLogger opens path for logging, creating it if needed.
func NewFileLogger(path string, opts LogOptions) (*FileLogger, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	flags := os.O_CREATE | os.O_WRONLY
	if opts.Overwrite {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_APPEND
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "open log file %s", path)
	}

	encCfg := zapcore.EncoderConfig{
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		ConsoleSeparator: "  ",
	}
	if opts.Timestamp {
		encCfg.TimeKey = "ts"
		encCfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString("[" + t.Format(TimestampLayout) + "]")
		}
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(f), zapcore.DebugLevel)
	zopts := []zap.Option{}
	if opts.Clock != nil {
		zopts = append(zopts, zap.WithClock(opts.Clock))
	}

	return &FileLogger{
		file:   f,
		logger: zap.New(core, zopts...),
	}, nil
}

// Log writes content as one line and syncs it to disk.
func (l *FileLogger) Log(content string) error {
	if content == "" {
		return ErrEmptyContent
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrLoggerClosed
	}
	l.logger.Info(content)
	return l.logger.Sync()
}

// Close flushes and closes the underlying file. Closing twice is a no-op.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	_ = l.logger.Sync()
	return l.file.Close()
}

// LogToFile writes a single line to path.
func LogToFile(path, content string, opts LogOptions) error {
	if content == "" {
		return ErrEmptyContent
	}
	l, err := NewFileLogger(path, opts)
	if err != nil {
		return err
	}
	if err := l.Log(content); err != nil {
		l.Close()
		return err
	}
	return l.Close()
}

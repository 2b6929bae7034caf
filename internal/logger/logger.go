package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New builds a logrus logger writing to stderr and, when filePath is set, to that file as well.
// The returned closer releases the log file and must be called when the logger is done.
func New(levelStr string, filePath string) (*logrus.Logger, io.Closer, error) {
	log := logrus.New()

	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if filePath == "" {
		log.SetOutput(os.Stderr)
		return log, nopCloser{}, nil
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	log.SetOutput(io.MultiWriter(os.Stderr, file))

	return log, file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Discard returns a logger that drops everything. Used by tests and by
// components constructed without a logger.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// Or returns l, or a discarding logger when l is nil
func Or(l logrus.FieldLogger) logrus.FieldLogger {
	if l == nil {
		return Discard()
	}
	return l
}

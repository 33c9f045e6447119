// Package logrus adapts a logrus entry to log.Logger.
package logrus

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formalise/internal/log"
)

type logger struct {
	*logrus.Entry
}

// NewLogrus returns a log.Logger backed by a logrus entry.
func NewLogrus(l *logrus.Entry) log.Logger {
	return logger{Entry: l}
}

func (l logger) WithValues(kv log.Kv) log.Logger {
	newLogger := l.Entry.WithFields(logrus.Fields(kv))
	return NewLogrus(newLogger)
}

func (l logger) WithCtxValues(ctx context.Context) log.Logger {
	return l.WithValues(log.ValuesFromCtx(ctx))
}

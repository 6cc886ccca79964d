// Package log has the logger used by the wellhub SDK.
//
// [lib.Config] takes any [Logger], nothing is logged when it's not set. Apps
// already using logrus can pass their entry through [NewLogrus]:
//
//	l := logrus.New()
//	l.SetLevel(logrus.DebugLevel)
//	client, err := lib.New(ctx, lib.Config{
//	    Logger: log.NewLogrus(logrus.NewEntry(l)),
//	})
package log

import (
	"github.com/sirupsen/logrus"

	"github.com/slok/wellhub/internal/log"
	loglogrus "github.com/slok/wellhub/internal/log/logrus"
)

// Logger is the logger accepted by the SDK.
type Logger = log.Logger

// Kv are structured log values.
type Kv = log.Kv

// Noop discards every log line.
var Noop Logger = log.Noop

// NewLogrus returns a Logger backed by a logrus entry.
func NewLogrus(e *logrus.Entry) Logger {
	return loglogrus.NewLogrus(e)
}

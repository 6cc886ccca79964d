package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/slok/wellhub/internal/log"
	"github.com/slok/wellhub/internal/model"
)

// Notifier shows one-shot notices to the user. It's fire and forget.
type Notifier interface {
	Notify(ctx context.Context, n model.Notice)
}

// NotifierFunc is a helper to use functions as Notifiers.
type NotifierFunc func(ctx context.Context, n model.Notice)

// Notify satisfies Notifier.
func (f NotifierFunc) Notify(ctx context.Context, n model.Notice) { f(ctx, n) }

// Noop is a notifier that discards every notice.
var Noop Notifier = noop{}

type noop struct{}

func (noop) Notify(context.Context, model.Notice) {}

// NewLogNotifier returns a notifier that sends the notices to the logger.
func NewLogNotifier(logger log.Logger) Notifier {
	if logger == nil {
		logger = log.Noop
	}
	return logNotifier{logger: logger.WithValues(log.Kv{"svc": "notify.Log"})}
}

type logNotifier struct {
	logger log.Logger
}

func (l logNotifier) Notify(ctx context.Context, n model.Notice) {
	logger := l.logger.WithCtxValues(ctx).WithValues(log.Kv{"variant": n.Variant})
	switch n.Variant {
	case model.NoticeVariantDestructive:
		logger.Errorf("%s: %s", n.Title, n.Description)
	case model.NoticeVariantWarning:
		logger.Warningf("%s: %s", n.Title, n.Description)
	default:
		logger.Infof("%s: %s", n.Title, n.Description)
	}
}

// WriterNotifier prints the notices as plain text lines.
type WriterNotifier struct {
	w  io.Writer
	mu sync.Mutex
}

// NewWriterNotifier returns a new writer notifier.
func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

func (w *WriterNotifier) Notify(_ context.Context, n model.Notice) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if n.Description == "" {
		fmt.Fprintf(w.w, "%s %s\n", variantPrefix(n.Variant), n.Title)
		return
	}
	fmt.Fprintf(w.w, "%s %s: %s\n", variantPrefix(n.Variant), n.Title, n.Description)
}

func variantPrefix(v model.NoticeVariant) string {
	switch v {
	case model.NoticeVariantSuccess:
		return "[ok]"
	case model.NoticeVariantWarning:
		return "[warn]"
	case model.NoticeVariantDestructive:
		return "[error]"
	}
	return "[info]"
}

// NewMulti returns a notifier that sends every notice to all the notifiers.
func NewMulti(ns ...Notifier) Notifier {
	return multi(ns)
}

type multi []Notifier

func (m multi) Notify(ctx context.Context, n model.Notice) {
	for _, nn := range m {
		nn.Notify(ctx, n)
	}
}

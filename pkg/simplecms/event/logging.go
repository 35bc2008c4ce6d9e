package event

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

// LoggingSubscriber logs every after event. Useful for development and
// debugging.
type LoggingSubscriber struct {
	logger *slog.Logger
	level  slog.Level
}

// NewLoggingSubscriber creates a subscriber logging at info level. A nil
// logger uses slog.Default.
func NewLoggingSubscriber(logger *slog.Logger) *LoggingSubscriber {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingSubscriber{logger: logger, level: slog.LevelInfo}
}

// WithLevel returns a copy of the subscriber logging at level.
func (l *LoggingSubscriber) WithLevel(level slog.Level) *LoggingSubscriber {
	c := *l
	c.level = level
	return &c
}

// Subscriptions registers the subscriber last on every after event.
func (l *LoggingSubscriber) Subscriptions() []Subscription {
	subs := make([]Subscription, 0, len(AfterEvents))
	for _, name := range AfterEvents {
		subs = append(subs, Subscription{Event: name, Listener: l.log, Priority: math.MinInt32})
	}
	return subs
}

func (l *LoggingSubscriber) log(ctx context.Context, e Event) error {
	attrs := []any{"event", e.EventName()}
	if ref, ok := simplecms.UserReferenceFrom(ctx); ok {
		attrs = append(attrs, "user_id", ref.UserID)
	}
	if r, ok := e.(interface{ result() any }); ok {
		attrs = append(attrs, resultAttrs(r.result())...)
	}
	l.logger.Log(ctx, l.level, "repository event", attrs...)
	return nil
}

func resultAttrs(result any) []any {
	switch r := result.(type) {
	case *simplecms.Content:
		if r == nil || r.VersionInfo == nil || r.VersionInfo.ContentInfo == nil {
			return nil
		}
		return []any{"content_id", r.VersionInfo.ContentInfo.ID, "version_no", r.VersionInfo.VersionNo}
	case *simplecms.Location:
		if r == nil {
			return nil
		}
		return []any{"location_id", r.ID, "path", r.PathString}
	case *simplecms.ContentTypeDraft:
		if r == nil {
			return nil
		}
		return []any{"content_type_id", r.ID, "identifier", r.Identifier}
	case *simplecms.ContentType:
		if r == nil {
			return nil
		}
		return []any{"content_type_id", r.ID, "identifier", r.Identifier}
	case *simplecms.User:
		if r == nil {
			return nil
		}
		return []any{"target_user_id", r.ID, "login", r.Login}
	case *simplecms.TrashItem:
		if r == nil {
			return nil
		}
		return []any{"trash_item_id", r.ID}
	case []int64:
		return []any{"ids", r}
	case nil:
		return nil
	}
	return []any{"result_type", fmt.Sprintf("%T", result)}
}

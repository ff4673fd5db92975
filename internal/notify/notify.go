// Package notify is the notification collaborator: operations emit
// categorized events with a title and description, and the presentation
// layer decides the wording and delivery.
package notify

import (
	"context"
	"log/slog"
)

// Category classifies an event outcome.
type Category string

// Categories.
const (
	CategorySuccess          Category = "success"
	CategoryValidationError  Category = "validation_error"
	CategoryPermissionDenied Category = "permission_denied"
	CategoryError            Category = "error"
)

// Event is a user-facing notification.
type Event struct {
	Category Category
	Title    string
	Message  string
}

// Notifier receives notification events.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

// LogNotifier writes events to structured logs.
type LogNotifier struct {
	Logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier on the default logger.
func NewLogNotifier() LogNotifier {
	return LogNotifier{Logger: slog.Default()}
}

func (n LogNotifier) Notify(_ context.Context, event Event) {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("notification",
		"category", string(event.Category),
		"title", event.Title,
		"message", event.Message,
	)
}

// Discard drops all events.
type Discard struct{}

func (Discard) Notify(context.Context, Event) {}

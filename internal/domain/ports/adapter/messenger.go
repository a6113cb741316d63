package adapter

import (
	"context"

	"cekkuota-bot/internal/domain/model"
)

// Messenger is the outbound messaging transport. Implementations must
// truncate text that exceeds the transport's maximum message length.
type Messenger interface {
	SendText(ctx context.Context, chatID string, text string) error
	// FetchUpdates long-polls for updates with id >= offset, blocking
	// server-side up to waitSeconds.
	FetchUpdates(ctx context.Context, offset int64, waitSeconds int) ([]model.Update, error)
	// LatestUpdateID probes for the single most recent available update.
	// ok is false when the transport currently has none.
	LatestUpdateID(ctx context.Context) (id int64, ok bool, err error)
	// ClearWebhook removes any push subscription that would conflict with
	// long polling.
	ClearWebhook(ctx context.Context) error
}

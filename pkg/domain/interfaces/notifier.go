package interfaces

import (
	"context"

	"github.com/secmon-lab/ringi/pkg/domain/model"
)

// Notifier pushes an approval request to a recipient on the messaging
// platform. Callers treat failures as best-effort: a failed push is
// collected and reported, never propagated as a fatal error.
type Notifier interface {
	// Notify sends the notification to the recipient channel
	Notify(ctx context.Context, channelID string, n *model.TicketNotification) error
}

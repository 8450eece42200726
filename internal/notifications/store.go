package notifications

import (
	"context"
	"errors"
)

// ErrDuplicate indicates the notification was already persisted. The unique
// constraint violation is the deduplication signal itself: two concurrent
// deliveries race safely because exactly one insert wins.
var ErrDuplicate = errors.New("notification already recorded")

// Store persists notifications with a uniqueness guarantee on
// (psp_reference, event_code, success) enforced at the storage layer.
type Store interface {
	Save(ctx context.Context, n Notification) error
	MarkProcessed(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

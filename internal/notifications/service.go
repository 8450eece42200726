package notifications

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/petlove/spree-adyen/internal/payments"
)

// Service ingests processor notifications: persist first, then apply the
// state transition for the event type. Persistence failing on the unique
// constraint means the event was already handled, which is never an error.
type Service struct {
	store    Store
	payments payments.Store
	logger   *slog.Logger
}

// NewService constructs a notification service.
func NewService(store Store, paymentStore payments.Store, logger *slog.Logger) *Service {
	return &Service{store: store, payments: paymentStore, logger: logger}
}

// Handle records the notification and runs its transition. The webhook
// boundary acknowledges the processor regardless of the returned error; the
// error exists for logging and tests.
func (s *Service) Handle(ctx context.Context, n Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}

	if err := s.store.Save(ctx, n); err != nil {
		if errors.Is(err, ErrDuplicate) {
			s.logger.Info("notification deduplicated",
				slog.String("psp_reference", n.PspReference),
				slog.String("event_code", n.EventCode))
			return nil
		}
		return fmt.Errorf("persist notification: %w", err)
	}

	if err := s.apply(ctx, n); err != nil {
		s.logger.Error("notification transition failed",
			slog.String("psp_reference", n.PspReference),
			slog.String("event_code", n.EventCode),
			slog.Any("error", err))
		return err
	}

	return s.store.MarkProcessed(ctx, n.ID)
}

// apply runs the payment state transition for the event type. Failed events
// only mark the payment failed on AUTHORISATION; for the other event types
// an unsuccessful notification changes nothing.
func (s *Service) apply(ctx context.Context, n Notification) error {
	reference := n.PspReference
	if n.OriginalReference != "" {
		// Modification events reference the original authorization.
		reference = n.OriginalReference
	}

	p, err := s.payments.GetByPspReference(ctx, reference)
	if err != nil {
		return fmt.Errorf("payment for reference %q: %w", reference, err)
	}

	switch n.EventCode {
	case EventAuthorisation:
		if !n.Success {
			return s.transition(ctx, p, payments.StatusFailed)
		}
		return s.transition(ctx, p, payments.StatusAuthorized)
	case EventCapture:
		if !n.Success {
			return nil
		}
		return s.transition(ctx, p, payments.StatusCaptured)
	case EventCancellation:
		if !n.Success {
			return nil
		}
		return s.transition(ctx, p, payments.StatusCancelled)
	case EventRefund:
		if !n.Success {
			return nil
		}
		return s.transition(ctx, p, payments.StatusRefunded)
	default:
		s.logger.Info("notification event ignored",
			slog.String("event_code", n.EventCode),
			slog.String("psp_reference", n.PspReference))
		return nil
	}
}

func (s *Service) transition(ctx context.Context, p payments.Payment, status string) error {
	if p.Status == status {
		return nil
	}
	if err := s.payments.UpdateStatus(ctx, p.ID, status); err != nil {
		return fmt.Errorf("transition payment %s to %s: %w", p.ID, status, err)
	}
	s.logger.Info("payment transitioned",
		slog.String("payment_id", p.ID),
		slog.String("from", p.Status),
		slog.String("to", status))
	return nil
}

package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/petlove/spree-adyen/internal/logging"
	"github.com/petlove/spree-adyen/internal/payments"
)

func newTestService(t *testing.T) (*Service, Store, payments.Store) {
	t.Helper()
	store := NewMemoryStore()
	paymentStore := payments.NewMemoryStore()
	return NewService(store, paymentStore, logging.Discard()), store, paymentStore
}

func seedPayment(t *testing.T, store payments.Store, pspRef, status string) {
	t.Helper()
	err := store.Create(context.Background(), payments.Payment{
		ID:           "pay-" + pspRef,
		OrderRef:     "R100",
		PspReference: pspRef,
		Status:       status,
		AmountCents:  1000,
		Currency:     "BRL",
	})
	if err != nil {
		t.Fatalf("seed payment: %v", err)
	}
}

func authorisationEvent(pspRef string, success bool) Notification {
	return Notification{
		EventCode:    EventAuthorisation,
		PspReference: pspRef,
		Success:      success,
		AmountCents:  1000,
		Currency:     "BRL",
		ReceivedAt:   time.Now().UTC(),
	}
}

func TestHandleAuthorisationTransitions(t *testing.T) {
	ctx := context.Background()
	svc, _, paymentStore := newTestService(t)
	seedPayment(t, paymentStore, "psp-1", payments.StatusPending)

	if err := svc.Handle(ctx, authorisationEvent("psp-1", true)); err != nil {
		t.Fatalf("handle failed: %v", err)
	}

	p, err := paymentStore.GetByPspReference(ctx, "psp-1")
	if err != nil {
		t.Fatalf("get payment: %v", err)
	}
	if p.Status != payments.StatusAuthorized {
		t.Fatalf("expected authorized, got %s", p.Status)
	}
}

func TestHandleFailedAuthorisationMarksFailed(t *testing.T) {
	ctx := context.Background()
	svc, _, paymentStore := newTestService(t)
	seedPayment(t, paymentStore, "psp-1", payments.StatusPending)

	if err := svc.Handle(ctx, authorisationEvent("psp-1", false)); err != nil {
		t.Fatalf("handle failed: %v", err)
	}

	p, _ := paymentStore.GetByPspReference(ctx, "psp-1")
	if p.Status != payments.StatusFailed {
		t.Fatalf("expected failed, got %s", p.Status)
	}
}

func TestHandleDuplicateIsRecordedOnce(t *testing.T) {
	ctx := context.Background()
	svc, store, paymentStore := newTestService(t)
	seedPayment(t, paymentStore, "psp-1", payments.StatusPending)

	if err := svc.Handle(ctx, authorisationEvent("psp-1", true)); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	if err := svc.Handle(ctx, authorisationEvent("psp-1", true)); err != nil {
		t.Fatalf("duplicate delivery must not error: %v", err)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one stored notification, got %d", count)
	}
}

func TestHandleSuccessAndFailureAreDistinctEvents(t *testing.T) {
	ctx := context.Background()
	svc, store, paymentStore := newTestService(t)
	seedPayment(t, paymentStore, "psp-1", payments.StatusPending)

	if err := svc.Handle(ctx, authorisationEvent("psp-1", false)); err != nil {
		t.Fatalf("failed delivery: %v", err)
	}
	if err := svc.Handle(ctx, authorisationEvent("psp-1", true)); err != nil {
		t.Fatalf("success delivery: %v", err)
	}

	count, _ := store.Count(ctx)
	if count != 2 {
		t.Fatalf("success flag participates in uniqueness, expected 2, got %d", count)
	}
	p, _ := paymentStore.GetByPspReference(ctx, "psp-1")
	if p.Status != payments.StatusAuthorized {
		t.Fatalf("expected authorized after retry, got %s", p.Status)
	}
}

func TestHandleCaptureUsesOriginalReference(t *testing.T) {
	ctx := context.Background()
	svc, _, paymentStore := newTestService(t)
	seedPayment(t, paymentStore, "psp-1", payments.StatusAuthorized)

	err := svc.Handle(ctx, Notification{
		EventCode:         EventCapture,
		PspReference:      "psp-2",
		OriginalReference: "psp-1",
		Success:           true,
		ReceivedAt:        time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("handle failed: %v", err)
	}

	p, _ := paymentStore.GetByPspReference(ctx, "psp-1")
	if p.Status != payments.StatusCaptured {
		t.Fatalf("expected captured, got %s", p.Status)
	}
}

func TestHandleFailedCaptureChangesNothing(t *testing.T) {
	ctx := context.Background()
	svc, _, paymentStore := newTestService(t)
	seedPayment(t, paymentStore, "psp-1", payments.StatusAuthorized)

	err := svc.Handle(ctx, Notification{
		EventCode:         EventCapture,
		PspReference:      "psp-2",
		OriginalReference: "psp-1",
		Success:           false,
		ReceivedAt:        time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("handle failed: %v", err)
	}

	p, _ := paymentStore.GetByPspReference(ctx, "psp-1")
	if p.Status != payments.StatusAuthorized {
		t.Fatalf("failed capture must not transition, got %s", p.Status)
	}
}

func TestHandleUnknownEventIsStoredAndIgnored(t *testing.T) {
	ctx := context.Background()
	svc, store, paymentStore := newTestService(t)
	seedPayment(t, paymentStore, "psp-1", payments.StatusPending)

	err := svc.Handle(ctx, Notification{
		EventCode:    "REPORT_AVAILABLE",
		PspReference: "psp-1",
		Success:      true,
		ReceivedAt:   time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("unknown event must not error: %v", err)
	}

	count, _ := store.Count(ctx)
	if count != 1 {
		t.Fatalf("expected unknown event stored, got %d", count)
	}
	p, _ := paymentStore.GetByPspReference(ctx, "psp-1")
	if p.Status != payments.StatusPending {
		t.Fatalf("unknown event must not transition, got %s", p.Status)
	}
}

func TestHandleUnknownPaymentIsError(t *testing.T) {
	svc, _, _ := newTestService(t)
	err := svc.Handle(context.Background(), authorisationEvent("psp-missing", true))
	if err == nil {
		t.Fatalf("expected error for unknown payment reference")
	}
}

package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"cinebook/internal/messaging"
	"cinebook/internal/metrics"
	"cinebook/internal/models"

	"github.com/nats-io/stan.go"
)

// SeatReleaser returns booked seats of a show to availability. The release
// is scoped to the booking that held the seats: retries after the seats
// were re-sold must not evict the new owner.
type SeatReleaser interface {
	ReleaseSeats(ctx context.Context, showID string, seatIDs []string, bookingID string) error
}

// ReleaseRetryWorker consumes seat_release.failed events and retries the
// release until the show inventory matches the booking ledger again. Release
// is idempotent, so redeliveries after a partial failure are safe.
type ReleaseRetryWorker struct {
	nats     *messaging.NATSClient
	releaser SeatReleaser
	timeout  time.Duration
	sub      stan.Subscription
}

func NewReleaseRetryWorker(nats *messaging.NATSClient, releaser SeatReleaser, timeout time.Duration) *ReleaseRetryWorker {
	return &ReleaseRetryWorker{
		nats:     nats,
		releaser: releaser,
		timeout:  timeout,
	}
}

// Start subscribes to the reconciliation queue. Unacked messages are
// redelivered by the streaming server, which is what drives the retry loop.
func (w *ReleaseRetryWorker) Start() error {
	sub, err := w.nats.SubscribeQueue(models.EventSeatReleaseFailed, "release-retry", w.handle)
	if err != nil {
		return err
	}
	w.sub = sub

	slog.Info("Seat release reconciliation worker started")
	return nil
}

func (w *ReleaseRetryWorker) handle(msg *stan.Msg) {
	var event models.SeatReleaseFailedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		slog.Error("Dropping malformed seat release event", "error", err)
		if err := msg.Ack(); err != nil {
			slog.Error("Failed to ack malformed event", "error", err)
		}
		return
	}

	if err := w.process(event); err != nil {
		// No ack: the server redelivers after the ack wait
		return
	}

	if err := msg.Ack(); err != nil {
		slog.Error("Failed to ack reconciled event", "error", err, "booking_id", event.BookingID)
	}
}

func (w *ReleaseRetryWorker) process(event models.SeatReleaseFailedEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	metrics.ReleaseRetries.Inc()

	if err := w.releaser.ReleaseSeats(ctx, event.ShowID, event.Seats, event.BookingID); err != nil {
		slog.Error("Seat release retry failed",
			"error", err, "booking_id", event.BookingID,
			"show_id", event.ShowID, "seats", event.Seats)
		return err
	}

	slog.Info("Reconciled stuck seats",
		"booking_id", event.BookingID, "show_id", event.ShowID, "seats", event.Seats)
	return nil
}

// Stop closes the durable subscription, leaving its position for the next run
func (w *ReleaseRetryWorker) Stop() {
	if w.sub != nil {
		if err := w.sub.Close(); err != nil {
			slog.Error("Failed to close reconciliation subscription", "error", err)
		}
	}
}

package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinebook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type releaseCall struct {
	showID    string
	seats     []string
	bookingID string
}

type recordingReleaser struct {
	calls []releaseCall
	err   error
}

func (r *recordingReleaser) ReleaseSeats(ctx context.Context, showID string, seatIDs []string, bookingID string) error {
	r.calls = append(r.calls, releaseCall{showID: showID, seats: seatIDs, bookingID: bookingID})
	return r.err
}

func TestProcessReleasesForOwningBooking(t *testing.T) {
	releaser := &recordingReleaser{}
	worker := NewReleaseRetryWorker(nil, releaser, time.Second)

	err := worker.process(models.SeatReleaseFailedEvent{
		BookingID: "booking-1",
		ShowID:    "show-1",
		Seats:     []string{"A1", "A2"},
	})
	require.NoError(t, err)

	// The release must carry the booking id so a retry after the seats were
	// re-sold cannot evict the new owner
	require.Len(t, releaser.calls, 1)
	assert.Equal(t, "show-1", releaser.calls[0].showID)
	assert.Equal(t, []string{"A1", "A2"}, releaser.calls[0].seats)
	assert.Equal(t, "booking-1", releaser.calls[0].bookingID)
}

func TestProcessSurfacesFailureForRedelivery(t *testing.T) {
	releaser := &recordingReleaser{err: errors.New("inventory down")}
	worker := NewReleaseRetryWorker(nil, releaser, time.Second)

	err := worker.process(models.SeatReleaseFailedEvent{
		BookingID: "booking-1",
		ShowID:    "show-1",
		Seats:     []string{"A1"},
	})
	assert.Error(t, err)
}

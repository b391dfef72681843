package bookings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisnails1212/salon-booking-engine/internal/domain"
	bookingRepo "github.com/chrisnails1212/salon-booking-engine/internal/infra/storage/booking"
	"github.com/chrisnails1212/salon-booking-engine/internal/service/bookings/models"
)

type mockBookingRepo struct {
	bookings map[int64]*domain.Booking

	cancelledID     int64
	cancelledStatus domain.BookingStatus
	cancelledReason string
}

func newMockBookingRepo(bookings ...*domain.Booking) *mockBookingRepo {
	m := &mockBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		m.bookings[b.ID] = b
	}
	return m
}

func (m *mockBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (m *mockBookingRepo) GetByUserID(_ context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range m.bookings {
		if b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (m *mockBookingRepo) GetByStaffWithFilter(_ context.Context, filter domain.StaffBookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range m.bookings {
		if b.StaffID != filter.StaffID {
			continue
		}
		if !filter.IncludeInactive && !b.IsActive() {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (m *mockBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	b, ok := m.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (m *mockBookingRepo) Cancel(_ context.Context, id int64, status domain.BookingStatus, reason string) error {
	if _, ok := m.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	m.cancelledID = id
	m.cancelledStatus = status
	m.cancelledReason = reason
	m.bookings[id].Status = status
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func confirmedBooking(id, userID, staffID int64) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		UserID:          userID,
		StaffID:         staffID,
		ServiceID:       1,
		StartTime:       "10:00",
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}
}

func TestGetByID(t *testing.T) {
	booking := confirmedBooking(1, 10, 2)
	svc := NewService(newMockBookingRepo(booking), nopLogger{})

	t.Run("owner receives the booking", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
	})

	t.Run("someone else is denied", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, 99)
		require.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 404, 10)
		require.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestGetUserBookings(t *testing.T) {
	repo := newMockBookingRepo(
		confirmedBooking(1, 10, 2),
		confirmedBooking(2, 10, 3),
		confirmedBooking(3, 11, 2),
	)
	svc := NewService(repo, nopLogger{})

	t.Run("returns only the user's bookings", func(t *testing.T) {
		resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 10})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 2)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		bad := "definitely-not-a-status"
		_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			UserID: 10,
			Status: &bad,
		})
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetStaffBookings(t *testing.T) {
	cancelled := confirmedBooking(3, 12, 2)
	cancelled.Status = domain.StatusCancelledByUser

	repo := newMockBookingRepo(
		confirmedBooking(1, 10, 2),
		confirmedBooking(2, 11, 5),
		cancelled,
	)
	svc := NewService(repo, nopLogger{})

	t.Run("active bookings by default", func(t *testing.T) {
		resp, err := svc.GetStaffBookings(context.Background(), &models.GetStaffBookingsRequest{StaffID: 2})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 1)
	})

	t.Run("inactive included on request", func(t *testing.T) {
		resp, err := svc.GetStaffBookings(context.Background(), &models.GetStaffBookingsRequest{
			StaffID:         2,
			IncludeInactive: true,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 2)
	})
}

func TestCancel(t *testing.T) {
	t.Run("owner cancellation", func(t *testing.T) {
		repo := newMockBookingRepo(confirmedBooking(1, 10, 2))
		svc := NewService(repo, nopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
			UserID:             10,
			CancellationReason: "plans changed",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelledByUser, repo.cancelledStatus)
		assert.Equal(t, "plans changed", repo.cancelledReason)
	})

	t.Run("staff cancellation", func(t *testing.T) {
		repo := newMockBookingRepo(confirmedBooking(1, 10, 2))
		svc := NewService(repo, nopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
			UserID:  555,
			ByStaff: true,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelledByStaff, repo.cancelledStatus)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		repo := newMockBookingRepo(confirmedBooking(1, 10, 2))
		svc := NewService(repo, nopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 99})
		require.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("completed booking cannot be cancelled", func(t *testing.T) {
		booking := confirmedBooking(1, 10, 2)
		booking.Status = domain.StatusCompleted
		repo := newMockBookingRepo(booking)
		svc := NewService(repo, nopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 10})
		require.ErrorIs(t, err, ErrCannotCancel)
	})
}

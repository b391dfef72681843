package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisnails1212/salon-booking-engine/internal/domain"
	"github.com/chrisnails1212/salon-booking-engine/pkg/types"
)

func window(start, end string) domain.WorkingWindow {
	return domain.WorkingWindow{
		Start:     types.TimeString(start),
		End:       types.TimeString(end),
		IsWorking: true,
	}
}

func slotStrings(slots []types.TimeString) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.String())
	}
	return out
}

func TestGenerateCandidateSlots(t *testing.T) {
	tests := []struct {
		name        string
		window      domain.WorkingWindow
		granularity int
		duration    int
		want        []string
	}{
		{
			name:        "30 minute grid in a short window",
			window:      window("09:00", "11:00"),
			granularity: 30,
			duration:    30,
			want:        []string{"09:00", "09:30", "10:00", "10:30"},
		},
		{
			name:        "long visit must fit inside the window",
			window:      window("09:00", "11:00"),
			granularity: 30,
			duration:    90,
			want:        []string{"09:00", "09:30"},
		},
		{
			name:        "visit ending exactly at window end is kept",
			window:      window("09:00", "10:00"),
			granularity: 30,
			duration:    60,
			want:        []string{"09:00"},
		},
		{
			name:        "duration longer than the window",
			window:      window("09:00", "10:00"),
			granularity: 30,
			duration:    120,
			want:        []string{},
		},
		{
			name:        "non-working day yields nothing",
			window:      domain.WorkingWindow{IsWorking: false},
			granularity: 30,
			duration:    30,
			want:        []string{},
		},
		{
			name:        "15 minute granularity",
			window:      window("10:00", "11:00"),
			granularity: 15,
			duration:    45,
			want:        []string{"10:00", "10:15"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := generateCandidateSlots(tt.window, tt.granularity, tt.duration)
			require.NoError(t, err)
			assert.Equal(t, tt.want, slotStrings(slots))
		})
	}
}

func TestFilterBreaks(t *testing.T) {
	slots := []types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00"}
	breaks := []domain.BreakWindow{
		{Start: "10:00", End: "11:00", Label: "lunch"},
	}

	// Слот 09:30 + 30 минут заканчивается ровно в 10:00 - не пересекается
	got := filterBreaks(slots, 30, breaks)
	assert.Equal(t, []string{"09:00", "09:30", "11:00"}, slotStrings(got))

	// 60-минутный визит с 09:30 залезает в перерыв
	got = filterBreaks(slots, 60, breaks)
	assert.Equal(t, []string{"09:00", "11:00"}, slotStrings(got))
}

func TestFilterBookings(t *testing.T) {
	slots := []types.TimeString{"09:00", "09:30", "10:00", "10:30"}

	active := &domain.Booking{
		StartTime:       "09:30",
		DurationMinutes: 30,
		Status:          domain.StatusConfirmed,
	}
	cancelled := &domain.Booking{
		StartTime:       "10:00",
		DurationMinutes: 30,
		Status:          domain.StatusCancelledByUser,
	}

	t.Run("active booking blocks overlapping slots", func(t *testing.T) {
		got := filterBookings(slots, 30, []*domain.Booking{active})
		assert.Equal(t, []string{"09:00", "10:00", "10:30"}, slotStrings(got))
	})

	t.Run("cancelled booking does not block", func(t *testing.T) {
		got := filterBookings(slots, 30, []*domain.Booking{cancelled})
		assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, slotStrings(got))
	})

	t.Run("abutting booking does not block", func(t *testing.T) {
		booking := &domain.Booking{
			StartTime:       "10:00",
			DurationMinutes: 30,
			Status:          domain.StatusConfirmed,
		}
		// Слот 09:30+30 заканчивается ровно в начале бронирования
		got := filterBookings([]types.TimeString{"09:30"}, 30, []*domain.Booking{booking})
		assert.Equal(t, []string{"09:30"}, slotStrings(got))
	})
}

func TestFilterPastSlots(t *testing.T) {
	slots := []types.TimeString{"09:00", "12:00", "15:00"}

	t.Run("today drops slots before now", func(t *testing.T) {
		now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
		got := filterPastSlots(slots, now, now)
		// Слот ровно в текущее время остается
		assert.Equal(t, []string{"12:00", "15:00"}, slotStrings(got))
	})

	t.Run("future date keeps everything", func(t *testing.T) {
		now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
		tomorrow := now.AddDate(0, 0, 1)
		got := filterPastSlots(slots, tomorrow, now)
		assert.Equal(t, []string{"09:00", "12:00", "15:00"}, slotStrings(got))
	})
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chrisnails1212/salon-booking-engine/pkg/types"
)

func TestOverlaps(t *testing.T) {
	ts := func(s string) types.TimeString { return types.TimeString(s) }

	tests := []struct {
		name string
		a    [2]string
		b    [2]string
		want bool
	}{
		{
			name: "abutting intervals do not overlap",
			a:    [2]string{"10:00", "11:00"},
			b:    [2]string{"11:00", "12:00"},
			want: false,
		},
		{
			name: "one minute of overlap",
			a:    [2]string{"10:00", "11:01"},
			b:    [2]string{"11:00", "12:00"},
			want: true,
		},
		{
			name: "fully contained",
			a:    [2]string{"10:30", "10:45"},
			b:    [2]string{"10:00", "11:00"},
			want: true,
		},
		{
			name: "identical intervals",
			a:    [2]string{"10:00", "11:00"},
			b:    [2]string{"10:00", "11:00"},
			want: true,
		},
		{
			name: "disjoint intervals",
			a:    [2]string{"09:00", "09:30"},
			b:    [2]string{"14:00", "15:00"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(ts(tt.a[0]), ts(tt.a[1]), ts(tt.b[0]), ts(tt.b[1]))
			assert.Equal(t, tt.want, got)
			// Пересечение симметрично
			assert.Equal(t, tt.want, Overlaps(ts(tt.b[0]), ts(tt.b[1]), ts(tt.a[0]), ts(tt.a[1])))
		})
	}
}

func TestBookingIsActive(t *testing.T) {
	tests := []struct {
		status BookingStatus
		want   bool
	}{
		{StatusPending, true},
		{StatusConfirmed, true},
		{StatusInProgress, true},
		{StatusCompleted, true},
		{StatusCancelledByUser, false},
		{StatusCancelledByStaff, false},
		{StatusNoShow, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			b := Booking{Status: tt.status}
			assert.Equal(t, tt.want, b.IsActive())
		})
	}
}

func TestBookingCanBeCancelled(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).CanBeCancelled())
	assert.True(t, (&Booking{Status: StatusConfirmed}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCompleted}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCancelledByUser}).CanBeCancelled())
}

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisnails1212/salon-booking-engine/pkg/types"
)

func mustWindow(start, end string) WorkingWindow {
	return WorkingWindow{
		Start:     types.TimeString(start),
		End:       types.TimeString(end),
		IsWorking: true,
	}
}

func TestWindowFor(t *testing.T) {
	// 2026-09-07 - понедельник
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)
	sunday := monday.AddDate(0, 0, -1)

	schedule := &ScheduleModel{
		StaffID: 1,
		Weekly: map[time.Weekday]WorkingWindow{
			time.Monday:  mustWindow("09:00", "18:00"),
			time.Tuesday: mustWindow("09:00", "18:00"),
		},
		SpecialDays: []SpecialDay{
			{Date: tuesday, Window: mustWindow("12:00", "16:00")},
		},
		Holidays: []Holiday{
			{Date: monday, Label: "inventory day"},
		},
	}

	tests := []struct {
		name        string
		date        time.Time
		wantWorking bool
		wantStart   string
		wantEnd     string
	}{
		{
			name:        "holiday wins over weekly pattern",
			date:        monday,
			wantWorking: false,
		},
		{
			name:        "special day overrides weekly window",
			date:        tuesday,
			wantWorking: true,
			wantStart:   "12:00",
			wantEnd:     "16:00",
		},
		{
			name:        "day absent from weekly pattern is off",
			date:        sunday,
			wantWorking: false,
		},
		{
			name:        "plain weekly day",
			date:        monday.AddDate(0, 0, 7),
			wantWorking: true,
			wantStart:   "09:00",
			wantEnd:     "18:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window, ok := schedule.WindowFor(tt.date)
			assert.Equal(t, tt.wantWorking, ok)
			if tt.wantWorking {
				assert.Equal(t, tt.wantStart, window.Start.String())
				assert.Equal(t, tt.wantEnd, window.End.String())
			}
		})
	}
}

func TestWindowFor_HolidayWinsOverSpecialDay(t *testing.T) {
	date := time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC)

	schedule := &ScheduleModel{
		Weekly: map[time.Weekday]WorkingWindow{
			date.Weekday(): mustWindow("09:00", "18:00"),
		},
		SpecialDays: []SpecialDay{
			{Date: date, Window: mustWindow("10:00", "14:00")},
		},
		Holidays: []Holiday{
			{Date: date, Label: "public holiday"},
		},
	}

	_, ok := schedule.WindowFor(date)
	assert.False(t, ok)
	assert.True(t, schedule.IsHoliday(date))
}

func TestWindowFor_NonWorkingSpecialDay(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

	schedule := &ScheduleModel{
		Weekly: map[time.Weekday]WorkingWindow{
			date.Weekday(): mustWindow("09:00", "18:00"),
		},
		SpecialDays: []SpecialDay{
			{Date: date, Window: WorkingWindow{IsWorking: false}},
		},
	}

	_, ok := schedule.WindowFor(date)
	assert.False(t, ok)
}

func TestWorkingWindowValidate(t *testing.T) {
	tests := []struct {
		name    string
		window  WorkingWindow
		wantErr error
	}{
		{
			name:   "valid window",
			window: mustWindow("09:00", "18:00"),
		},
		{
			name:   "non-working window skips checks",
			window: WorkingWindow{IsWorking: false},
		},
		{
			name:    "start equals end",
			window:  mustWindow("09:00", "09:00"),
			wantErr: ErrInvalidScheduleWindow,
		},
		{
			name:    "start after end",
			window:  mustWindow("18:00", "09:00"),
			wantErr: ErrInvalidScheduleWindow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.window.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

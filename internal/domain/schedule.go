package domain

import (
	"errors"
	"time"

	"github.com/chrisnails1212/salon-booking-engine/pkg/types"
)

// ErrInvalidScheduleWindow is returned for a malformed working window (start >= end)
var ErrInvalidScheduleWindow = errors.New("domain: invalid schedule window")

// WorkingWindow describes the working hours of a single day.
// Invariant: if IsWorking is true, Start < End.
type WorkingWindow struct {
	Start     types.TimeString
	End       types.TimeString
	IsWorking bool
}

// Validate checks the window invariant
func (w WorkingWindow) Validate() error {
	if !w.IsWorking {
		return nil
	}
	if err := w.Start.Validate(); err != nil {
		return err
	}
	if err := w.End.Validate(); err != nil {
		return err
	}
	if !w.Start.IsBefore(w.End) {
		return ErrInvalidScheduleWindow
	}
	return nil
}

// SpecialDay is a dated override of the weekly pattern
type SpecialDay struct {
	Date   time.Time
	Window WorkingWindow
}

// Holiday is a dated full-day block. It wins over special days and the weekly pattern.
type Holiday struct {
	Date  time.Time
	Label string
}

// BreakWindow is a recurring daily exclusion window (lunch, cleaning, etc.)
type BreakWindow struct {
	Start types.TimeString
	End   types.TimeString
	Label string
}

// ScheduleModel is the working pattern of one staff resource.
// It is a read-only snapshot supplied by the staff-management collaborator.
type ScheduleModel struct {
	StaffID     int64
	Weekly      map[time.Weekday]WorkingWindow
	SpecialDays []SpecialDay
	Holidays    []Holiday
	Breaks      []BreakWindow
}

// WindowFor resolves the working window for a date.
// Precedence: holiday > special day > weekly pattern. A holiday or a
// non-working resolved window means the day is off and the second return
// value is false.
func (s *ScheduleModel) WindowFor(date time.Time) (WorkingWindow, bool) {
	for _, h := range s.Holidays {
		if sameDate(h.Date, date) {
			return WorkingWindow{}, false
		}
	}

	for _, sd := range s.SpecialDays {
		if sameDate(sd.Date, date) {
			if !sd.Window.IsWorking {
				return WorkingWindow{}, false
			}
			return sd.Window, true
		}
	}

	window, ok := s.Weekly[date.Weekday()]
	if !ok || !window.IsWorking {
		return WorkingWindow{}, false
	}
	return window, true
}

// IsHoliday reports whether the date is marked as a holiday
func (s *ScheduleModel) IsHoliday(date time.Time) bool {
	for _, h := range s.Holidays {
		if sameDate(h.Date, date) {
			return true
		}
	}
	return false
}

func sameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

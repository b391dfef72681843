package staffservice

import (
	"fmt"
	"time"

	"github.com/chrisnails1212/salon-booking-engine/internal/domain"
	"github.com/chrisnails1212/salon-booking-engine/pkg/types"
)

// Staff модель сотрудника из StaffService
type Staff struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// DayWindow рабочее окно одного дня в ответе StaffService
type DayWindow struct {
	IsWorking bool    `json:"is_working"`
	StartTime *string `json:"start_time,omitempty"` // "09:00"
	EndTime   *string `json:"end_time,omitempty"`   // "18:00"
}

// SpecialDay датированное переопределение недельного расписания
type SpecialDay struct {
	Date      string    `json:"date"` // "2025-10-15"
	DayWindow DayWindow `json:"window"`
}

// Holiday датированный нерабочий день
type Holiday struct {
	Date  string `json:"date"`
	Label string `json:"label"`
}

// BreakWindow повторяющийся ежедневный перерыв
type BreakWindow struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Label     string `json:"label"`
}

// Schedule полное расписание сотрудника из StaffService
type Schedule struct {
	StaffID     int64                `json:"staff_id"`
	Weekly      map[string]DayWindow `json:"weekly"` // ключи: "monday".."sunday"
	SpecialDays []SpecialDay         `json:"special_days"`
	Holidays    []Holiday            `json:"holidays"`
	Breaks      []BreakWindow        `json:"breaks"`
}

// ErrorResponse модель ошибки от StaffService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// ToDomain конвертирует ответ StaffService в доменную модель расписания
func (s *Schedule) ToDomain() (*domain.ScheduleModel, error) {
	model := &domain.ScheduleModel{
		StaffID: s.StaffID,
		Weekly:  make(map[time.Weekday]domain.WorkingWindow, 7),
	}

	for name, day := range s.Weekly {
		weekday, ok := weekdayNames[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown weekday %q", ErrInvalidResponse, name)
		}
		window, err := day.toDomain()
		if err != nil {
			return nil, err
		}
		model.Weekly[weekday] = window
	}

	for _, sd := range s.SpecialDays {
		date, err := time.Parse(domain.DateFormat, sd.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid special day date %q", ErrInvalidResponse, sd.Date)
		}
		window, err := sd.DayWindow.toDomain()
		if err != nil {
			return nil, err
		}
		model.SpecialDays = append(model.SpecialDays, domain.SpecialDay{Date: date, Window: window})
	}

	for _, h := range s.Holidays {
		date, err := time.Parse(domain.DateFormat, h.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid holiday date %q", ErrInvalidResponse, h.Date)
		}
		model.Holidays = append(model.Holidays, domain.Holiday{Date: date, Label: h.Label})
	}

	for _, b := range s.Breaks {
		start, err := types.NewTimeStringFromString(b.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid break start %q", ErrInvalidResponse, b.StartTime)
		}
		end, err := types.NewTimeStringFromString(b.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid break end %q", ErrInvalidResponse, b.EndTime)
		}
		model.Breaks = append(model.Breaks, domain.BreakWindow{Start: start, End: end, Label: b.Label})
	}

	return model, nil
}

func (d DayWindow) toDomain() (domain.WorkingWindow, error) {
	if !d.IsWorking || d.StartTime == nil || d.EndTime == nil {
		return domain.WorkingWindow{IsWorking: false}, nil
	}
	start, err := types.NewTimeStringFromString(*d.StartTime)
	if err != nil {
		return domain.WorkingWindow{}, fmt.Errorf("%w: invalid window start %q", ErrInvalidResponse, *d.StartTime)
	}
	end, err := types.NewTimeStringFromString(*d.EndTime)
	if err != nil {
		return domain.WorkingWindow{}, fmt.Errorf("%w: invalid window end %q", ErrInvalidResponse, *d.EndTime)
	}
	window := domain.WorkingWindow{Start: start, End: end, IsWorking: true}
	if err := window.Validate(); err != nil {
		return domain.WorkingWindow{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return window, nil
}

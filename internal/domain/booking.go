package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/chrisnails1212/salon-booking-engine/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending          BookingStatus = "pending"
	StatusConfirmed        BookingStatus = "confirmed"
	StatusInProgress       BookingStatus = "in_progress"
	StatusCompleted        BookingStatus = "completed"
	StatusCancelledByUser  BookingStatus = "cancelled_by_user"
	StatusCancelledByStaff BookingStatus = "cancelled_by_staff"
	StatusNoShow           BookingStatus = "no_show"
)

// Booking represents a committed appointment for a staff resource
type Booking struct {
	ID              int64
	UserID          int64
	StaffID         int64
	ServiceID       int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Количество дополнительных гостей (группа = 1 + AdditionalGuests)
	AdditionalGuests int

	// Denormalized data for history
	ServiceName string
	ExtraIDs    []int64

	// Итоговая разбивка цены, зафиксированная при создании
	Subtotal        decimal.Decimal
	DiscountApplied decimal.Decimal
	TaxApplied      decimal.Decimal
	GiftcardApplied decimal.Decimal
	TotalPrice      decimal.Decimal
	CouponCode      *string

	Notes *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its time slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelledByUser &&
		b.Status != StatusCancelledByStaff &&
		b.Status != StatusNoShow
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByUser || b.Status == StatusCancelledByStaff
}

// EndTime returns the end of the booked interval.
// The interval is half-open: [StartTime, EndTime).
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// StaffBookingsFilter фильтр для получения бронирований сотрудника
type StaffBookingsFilter struct {
	StaffID         int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные и no-show бронирования
}

// Overlaps reports whether two half-open [start, end) intervals intersect.
// Intervals that merely touch at a boundary do not overlap: a booking ending
// at 12:00 never conflicts with a booking starting at 12:00.
func Overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && bStart.IsBefore(aEnd)
}

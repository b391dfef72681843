package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CouponStatus represents the administrative state of a coupon
type CouponStatus string

const (
	CouponActive   CouponStatus = "active"
	CouponInactive CouponStatus = "inactive"
	CouponExpired  CouponStatus = "expired"
)

// DiscountType defines how a coupon's value is interpreted
type DiscountType string

const (
	DiscountPercentage  DiscountType = "percentage"
	DiscountFixedAmount DiscountType = "fixed_amount"
)

// Coupon is a promotional discount instrument
type Coupon struct {
	ID            int64
	Code          string
	DiscountType  DiscountType
	DiscountValue decimal.Decimal // процент (0-100) или фиксированная сумма

	ValidFrom *time.Time // nil = без нижней границы
	ValidTo   *time.Time // nil = без верхней границы

	UsageLimit *int64 // nil = без ограничения
	TimesUsed  int64

	MinimumPurchase  *decimal.Decimal // минимальный subtotal для применения
	MaximumDiscount  *decimal.Decimal // потолок суммы скидки
	AllowCombination bool             // можно ли сочетать с подарочными картами

	// nil = применим ко всем услугам/сотрудникам
	ServiceFilter []int64
	StaffFilter   []int64

	Status CouponStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsWithinWindow reports whether now falls into the coupon's validity window.
// Unbounded ends are allowed.
func (c *Coupon) IsWithinWindow(now time.Time) bool {
	if c.ValidFrom != nil && now.Before(*c.ValidFrom) {
		return false
	}
	if c.ValidTo != nil && now.After(*c.ValidTo) {
		return false
	}
	return true
}

// HasUsageLeft reports whether the usage limit is not yet exhausted
func (c *Coupon) HasUsageLeft() bool {
	if c.UsageLimit == nil {
		return true
	}
	return c.TimesUsed < *c.UsageLimit
}

// AppliesToService reports whether the coupon's service filter matches
func (c *Coupon) AppliesToService(serviceID int64) bool {
	return matchesFilter(c.ServiceFilter, serviceID)
}

// AppliesToStaff reports whether the coupon's staff filter matches
func (c *Coupon) AppliesToStaff(staffID int64) bool {
	return matchesFilter(c.StaffFilter, staffID)
}

// matchesFilter: пустой или nil фильтр означает "все"
func matchesFilter(filter []int64, id int64) bool {
	if len(filter) == 0 {
		return true
	}
	for _, v := range filter {
		if v == id {
			return true
		}
	}
	return false
}

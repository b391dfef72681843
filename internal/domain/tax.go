package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tax is a configured tax rule supplied by the tax catalog
type Tax struct {
	ID          int64
	Name        string
	RatePercent decimal.Decimal

	// Границы суммы налога после расчета ставки
	MinimumAmount *decimal.Decimal
	MaximumAmount *decimal.Decimal

	// true - налог уже включен в цену услуги и не добавляется сверху
	IncorporateIntoPrice bool
	// true - налог считается от суммы после скидки, false - от subtotal
	ApplyToDiscountedPrice bool

	// nil = применим ко всем локациям/услугам
	LocationFilter []int64
	ServiceFilter  []int64

	Enabled bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppliesToService reports whether the tax's service filter matches
func (t *Tax) AppliesToService(serviceID int64) bool {
	return matchesFilter(t.ServiceFilter, serviceID)
}

// AppliesToLocation reports whether the tax's location filter matches
func (t *Tax) AppliesToLocation(locationID int64) bool {
	return matchesFilter(t.LocationFilter, locationID)
}

// ClampAmount ограничивает рассчитанную сумму налога границами [Minimum, Maximum]
func (t *Tax) ClampAmount(amount decimal.Decimal) decimal.Decimal {
	if t.MinimumAmount != nil && amount.LessThan(*t.MinimumAmount) {
		amount = *t.MinimumAmount
	}
	if t.MaximumAmount != nil && amount.GreaterThan(*t.MaximumAmount) {
		amount = *t.MaximumAmount
	}
	return amount
}

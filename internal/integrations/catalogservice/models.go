package catalogservice

import (
	"github.com/shopspring/decimal"

	"github.com/chrisnails1212/salon-booking-engine/internal/domain"
)

// Extra дополнительная опция услуги из CatalogService
type Extra struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
}

// Service модель услуги из CatalogService
type Service struct {
	ID                  int64   `json:"id"`
	Name                string  `json:"name"`
	BasePrice           float64 `json:"base_price"`
	BaseDurationMinutes int     `json:"base_duration_minutes"`
	Extras              []Extra `json:"extras"`
	StaffIDs            []int64 `json:"staff_ids"`
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToDomain конвертирует услугу в доменную модель
// Денежные значения переводятся в decimal на границе интеграции
func (s *Service) ToDomain() *domain.Service {
	extras := make([]domain.Extra, 0, len(s.Extras))
	for _, e := range s.Extras {
		extras = append(extras, domain.Extra{
			ID:              e.ID,
			Name:            e.Name,
			Price:           decimal.NewFromFloat(e.Price),
			DurationMinutes: e.DurationMinutes,
		})
	}
	return &domain.Service{
		ID:                  s.ID,
		Name:                s.Name,
		BasePrice:           decimal.NewFromFloat(s.BasePrice),
		BaseDurationMinutes: s.BaseDurationMinutes,
		Extras:              extras,
		StaffIDs:            s.StaffIDs,
	}
}

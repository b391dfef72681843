package refund_giftcard

import (
	"github.com/shopspring/decimal"

	"github.com/chrisnails1212/salon-booking-engine/internal/service/ledger/models"
)

// RefundGiftcardRequest HTTP request model, код карты берется из пути
type RefundGiftcardRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Reason *string         `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RefundGiftcardRequest) ToServiceRequest(code string) *models.RefundRequest {
	return &models.RefundRequest{
		Code:   code,
		Amount: r.Amount,
		Reason: r.Reason,
	}
}

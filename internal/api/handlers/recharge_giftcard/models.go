package recharge_giftcard

import (
	"github.com/shopspring/decimal"

	"github.com/chrisnails1212/salon-booking-engine/internal/service/ledger/models"
)

// RechargeGiftcardRequest HTTP request model, код карты берется из пути
type RechargeGiftcardRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Reason *string         `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RechargeGiftcardRequest) ToServiceRequest(code string) *models.RechargeRequest {
	return &models.RechargeRequest{
		Code:   code,
		Amount: r.Amount,
		Reason: r.Reason,
	}
}

package refund_giftcard

import (
	"context"

	"github.com/chrisnails1212/salon-booking-engine/internal/service/ledger/models"
)

// LedgerService интерфейс сервиса подарочных карт
type LedgerService interface {
	Refund(ctx context.Context, req *models.RefundRequest) (*models.GiftcardResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package transfer_giftcard

import (
	"context"

	"github.com/chrisnails1212/salon-booking-engine/internal/service/ledger/models"
)

// LedgerService интерфейс сервиса подарочных карт
type LedgerService interface {
	Transfer(ctx context.Context, req *models.TransferRequest) (*models.TransferResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

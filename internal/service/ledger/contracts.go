package ledger

import (
	"context"
	"time"

	"github.com/chrisnails1212/salon-booking-engine/internal/domain"
)

// GiftcardRepository интерфейс репозитория подарочных карт
type GiftcardRepository interface {
	Create(ctx context.Context, card *domain.Giftcard) (*domain.Giftcard, error)
	GetByCode(ctx context.Context, code string) (*domain.Giftcard, error)
	GetByID(ctx context.Context, id int64) (*domain.Giftcard, error)
	GetTransactions(ctx context.Context, giftcardID int64) ([]domain.Transaction, error)
	AppendTransaction(ctx context.Context, tx *domain.Transaction) error
	UpdateBalances(ctx context.Context, card *domain.Giftcard) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider на системных часах
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

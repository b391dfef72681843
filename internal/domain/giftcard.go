package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrLedgerInvariant is returned when a giftcard's cached balances disagree
// with its transaction log, or an operation would break leftover == balance - spent.
var ErrLedgerInvariant = errors.New("domain: giftcard ledger invariant violated")

// TransactionType represents the business reason for a ledger entry
type TransactionType string

const (
	TxPurchase    TransactionType = "purchase"     // первичный выпуск карты
	TxRecharge    TransactionType = "recharge"     // пополнение баланса
	TxSpend       TransactionType = "spend"        // списание при оплате бронирования
	TxTransferIn  TransactionType = "transfer_in"  // входящий перевод с другой карты
	TxTransferOut TransactionType = "transfer_out" // исходящий перевод на другую карту
	TxRefund      TransactionType = "refund"       // возврат средств владельцу (сгорает с leftover)
	TxVoid        TransactionType = "void"         // аннулирование ранее записанной операции
)

// Transaction is a single immutable entry of a giftcard's append-only ledger.
// The transaction log is the source of truth; the cached balance columns on
// the giftcard are derived and updated only together with an append.
type Transaction struct {
	ID         uuid.UUID
	GiftcardID int64
	Type       TransactionType
	Amount     decimal.Decimal
	Fee        decimal.Decimal // комиссия перевода или возврата (0, если нет)
	Reason     *string

	// Связанные сущности
	BookingID         *int64     // для spend
	RelatedGiftcardID *int64     // вторая карта для transfer_in/transfer_out
	RelatedTxID       *uuid.UUID // парная запись перевода или аннулируемая запись для void

	CreatedAt time.Time
}

// PartialUsageRules governs whether a giftcard may cover only part of a total
type PartialUsageRules struct {
	AllowPartialUse  bool
	MinimumRemaining *decimal.Decimal // минимальный остаток после частичного списания
}

// TransferRules governs balance transfers between giftcards
type TransferRules struct {
	AllowTransfer     bool
	MaxTransferAmount *decimal.Decimal
	TransferFee       *decimal.Decimal // фиксированная комиссия, списывается с отправителя
}

// RefundRules governs refunding giftcard balance to the owner
type RefundRules struct {
	AllowRefund         bool
	RefundFeePercentage *decimal.Decimal
	RefundDeadlineDays  *int
}

// Giftcard is a stored-value instrument redeemable against bookings
type Giftcard struct {
	ID   int64
	Code string

	// Кэш, производный от журнала транзакций
	Balance  decimal.Decimal
	Spent    decimal.Decimal
	Leftover decimal.Decimal

	UsageLimit *int64 // максимальное число списаний, nil = без ограничения
	TimesUsed  int64

	DailyLimit    *decimal.Decimal // максимальная сумма списаний за календарный день
	MonthlyLimit  *decimal.Decimal // максимальная сумма списаний за календарный месяц
	DailyUsage    decimal.Decimal
	MonthlyUsage  decimal.Decimal
	LastUsageDate *time.Time

	ExpiresAt *time.Time
	IsActive  bool

	// nil = применима ко всем услугам/сотрудникам
	ServiceFilter []int64
	StaffFilter   []int64

	PartialUsage PartialUsageRules
	Transfer     TransferRules
	Refund       RefundRules

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsExpired reports whether the giftcard is past its expiry date
func (g *Giftcard) IsExpired(now time.Time) bool {
	return g.ExpiresAt != nil && now.After(*g.ExpiresAt)
}

// HasUsageLeft reports whether the redemption count limit is not exhausted
func (g *Giftcard) HasUsageLeft() bool {
	if g.UsageLimit == nil {
		return true
	}
	return g.TimesUsed < *g.UsageLimit
}

// AppliesToService reports whether the giftcard's service filter matches
func (g *Giftcard) AppliesToService(serviceID int64) bool {
	return matchesFilter(g.ServiceFilter, serviceID)
}

// AppliesToStaff reports whether the giftcard's staff filter matches
func (g *Giftcard) AppliesToStaff(staffID int64) bool {
	return matchesFilter(g.StaffFilter, staffID)
}

// CheckInvariant verifies leftover == balance - spent and both non-negative
func (g *Giftcard) CheckInvariant() error {
	if g.Balance.IsNegative() || g.Leftover.IsNegative() {
		return ErrLedgerInvariant
	}
	if !g.Leftover.Equal(g.Balance.Sub(g.Spent)) {
		return ErrLedgerInvariant
	}
	return nil
}

// FoldTransactions recomputes (balance, spent) from the ledger.
//
// Правила свертки:
//   - purchase, recharge, transfer_in увеличивают balance на Amount
//   - transfer_out уменьшает balance на Amount + Fee
//   - spend и refund увеличивают spent на Amount (возврат считается
//     потреблением: leftover уменьшается)
//   - void отменяет запись, на которую ссылается: обе исключаются из свертки
func FoldTransactions(txs []Transaction) (balance, spent decimal.Decimal) {
	voided := make(map[uuid.UUID]bool)
	for _, tx := range txs {
		if tx.Type == TxVoid && tx.RelatedTxID != nil {
			voided[*tx.RelatedTxID] = true
		}
	}

	balance = decimal.Zero
	spent = decimal.Zero

	for _, tx := range txs {
		if tx.Type == TxVoid || voided[tx.ID] {
			continue
		}
		switch tx.Type {
		case TxPurchase, TxRecharge, TxTransferIn:
			balance = balance.Add(tx.Amount)
		case TxTransferOut:
			balance = balance.Sub(tx.Amount.Add(tx.Fee))
		case TxSpend, TxRefund:
			spent = spent.Add(tx.Amount)
		}
	}
	return balance, spent
}

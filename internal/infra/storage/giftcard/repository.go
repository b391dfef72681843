package giftcard

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/chrisnails1212/salon-booking-engine/internal/domain"
	"github.com/chrisnails1212/salon-booking-engine/pkg/dbmetrics"
	"github.com/chrisnails1212/salon-booking-engine/pkg/psqlbuilder"
)

var giftcardColumns = []string{
	"id",
	"code",
	"balance",
	"spent",
	"leftover",
	"usage_limit",
	"times_used",
	"daily_limit",
	"monthly_limit",
	"daily_usage",
	"monthly_usage",
	"last_usage_date",
	"expires_at",
	"is_active",
	"service_filter",
	"staff_filter",
	"allow_partial_use",
	"minimum_remaining",
	"allow_transfer",
	"max_transfer_amount",
	"transfer_fee",
	"allow_refund",
	"refund_fee_percentage",
	"refund_deadline_days",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с подарочными картами и их журналом транзакций
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория подарочных карт
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create выпускает новую подарочную карту (без транзакций в журнале)
// Первичная транзакция purchase добавляется сервисом ledger в той же БД-транзакции
func (r *Repository) Create(ctx context.Context, card *domain.Giftcard) (*domain.Giftcard, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("giftcards").
		Columns(
			"code",
			"balance",
			"spent",
			"leftover",
			"usage_limit",
			"daily_limit",
			"monthly_limit",
			"expires_at",
			"is_active",
			"service_filter",
			"staff_filter",
			"allow_partial_use",
			"minimum_remaining",
			"allow_transfer",
			"max_transfer_amount",
			"transfer_fee",
			"allow_refund",
			"refund_fee_percentage",
			"refund_deadline_days",
		).
		Values(
			card.Code,
			card.Balance,
			card.Spent,
			card.Leftover,
			card.UsageLimit,
			card.DailyLimit,
			card.MonthlyLimit,
			card.ExpiresAt,
			card.IsActive,
			pq.Array(card.ServiceFilter),
			pq.Array(card.StaffFilter),
			card.PartialUsage.AllowPartialUse,
			card.PartialUsage.MinimumRemaining,
			card.Transfer.AllowTransfer,
			card.Transfer.MaxTransferAmount,
			card.Transfer.TransferFee,
			card.Refund.AllowRefund,
			card.Refund.RefundFeePercentage,
			card.Refund.RefundDeadlineDays,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&card.ID, &createdAt, &updatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, ErrDuplicateCode
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	card.CreatedAt = createdAt.Time
	card.UpdatedAt = updatedAt.Time

	return card, nil
}

// GetByCode получает подарочную карту по коду
// Внутри транзакции строка блокируется FOR UPDATE: баланс проверяется и
// изменяется атомарно вместе с добавлением записи в журнал
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Giftcard, error) {
	return r.getOne(ctx, squirrel.Eq{"code": code})
}

// GetByID получает подарочную карту по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Giftcard, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Giftcard, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(giftcardColumns...).
		From("giftcards").
		Where(where)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	card, err := scanGiftcard(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrGiftcardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan giftcard: %v", ErrScanRow, err)
	}

	return card, nil
}

// GetTransactions возвращает журнал транзакций карты в хронологическом порядке
func (r *Repository) GetTransactions(ctx context.Context, giftcardID int64) ([]domain.Transaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"giftcard_id",
		"type",
		"amount",
		"fee",
		"reason",
		"booking_id",
		"related_giftcard_id",
		"related_tx_id",
		"created_at",
	).
		From("giftcard_transactions").
		Where(squirrel.Eq{"giftcard_id": giftcardID}).
		OrderBy("created_at ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTransactions - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTransactions - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	txs := make([]domain.Transaction, 0)
	for rows.Next() {
		var tx domain.Transaction
		var createdAt sql.NullTime

		err := rows.Scan(
			&tx.ID,
			&tx.GiftcardID,
			&tx.Type,
			&tx.Amount,
			&tx.Fee,
			&tx.Reason,
			&tx.BookingID,
			&tx.RelatedGiftcardID,
			&tx.RelatedTxID,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetTransactions - scan transaction: %v", ErrScanRow, err)
		}

		tx.CreatedAt = createdAt.Time
		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTransactions - rows error: %v", ErrScanRow, err)
	}

	return txs, nil
}

// AppendTransaction добавляет запись в журнал транзакций
// Журнал append-only: записи никогда не изменяются и не удаляются,
// корректировки выполняются записями типа void
func (r *Repository) AppendTransaction(ctx context.Context, tx *domain.Transaction) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("giftcard_transactions").
		Columns(
			"id",
			"giftcard_id",
			"type",
			"amount",
			"fee",
			"reason",
			"booking_id",
			"related_giftcard_id",
			"related_tx_id",
		).
		Values(
			tx.ID,
			tx.GiftcardID,
			tx.Type,
			tx.Amount,
			tx.Fee,
			tx.Reason,
			tx.BookingID,
			tx.RelatedGiftcardID,
			tx.RelatedTxID,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AppendTransaction - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return fmt.Errorf("%w: AppendTransaction - execute insert: %v", ErrExecQuery, err)
	}

	tx.CreatedAt = createdAt.Time
	return nil
}

// UpdateBalances обновляет кэшированные производные поля карты
// Вызывается только в одной БД-транзакции с AppendTransaction: кэш и журнал
// не могут разойтись
func (r *Repository) UpdateBalances(ctx context.Context, card *domain.Giftcard) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("giftcards").
		Set("balance", card.Balance).
		Set("spent", card.Spent).
		Set("leftover", card.Leftover).
		Set("times_used", card.TimesUsed).
		Set("daily_usage", card.DailyUsage).
		Set("monthly_usage", card.MonthlyUsage).
		Set("last_usage_date", card.LastUsageDate).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": card.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateBalances - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateBalances - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateBalances - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrGiftcardNotFound
	}

	return nil
}

// scanGiftcard сканирует одну строку в модель подарочной карты
func scanGiftcard(scan func(dest ...interface{}) error) (*domain.Giftcard, error) {
	var card domain.Giftcard
	var serviceFilter, staffFilter pq.Int64Array
	var lastUsageDate, expiresAt sql.NullTime
	var dailyLimit, monthlyLimit, minimumRemaining decimal.NullDecimal
	var maxTransferAmount, transferFee, refundFeePct decimal.NullDecimal
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&card.ID,
		&card.Code,
		&card.Balance,
		&card.Spent,
		&card.Leftover,
		&card.UsageLimit,
		&card.TimesUsed,
		&dailyLimit,
		&monthlyLimit,
		&card.DailyUsage,
		&card.MonthlyUsage,
		&lastUsageDate,
		&expiresAt,
		&card.IsActive,
		&serviceFilter,
		&staffFilter,
		&card.PartialUsage.AllowPartialUse,
		&minimumRemaining,
		&card.Transfer.AllowTransfer,
		&maxTransferAmount,
		&transferFee,
		&card.Refund.AllowRefund,
		&refundFeePct,
		&card.Refund.RefundDeadlineDays,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	card.ServiceFilter = serviceFilter
	card.StaffFilter = staffFilter
	card.DailyLimit = fromNullDecimal(dailyLimit)
	card.MonthlyLimit = fromNullDecimal(monthlyLimit)
	card.PartialUsage.MinimumRemaining = fromNullDecimal(minimumRemaining)
	card.Transfer.MaxTransferAmount = fromNullDecimal(maxTransferAmount)
	card.Transfer.TransferFee = fromNullDecimal(transferFee)
	card.Refund.RefundFeePercentage = fromNullDecimal(refundFeePct)
	card.LastUsageDate = fromNullTime(lastUsageDate)
	card.ExpiresAt = fromNullTime(expiresAt)
	card.CreatedAt = createdAt.Time
	card.UpdatedAt = updatedAt.Time

	return &card, nil
}

func fromNullDecimal(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

func fromNullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chrisnails1212/salon-booking-engine/internal/domain"
	giftcardRepo "github.com/chrisnails1212/salon-booking-engine/internal/infra/storage/giftcard"
	"github.com/chrisnails1212/salon-booking-engine/internal/service/ledger/models"
)

var hundred = decimal.NewFromInt(100)

// Service управляет журналом транзакций подарочных карт
// Журнал - источник истины: каждая операция добавляет запись и
// пересчитывает кэшированные балансы в одной БД-транзакции
type Service struct {
	giftcards GiftcardRepository
	txManager TransactionManager
	time      TimeProvider
	logger    Logger
}

// NewService создает новый экземпляр сервиса журнала подарочных карт
func NewService(
	giftcards GiftcardRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		giftcards: giftcards,
		txManager: txManager,
		time:      timeProvider,
		logger:    logger,
	}
}

// Issue выпускает новую карту с первичной транзакцией purchase
func (s *Service) Issue(ctx context.Context, req *models.IssueGiftcardRequest) (*models.GiftcardResponse, error) {
	s.logger.Info("Issue: issuing giftcard code=%s amount=%s", req.Code, req.InitialAmount)

	if req.InitialAmount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	card := &domain.Giftcard{
		Code:          req.Code,
		Balance:       req.InitialAmount,
		Spent:         decimal.Zero,
		Leftover:      req.InitialAmount,
		UsageLimit:    req.UsageLimit,
		DailyLimit:    req.DailyLimit,
		MonthlyLimit:  req.MonthlyLimit,
		DailyUsage:    decimal.Zero,
		MonthlyUsage:  decimal.Zero,
		IsActive:      true,
		ServiceFilter: req.ServiceFilter,
		StaffFilter:   req.StaffFilter,
		PartialUsage:  domain.PartialUsageRules{AllowPartialUse: true},
	}

	if req.ExpiresAt != nil {
		expires, err := time.Parse("2006-01-02", *req.ExpiresAt)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidExpiryDate, *req.ExpiresAt)
		}
		card.ExpiresAt = &expires
	}

	var txs []domain.Transaction
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		created, err := s.giftcards.Create(ctx, card)
		if err != nil {
			if errors.Is(err, giftcardRepo.ErrDuplicateCode) {
				return ErrDuplicateCode
			}
			return fmt.Errorf("%w: Issue - create giftcard: %v", ErrInternal, err)
		}
		card = created

		purchase := &domain.Transaction{
			ID:         uuid.New(),
			GiftcardID: card.ID,
			Type:       domain.TxPurchase,
			Amount:     req.InitialAmount,
			Fee:        decimal.Zero,
		}
		if err := s.giftcards.AppendTransaction(ctx, purchase); err != nil {
			return fmt.Errorf("%w: Issue - append purchase: %v", ErrInternal, err)
		}

		txs = []domain.Transaction{*purchase}
		return nil
	})
	if err != nil {
		s.logger.Error("Issue: failed for code=%s: %v", req.Code, err)
		return nil, err
	}

	s.logger.Info("Issue: giftcard id=%d issued with balance=%s", card.ID, card.Balance)
	resp := models.FromDomainGiftcard(card, txs)
	return &resp, nil
}

// Get возвращает карту вместе с журналом транзакций
// Перед отдачей кэш сверяется со сверткой журнала
func (s *Service) Get(ctx context.Context, code string) (*models.GiftcardResponse, error) {
	card, err := s.loadCard(ctx, code)
	if err != nil {
		return nil, err
	}

	txs, err := s.giftcards.GetTransactions(ctx, card.ID)
	if err != nil {
		s.logger.Error("Get: failed to load transactions for giftcard id=%d: %v", card.ID, err)
		return nil, fmt.Errorf("%w: Get - load transactions: %v", ErrInternal, err)
	}

	if err := s.verifyAgainstLedger(card, txs); err != nil {
		return nil, err
	}

	resp := models.FromDomainGiftcard(card, txs)
	return &resp, nil
}

// Recharge пополняет баланс карты
func (s *Service) Recharge(ctx context.Context, req *models.RechargeRequest) (*models.GiftcardResponse, error) {
	s.logger.Info("Recharge: code=%s amount=%s", req.Code, req.Amount)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	var card *domain.Giftcard
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		var err error
		card, err = s.lockCard(ctx, req.Code)
		if err != nil {
			return err
		}
		if !card.IsActive {
			return ErrGiftcardInactive
		}

		tx := &domain.Transaction{
			ID:         uuid.New(),
			GiftcardID: card.ID,
			Type:       domain.TxRecharge,
			Amount:     req.Amount,
			Fee:        decimal.Zero,
			Reason:     req.Reason,
		}

		card.Balance = card.Balance.Add(req.Amount)
		card.Leftover = card.Balance.Sub(card.Spent)

		return s.commitEntry(ctx, card, tx)
	})
	if err != nil {
		s.logger.Error("Recharge: failed for code=%s: %v", req.Code, err)
		return nil, err
	}

	s.logger.Info("Recharge: giftcard id=%d new balance=%s", card.ID, card.Balance)
	resp := models.FromDomainGiftcard(card, nil)
	return &resp, nil
}

// Transfer переводит средства с одной карты на другую
// Перевод - пара связанных записей: transfer_out у отправителя
// (сумма + комиссия) и transfer_in у получателя (сумма)
func (s *Service) Transfer(ctx context.Context, req *models.TransferRequest) (*models.TransferResponse, error) {
	s.logger.Info("Transfer: from=%s to=%s amount=%s", req.FromCode, req.ToCode, req.Amount)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	if req.FromCode == req.ToCode {
		return nil, ErrTransferToSelf
	}

	var from, to *domain.Giftcard
	var fee decimal.Decimal
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// Блокируем карты в порядке кода: параллельные переводы
		// в обе стороны не взаимоблокируются
		first, second := req.FromCode, req.ToCode
		if second < first {
			first, second = second, first
		}
		firstCard, err := s.lockCard(ctx, first)
		if err != nil {
			return err
		}
		secondCard, err := s.lockCard(ctx, second)
		if err != nil {
			return err
		}
		from, to = firstCard, secondCard
		if from.Code != req.FromCode {
			from, to = secondCard, firstCard
		}

		if !from.IsActive || !to.IsActive {
			return ErrGiftcardInactive
		}
		if !from.Transfer.AllowTransfer {
			return ErrTransferNotAllowed
		}
		if from.Transfer.MaxTransferAmount != nil && req.Amount.GreaterThan(*from.Transfer.MaxTransferAmount) {
			return ErrTransferLimitExceeded
		}

		fee = decimal.Zero
		if from.Transfer.TransferFee != nil {
			fee = *from.Transfer.TransferFee
		}
		totalDeduction := req.Amount.Add(fee)
		if from.Leftover.LessThan(totalDeduction) {
			return ErrInsufficientBalance
		}

		outTx := &domain.Transaction{
			ID:                uuid.New(),
			GiftcardID:        from.ID,
			Type:              domain.TxTransferOut,
			Amount:            req.Amount,
			Fee:               fee,
			RelatedGiftcardID: &to.ID,
		}
		inTx := &domain.Transaction{
			ID:                uuid.New(),
			GiftcardID:        to.ID,
			Type:              domain.TxTransferIn,
			Amount:            req.Amount,
			RelatedGiftcardID: &from.ID,
			RelatedTxID:       &outTx.ID,
		}
		outTx.RelatedTxID = &inTx.ID

		from.Balance = from.Balance.Sub(totalDeduction)
		from.Leftover = from.Balance.Sub(from.Spent)
		to.Balance = to.Balance.Add(req.Amount)
		to.Leftover = to.Balance.Sub(to.Spent)

		if err := s.commitEntry(ctx, from, outTx); err != nil {
			return err
		}
		return s.commitEntry(ctx, to, inTx)
	})
	if err != nil {
		s.logger.Error("Transfer: failed from=%s to=%s: %v", req.FromCode, req.ToCode, err)
		return nil, err
	}

	s.logger.Info("Transfer: moved %s (fee=%s) from giftcard id=%d to id=%d", req.Amount, fee, from.ID, to.ID)
	return &models.TransferResponse{
		From: models.FromDomainGiftcard(from, nil),
		To:   models.FromDomainGiftcard(to, nil),
		Fee:  fee,
	}, nil
}

// Refund возвращает часть остатка владельцу карты
// Сумма возврата списывается с leftover целиком, удержанная комиссия
// фиксируется в поле Fee записи журнала
func (s *Service) Refund(ctx context.Context, req *models.RefundRequest) (*models.GiftcardResponse, error) {
	s.logger.Info("Refund: code=%s amount=%s", req.Code, req.Amount)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	var card *domain.Giftcard
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		var err error
		card, err = s.lockCard(ctx, req.Code)
		if err != nil {
			return err
		}
		if !card.IsActive {
			return ErrGiftcardInactive
		}
		if !card.Refund.AllowRefund {
			return ErrRefundNotAllowed
		}
		if card.Refund.RefundDeadlineDays != nil {
			deadline := card.CreatedAt.AddDate(0, 0, *card.Refund.RefundDeadlineDays)
			if s.time.Now().After(deadline) {
				return ErrRefundDeadlinePassed
			}
		}
		if card.Leftover.LessThan(req.Amount) {
			return ErrInsufficientBalance
		}

		fee := decimal.Zero
		if card.Refund.RefundFeePercentage != nil {
			fee = req.Amount.Mul(*card.Refund.RefundFeePercentage).Div(hundred).Round(2)
		}

		tx := &domain.Transaction{
			ID:         uuid.New(),
			GiftcardID: card.ID,
			Type:       domain.TxRefund,
			Amount:     req.Amount,
			Fee:        fee,
			Reason:     req.Reason,
		}

		card.Spent = card.Spent.Add(req.Amount)
		card.Leftover = card.Balance.Sub(card.Spent)

		return s.commitEntry(ctx, card, tx)
	})
	if err != nil {
		s.logger.Error("Refund: failed for code=%s: %v", req.Code, err)
		return nil, err
	}

	s.logger.Info("Refund: giftcard id=%d refunded %s, leftover=%s", card.ID, req.Amount, card.Leftover)
	resp := models.FromDomainGiftcard(card, nil)
	return &resp, nil
}

// RecordSpend records a redemption against a booking.
//
// Вызывается только внутри уже открытой БД-транзакции оформления
// бронирования: списание и создание бронирования атомарны
func (s *Service) RecordSpend(ctx context.Context, card *domain.Giftcard, amount decimal.Decimal, bookingID int64) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if card.Leftover.LessThan(amount) {
		return ErrInsufficientBalance
	}

	tx := &domain.Transaction{
		ID:         uuid.New(),
		GiftcardID: card.ID,
		Type:       domain.TxSpend,
		Amount:     amount,
		Fee:        decimal.Zero,
		BookingID:  &bookingID,
	}

	now := s.time.Now()
	card.Spent = card.Spent.Add(amount)
	card.Leftover = card.Balance.Sub(card.Spent)
	card.TimesUsed++
	applyUsageCounters(card, amount, now)

	return s.commitEntry(ctx, card, tx)
}

// lockCard загружает карту с блокировкой строки внутри транзакции
func (s *Service) lockCard(ctx context.Context, code string) (*domain.Giftcard, error) {
	return s.loadCard(ctx, code)
}

func (s *Service) loadCard(ctx context.Context, code string) (*domain.Giftcard, error) {
	card, err := s.giftcards.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, giftcardRepo.ErrGiftcardNotFound) {
			s.logger.Warn("loadCard: giftcard code=%s not found", code)
			return nil, ErrGiftcardNotFound
		}
		s.logger.Error("loadCard: repository error for code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: loadCard - repository error: %v", ErrInternal, err)
	}
	return card, nil
}

// commitEntry добавляет запись журнала и обновляет кэш карты
// Перед записью проверяется инвариант leftover == balance - spent
func (s *Service) commitEntry(ctx context.Context, card *domain.Giftcard, tx *domain.Transaction) error {
	if err := card.CheckInvariant(); err != nil {
		s.logger.Error("commitEntry: invariant violated for giftcard id=%d", card.ID)
		return ErrLedgerCorrupted
	}
	if err := s.giftcards.AppendTransaction(ctx, tx); err != nil {
		return fmt.Errorf("%w: commitEntry - append transaction: %v", ErrInternal, err)
	}
	if err := s.giftcards.UpdateBalances(ctx, card); err != nil {
		return fmt.Errorf("%w: commitEntry - update balances: %v", ErrInternal, err)
	}
	return nil
}

// verifyAgainstLedger сверяет кэшированные балансы со сверткой журнала
func (s *Service) verifyAgainstLedger(card *domain.Giftcard, txs []domain.Transaction) error {
	balance, spent := domain.FoldTransactions(txs)
	if !card.Balance.Equal(balance) || !card.Spent.Equal(spent) {
		s.logger.Error("verifyAgainstLedger: giftcard id=%d cache (balance=%s spent=%s) disagrees with ledger (balance=%s spent=%s)",
			card.ID, card.Balance, card.Spent, balance, spent)
		return ErrLedgerCorrupted
	}
	return nil
}

// applyUsageCounters обновляет дневной и месячный счетчики списаний
// Счетчики относятся к дате последнего списания и обнуляются при
// смене дня или месяца
func applyUsageCounters(card *domain.Giftcard, amount decimal.Decimal, now time.Time) {
	if card.LastUsageDate != nil {
		ly, lm, ld := card.LastUsageDate.Date()
		ny, nm, nd := now.Date()
		if ly != ny || lm != nm || ld != nd {
			card.DailyUsage = decimal.Zero
		}
		if ly != ny || lm != nm {
			card.MonthlyUsage = decimal.Zero
		}
	}
	card.DailyUsage = card.DailyUsage.Add(amount)
	card.MonthlyUsage = card.MonthlyUsage.Add(amount)
	usageDate := now
	card.LastUsageDate = &usageDate
}

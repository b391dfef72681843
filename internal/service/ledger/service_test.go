package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisnails1212/salon-booking-engine/internal/domain"
	giftcardRepo "github.com/chrisnails1212/salon-booking-engine/internal/infra/storage/giftcard"
	"github.com/chrisnails1212/salon-booking-engine/internal/service/ledger/models"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func dp(v string) *decimal.Decimal {
	dec := decimal.RequireFromString(v)
	return &dec
}

func ip(v int) *int { return &v }

// mockRepo хранит карты и журнал в памяти
type mockRepo struct {
	cards  map[string]*domain.Giftcard
	txs    map[int64][]domain.Transaction
	nextID int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		cards:  make(map[string]*domain.Giftcard),
		txs:    make(map[int64][]domain.Transaction),
		nextID: 1,
	}
}

func (m *mockRepo) add(card *domain.Giftcard) *domain.Giftcard {
	card.ID = m.nextID
	m.nextID++
	m.cards[card.Code] = card
	return card
}

func (m *mockRepo) Create(_ context.Context, card *domain.Giftcard) (*domain.Giftcard, error) {
	if _, exists := m.cards[card.Code]; exists {
		return nil, giftcardRepo.ErrDuplicateCode
	}
	copied := *card
	return m.add(&copied), nil
}

func (m *mockRepo) GetByCode(_ context.Context, code string) (*domain.Giftcard, error) {
	card, ok := m.cards[code]
	if !ok {
		return nil, giftcardRepo.ErrGiftcardNotFound
	}
	copied := *card
	return &copied, nil
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*domain.Giftcard, error) {
	for _, card := range m.cards {
		if card.ID == id {
			copied := *card
			return &copied, nil
		}
	}
	return nil, giftcardRepo.ErrGiftcardNotFound
}

func (m *mockRepo) GetTransactions(_ context.Context, giftcardID int64) ([]domain.Transaction, error) {
	return m.txs[giftcardID], nil
}

func (m *mockRepo) AppendTransaction(_ context.Context, tx *domain.Transaction) error {
	m.txs[tx.GiftcardID] = append(m.txs[tx.GiftcardID], *tx)
	return nil
}

func (m *mockRepo) UpdateBalances(_ context.Context, card *domain.Giftcard) error {
	for code, stored := range m.cards {
		if stored.ID == card.ID {
			copied := *card
			m.cards[code] = &copied
			return nil
		}
	}
	return giftcardRepo.ErrGiftcardNotFound
}

// passthroughTxManager выполняет функцию без настоящей БД-транзакции
type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(repo *mockRepo, now time.Time) *Service {
	return NewService(repo, passthroughTxManager{}, &fixedTime{now: now}, nopLogger{})
}

func seedCard(repo *mockRepo, code, balance string) *domain.Giftcard {
	card := &domain.Giftcard{
		Code:      code,
		Balance:   d(balance),
		Spent:     decimal.Zero,
		Leftover:  d(balance),
		IsActive:  true,
		CreatedAt: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		PartialUsage: domain.PartialUsageRules{
			AllowPartialUse: true,
		},
	}
	return repo.add(card)
}

// assertCardUntouched проверяет, что кэш карты остался в исходном состоянии
// seedCard: balance == leftover, spent == 0
func assertCardUntouched(t *testing.T, card *domain.Giftcard, balance string) {
	t.Helper()
	require.NotNil(t, card)
	assert.True(t, card.Balance.Equal(d(balance)), "balance = %s", card.Balance)
	assert.True(t, card.Spent.Equal(decimal.Zero), "spent = %s", card.Spent)
	assert.True(t, card.Leftover.Equal(d(balance)), "leftover = %s", card.Leftover)
}

func TestIssue(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

	t.Run("issues a card with a purchase entry", func(t *testing.T) {
		repo := newMockRepo()
		svc := newTestService(repo, now)

		resp, err := svc.Issue(context.Background(), &models.IssueGiftcardRequest{
			Code:          "GC-NEW",
			InitialAmount: d("150"),
		})
		require.NoError(t, err)

		assert.True(t, resp.Balance.Equal(d("150")))
		assert.True(t, resp.Leftover.Equal(d("150")))
		assert.True(t, resp.IsActive)
		require.Len(t, resp.Transactions, 1)
		assert.Equal(t, string(domain.TxPurchase), resp.Transactions[0].Type)

		txs := repo.txs[resp.ID]
		require.Len(t, txs, 1)
		assert.True(t, txs[0].Amount.Equal(d("150")))
	})

	t.Run("duplicate code is rejected", func(t *testing.T) {
		repo := newMockRepo()
		seedCard(repo, "GC-1", "100")
		svc := newTestService(repo, now)

		_, err := svc.Issue(context.Background(), &models.IssueGiftcardRequest{
			Code:          "GC-1",
			InitialAmount: d("50"),
		})
		require.ErrorIs(t, err, ErrDuplicateCode)
	})

	t.Run("non-positive amount is rejected", func(t *testing.T) {
		svc := newTestService(newMockRepo(), now)

		_, err := svc.Issue(context.Background(), &models.IssueGiftcardRequest{
			Code:          "GC-1",
			InitialAmount: decimal.Zero,
		})
		require.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("malformed expiry date is rejected", func(t *testing.T) {
		svc := newTestService(newMockRepo(), now)

		expires := "31-12-2026"
		_, err := svc.Issue(context.Background(), &models.IssueGiftcardRequest{
			Code:          "GC-1",
			InitialAmount: d("50"),
			ExpiresAt:     &expires,
		})
		require.ErrorIs(t, err, ErrInvalidExpiryDate)
	})
}

func TestGet_VerifiesLedger(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

	t.Run("consistent card is returned with its log", func(t *testing.T) {
		repo := newMockRepo()
		svc := newTestService(repo, now)

		issued, err := svc.Issue(context.Background(), &models.IssueGiftcardRequest{
			Code:          "GC-1",
			InitialAmount: d("100"),
		})
		require.NoError(t, err)

		resp, err := svc.Get(context.Background(), "GC-1")
		require.NoError(t, err)
		assert.Equal(t, issued.ID, resp.ID)
		assert.True(t, resp.Balance.Equal(d("100")))
		require.Len(t, resp.Transactions, 1)
	})

	t.Run("cache disagreement is reported as corruption", func(t *testing.T) {
		repo := newMockRepo()
		card := seedCard(repo, "GC-BAD", "100")
		// Журнал пуст, а кэш утверждает про 100 на балансе
		_ = card
		svc := newTestService(repo, now)

		_, err := svc.Get(context.Background(), "GC-BAD")
		require.ErrorIs(t, err, ErrLedgerCorrupted)
	})

	t.Run("unknown code", func(t *testing.T) {
		svc := newTestService(newMockRepo(), now)
		_, err := svc.Get(context.Background(), "NOPE")
		require.ErrorIs(t, err, ErrGiftcardNotFound)
	})
}

func TestRecharge(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

	t.Run("recharge adds to balance and leftover", func(t *testing.T) {
		repo := newMockRepo()
		card := seedCard(repo, "GC-1", "100")
		svc := newTestService(repo, now)

		resp, err := svc.Recharge(context.Background(), &models.RechargeRequest{
			Code:   "GC-1",
			Amount: d("40"),
		})
		require.NoError(t, err)
		assert.True(t, resp.Balance.Equal(d("140")))
		assert.True(t, resp.Leftover.Equal(d("140")))

		txs := repo.txs[card.ID]
		require.Len(t, txs, 1)
		assert.Equal(t, domain.TxRecharge, txs[0].Type)
	})

	t.Run("inactive card cannot be recharged", func(t *testing.T) {
		repo := newMockRepo()
		card := seedCard(repo, "GC-1", "100")
		card.IsActive = false
		svc := newTestService(repo, now)

		_, err := svc.Recharge(context.Background(), &models.RechargeRequest{
			Code:   "GC-1",
			Amount: d("40"),
		})
		require.ErrorIs(t, err, ErrGiftcardInactive)
	})
}

func TestTransfer(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

	setup := func() (*mockRepo, *Service, *domain.Giftcard, *domain.Giftcard) {
		repo := newMockRepo()
		from := seedCard(repo, "GC-A", "100")
		from.Transfer = domain.TransferRules{
			AllowTransfer: true,
			TransferFee:   dp("2"),
		}
		to := seedCard(repo, "GC-B", "10")
		return repo, newTestService(repo, now), from, to
	}

	t.Run("paired entries and fee on the sender", func(t *testing.T) {
		repo, svc, from, to := setup()

		resp, err := svc.Transfer(context.Background(), &models.TransferRequest{
			FromCode: "GC-A",
			ToCode:   "GC-B",
			Amount:   d("40"),
		})
		require.NoError(t, err)

		// Отправитель теряет сумму и комиссию, получатель получает сумму
		assert.True(t, resp.From.Balance.Equal(d("58")))
		assert.True(t, resp.To.Balance.Equal(d("50")))
		assert.True(t, resp.Fee.Equal(d("2")))

		outTxs := repo.txs[from.ID]
		inTxs := repo.txs[to.ID]
		require.Len(t, outTxs, 1)
		require.Len(t, inTxs, 1)
		assert.Equal(t, domain.TxTransferOut, outTxs[0].Type)
		assert.Equal(t, domain.TxTransferIn, inTxs[0].Type)

		// Записи ссылаются друг на друга
		require.NotNil(t, outTxs[0].RelatedTxID)
		require.NotNil(t, inTxs[0].RelatedTxID)
		assert.Equal(t, inTxs[0].ID, *outTxs[0].RelatedTxID)
		assert.Equal(t, outTxs[0].ID, *inTxs[0].RelatedTxID)
	})

	t.Run("insufficient balance includes the fee", func(t *testing.T) {
		repo, svc, from, to := setup()

		// 99 + комиссия 2 > 100
		_, err := svc.Transfer(context.Background(), &models.TransferRequest{
			FromCode: "GC-A",
			ToCode:   "GC-B",
			Amount:   d("99"),
		})
		require.ErrorIs(t, err, ErrInsufficientBalance)

		// Обе карты не тронуты, в журнале нет записей
		assertCardUntouched(t, repo.cards["GC-A"], "100")
		assertCardUntouched(t, repo.cards["GC-B"], "10")
		assert.Empty(t, repo.txs[from.ID])
		assert.Empty(t, repo.txs[to.ID])
	})

	t.Run("transfers must be allowed by the sender's rules", func(t *testing.T) {
		_, svc, from, _ := setup()
		from.Transfer.AllowTransfer = false

		_, err := svc.Transfer(context.Background(), &models.TransferRequest{
			FromCode: "GC-A",
			ToCode:   "GC-B",
			Amount:   d("10"),
		})
		require.ErrorIs(t, err, ErrTransferNotAllowed)
	})

	t.Run("amount above the per-transfer cap", func(t *testing.T) {
		repo, svc, from, to := setup()
		from.Transfer.MaxTransferAmount = dp("25")

		_, err := svc.Transfer(context.Background(), &models.TransferRequest{
			FromCode: "GC-A",
			ToCode:   "GC-B",
			Amount:   d("30"),
		})
		require.ErrorIs(t, err, ErrTransferLimitExceeded)

		assertCardUntouched(t, repo.cards["GC-A"], "100")
		assertCardUntouched(t, repo.cards["GC-B"], "10")
		assert.Empty(t, repo.txs[from.ID])
		assert.Empty(t, repo.txs[to.ID])
	})

	t.Run("transfer to itself", func(t *testing.T) {
		_, svc, _, _ := setup()

		_, err := svc.Transfer(context.Background(), &models.TransferRequest{
			FromCode: "GC-A",
			ToCode:   "GC-A",
			Amount:   d("10"),
		})
		require.ErrorIs(t, err, ErrTransferToSelf)
	})
}

func TestRefund(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

	setup := func() (*mockRepo, *Service, *domain.Giftcard) {
		repo := newMockRepo()
		card := seedCard(repo, "GC-1", "100")
		card.Refund = domain.RefundRules{
			AllowRefund:         true,
			RefundFeePercentage: dp("10"),
			RefundDeadlineDays:  ip(30),
		}
		return repo, newTestService(repo, now), card
	}

	t.Run("refund burns leftover and records the fee", func(t *testing.T) {
		repo, svc, card := setup()

		resp, err := svc.Refund(context.Background(), &models.RefundRequest{
			Code:   "GC-1",
			Amount: d("50"),
		})
		require.NoError(t, err)

		// Баланс не меняется, остаток уменьшается на полную сумму
		assert.True(t, resp.Balance.Equal(d("100")))
		assert.True(t, resp.Spent.Equal(d("50")))
		assert.True(t, resp.Leftover.Equal(d("50")))

		txs := repo.txs[card.ID]
		require.Len(t, txs, 1)
		assert.Equal(t, domain.TxRefund, txs[0].Type)
		assert.True(t, txs[0].Fee.Equal(d("5")))
	})

	t.Run("refund after the deadline", func(t *testing.T) {
		repo := newMockRepo()
		card := seedCard(repo, "GC-1", "100")
		card.Refund = domain.RefundRules{
			AllowRefund:        true,
			RefundDeadlineDays: ip(5),
		}
		// Карта создана 1 сентября, сейчас 15-е
		svc := newTestService(repo, now)

		_, err := svc.Refund(context.Background(), &models.RefundRequest{
			Code:   "GC-1",
			Amount: d("10"),
		})
		require.ErrorIs(t, err, ErrRefundDeadlinePassed)
	})

	t.Run("refunds disabled by rules", func(t *testing.T) {
		_, svc, card := setup()
		card.Refund.AllowRefund = false

		_, err := svc.Refund(context.Background(), &models.RefundRequest{
			Code:   "GC-1",
			Amount: d("10"),
		})
		require.ErrorIs(t, err, ErrRefundNotAllowed)
	})

	t.Run("refund above leftover", func(t *testing.T) {
		_, svc, _ := setup()

		_, err := svc.Refund(context.Background(), &models.RefundRequest{
			Code:   "GC-1",
			Amount: d("150"),
		})
		require.ErrorIs(t, err, ErrInsufficientBalance)
	})
}

func TestRecordSpend(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

	t.Run("spend updates cache and usage counters", func(t *testing.T) {
		repo := newMockRepo()
		card := seedCard(repo, "GC-1", "100")
		svc := newTestService(repo, now)

		err := svc.RecordSpend(context.Background(), card, d("30"), 77)
		require.NoError(t, err)

		assert.True(t, card.Spent.Equal(d("30")))
		assert.True(t, card.Leftover.Equal(d("70")))
		assert.Equal(t, int64(1), card.TimesUsed)
		assert.True(t, card.DailyUsage.Equal(d("30")))
		assert.True(t, card.MonthlyUsage.Equal(d("30")))
		require.NotNil(t, card.LastUsageDate)
		assert.Equal(t, now, *card.LastUsageDate)

		txs := repo.txs[card.ID]
		require.Len(t, txs, 1)
		assert.Equal(t, domain.TxSpend, txs[0].Type)
		require.NotNil(t, txs[0].BookingID)
		assert.Equal(t, int64(77), *txs[0].BookingID)
	})

	t.Run("daily counter resets across days", func(t *testing.T) {
		repo := newMockRepo()
		card := seedCard(repo, "GC-1", "100")
		yesterday := now.AddDate(0, 0, -1)
		card.DailyUsage = d("40")
		card.MonthlyUsage = d("40")
		card.LastUsageDate = &yesterday
		svc := newTestService(repo, now)

		err := svc.RecordSpend(context.Background(), card, d("10"), 78)
		require.NoError(t, err)

		// Дневной счетчик обнулился, месячный продолжил расти
		assert.True(t, card.DailyUsage.Equal(d("10")))
		assert.True(t, card.MonthlyUsage.Equal(d("50")))
	})

	t.Run("spend above leftover", func(t *testing.T) {
		repo := newMockRepo()
		card := seedCard(repo, "GC-1", "20")
		svc := newTestService(repo, now)

		err := svc.RecordSpend(context.Background(), card, d("30"), 79)
		require.ErrorIs(t, err, ErrInsufficientBalance)
	})

	t.Run("broken cache refuses the append", func(t *testing.T) {
		repo := newMockRepo()
		card := seedCard(repo, "GC-1", "100")
		// Кэш рассогласован: потрачено больше, чем есть на балансе
		card.Spent = d("150")
		card.Leftover = d("-50")
		svc := newTestService(repo, now)

		_, err := svc.Recharge(context.Background(), &models.RechargeRequest{
			Code:   "GC-1",
			Amount: d("40"),
		})
		require.ErrorIs(t, err, ErrLedgerCorrupted)
	})
}

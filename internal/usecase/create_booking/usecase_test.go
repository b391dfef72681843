package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisnails1212/salon-booking-engine/internal/domain"
	couponRepo "github.com/chrisnails1212/salon-booking-engine/internal/infra/storage/coupon"
	giftcardRepo "github.com/chrisnails1212/salon-booking-engine/internal/infra/storage/giftcard"
	"github.com/chrisnails1212/salon-booking-engine/internal/service/pricing"
	"github.com/chrisnails1212/salon-booking-engine/internal/service/promotions"
	"github.com/chrisnails1212/salon-booking-engine/pkg/types"
)

type mockBookingRepo struct {
	existing []*domain.Booking
	created  []*domain.Booking
	nextID   int64
}

func (m *mockBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	m.nextID++
	copied := *booking
	copied.ID = m.nextID
	m.created = append(m.created, &copied)
	return &copied, nil
}

func (m *mockBookingRepo) GetByStaffWithFilter(_ context.Context, filter domain.StaffBookingsFilter) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range m.existing {
		if b.StaffID == filter.StaffID {
			result = append(result, b)
		}
	}
	return result, nil
}

type mockCouponRepo struct {
	coupons      map[string]*domain.Coupon
	incremented  []int64
	incrementErr error
}

func (m *mockCouponRepo) GetByCode(_ context.Context, code string) (*domain.Coupon, error) {
	coupon, ok := m.coupons[code]
	if !ok {
		return nil, couponRepo.ErrCouponNotFound
	}
	copied := *coupon
	return &copied, nil
}

func (m *mockCouponRepo) IncrementUsage(_ context.Context, id int64) error {
	if m.incrementErr != nil {
		return m.incrementErr
	}
	m.incremented = append(m.incremented, id)
	return nil
}

type mockGiftcardRepo struct {
	cards map[string]*domain.Giftcard
}

func (m *mockGiftcardRepo) GetByCode(_ context.Context, code string) (*domain.Giftcard, error) {
	card, ok := m.cards[code]
	if !ok {
		return nil, giftcardRepo.ErrGiftcardNotFound
	}
	copied := *card
	return &copied, nil
}

type mockTaxRepo struct {
	taxes []domain.Tax
}

func (m *mockTaxRepo) ListEnabled(context.Context) ([]domain.Tax, error) {
	return m.taxes, nil
}

type mockStaffClient struct {
	schedule *domain.ScheduleModel
	err      error
}

func (m *mockStaffClient) GetSchedule(context.Context, int64) (*domain.ScheduleModel, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.schedule, nil
}

type mockCatalogClient struct {
	service *domain.Service
	err     error
}

func (m *mockCatalogClient) GetService(context.Context, int64) (*domain.Service, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.service, nil
}

type spendRecord struct {
	giftcardID int64
	amount     decimal.Decimal
	bookingID  int64
}

type mockLedger struct {
	spends []spendRecord
	err    error
}

func (m *mockLedger) RecordSpend(_ context.Context, card *domain.Giftcard, amount decimal.Decimal, bookingID int64) error {
	if m.err != nil {
		return m.err
	}
	m.spends = append(m.spends, spendRecord{giftcardID: card.ID, amount: amount, bookingID: bookingID})
	return nil
}

type recordingTxManager struct {
	serializableRuns int
}

func (m *recordingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.serializableRuns++
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// fixture собирает use case с моками и чистыми движками цены и промо
type fixture struct {
	bookingRepo   *mockBookingRepo
	couponRepo    *mockCouponRepo
	giftcardRepo  *mockGiftcardRepo
	taxRepo       *mockTaxRepo
	staffClient   *mockStaffClient
	catalogClient *mockCatalogClient
	ledger        *mockLedger
	txManager     *recordingTxManager
	uc            *UseCase
}

// По умолчанию: услуга id=10 за 100.00 на 60 минут у сотрудника id=3,
// среда 09:00-18:00 с перерывом 13:00-14:00, сетка 30 минут
func newFixture(now time.Time) *fixture {
	f := &fixture{
		bookingRepo: &mockBookingRepo{nextID: 500},
		couponRepo:  &mockCouponRepo{coupons: map[string]*domain.Coupon{}},
		giftcardRepo: &mockGiftcardRepo{
			cards: map[string]*domain.Giftcard{},
		},
		taxRepo: &mockTaxRepo{},
		staffClient: &mockStaffClient{
			schedule: &domain.ScheduleModel{
				StaffID: 3,
				Weekly: map[time.Weekday]domain.WorkingWindow{
					time.Wednesday: {Start: "09:00", End: "18:00", IsWorking: true},
				},
				Breaks: []domain.BreakWindow{
					{Start: "13:00", End: "14:00", Label: "lunch"},
				},
			},
		},
		catalogClient: &mockCatalogClient{
			service: &domain.Service{
				ID:                  10,
				Name:                "Haircut",
				BasePrice:           decimal.RequireFromString("100.00"),
				BaseDurationMinutes: 60,
				StaffIDs:            []int64{3},
			},
		},
		ledger:    &mockLedger{},
		txManager: &recordingTxManager{},
	}

	f.uc = NewUseCase(
		f.bookingRepo,
		f.couponRepo,
		f.giftcardRepo,
		f.taxRepo,
		f.staffClient,
		f.catalogClient,
		pricing.NewService(),
		promotions.NewService(),
		f.ledger,
		f.txManager,
		nopLogger{},
		30,
		30,
	)
	f.uc.timeProvider = &fixedTime{now: now}
	return f
}

func validRequest() *Request {
	// 2026-09-16 - среда
	return &Request{
		UserID:    42,
		ServiceID: 10,
		StaffID:   3,
		Date:      time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("10:00"),
	}
}

func TestCreateBooking_Success(t *testing.T) {
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	f := newFixture(now)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(501), resp.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.True(t, resp.Subtotal.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, resp.TotalPrice.Equal(decimal.RequireFromString("100.00")))

	require.Len(t, f.bookingRepo.created, 1)
	created := f.bookingRepo.created[0]
	assert.Equal(t, int64(42), created.UserID)
	assert.Equal(t, types.TimeString("10:00"), created.StartTime)
	assert.Equal(t, domain.StatusConfirmed, created.Status)

	assert.Equal(t, 1, f.txManager.serializableRuns)
	assert.Empty(t, f.ledger.spends)
	assert.Empty(t, f.couponRepo.incremented)
}

func TestCreateBooking_SuccessWithCouponAndGiftcard(t *testing.T) {
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	f := newFixture(now)

	f.couponRepo.coupons["SAVE10"] = &domain.Coupon{
		ID:               7,
		Code:             "SAVE10",
		DiscountType:     domain.DiscountPercentage,
		DiscountValue:    decimal.NewFromInt(10),
		AllowCombination: true,
		Status:           domain.CouponActive,
	}
	f.giftcardRepo.cards["GC-50"] = &domain.Giftcard{
		ID:       21,
		Code:     "GC-50",
		Balance:  decimal.NewFromInt(50),
		Spent:    decimal.Zero,
		Leftover: decimal.NewFromInt(50),
		IsActive: true,
		PartialUsage: domain.PartialUsageRules{
			AllowPartialUse: true,
		},
	}

	req := validRequest()
	couponCode := "SAVE10"
	req.CouponCode = &couponCode
	req.GiftcardCodes = []string{"GC-50"}

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// 100 - 10% купон = 90, карта покрывает 50, к оплате 40
	assert.True(t, resp.DiscountApplied.Equal(decimal.RequireFromString("10.00")), "discount = %s", resp.DiscountApplied)
	assert.True(t, resp.GiftcardApplied.Equal(decimal.RequireFromString("50.00")), "giftcard = %s", resp.GiftcardApplied)
	assert.True(t, resp.TotalPrice.Equal(decimal.RequireFromString("40.00")), "total = %s", resp.TotalPrice)

	// Использование купона зафиксировано внутри транзакции
	assert.Equal(t, []int64{7}, f.couponRepo.incremented)

	// Списание с карты записано в журнал с привязкой к бронированию
	require.Len(t, f.ledger.spends, 1)
	assert.Equal(t, int64(21), f.ledger.spends[0].giftcardID)
	assert.True(t, f.ledger.spends[0].amount.Equal(decimal.RequireFromString("50.00")))
	assert.Equal(t, resp.ID, f.ledger.spends[0].bookingID)
}

func TestCreateBooking_SlotConflictAtCommit(t *testing.T) {
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	f := newFixture(now)

	// Конкурент успел занять пересекающийся слот до фиксации
	f.bookingRepo.existing = []*domain.Booking{
		{
			ID:              77,
			StaffID:         3,
			BookingDate:     time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC),
			StartTime:       types.TimeString("10:00"),
			DurationMinutes: 60,
			Status:          domain.StatusConfirmed,
		},
	}

	req := validRequest()
	req.StartTime = types.TimeString("10:30")

	resp, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, resp)

	assert.Empty(t, f.bookingRepo.created)
	assert.Empty(t, f.ledger.spends)
}

func TestCreateBooking_AbuttingBookingDoesNotConflict(t *testing.T) {
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	f := newFixture(now)

	f.bookingRepo.existing = []*domain.Booking{
		{
			ID:              77,
			StaffID:         3,
			BookingDate:     time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC),
			StartTime:       types.TimeString("09:00"),
			DurationMinutes: 60,
			Status:          domain.StatusConfirmed,
		},
	}

	// Визит начинается ровно в момент окончания предыдущего
	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestCreateBooking_CouponStaleAtCommit(t *testing.T) {
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		coupon  *domain.Coupon
		wantErr error
	}{
		{
			name: "coupon deactivated after the quote",
			coupon: &domain.Coupon{
				ID:            7,
				Code:          "SAVE10",
				DiscountType:  domain.DiscountPercentage,
				DiscountValue: decimal.NewFromInt(10),
				Status:        domain.CouponInactive,
			},
			wantErr: ErrPromotionNoLongerEligible,
		},
		{
			name:    "coupon deleted after the quote",
			coupon:  nil,
			wantErr: ErrCouponNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(now)
			if tt.coupon != nil {
				f.couponRepo.coupons[tt.coupon.Code] = tt.coupon
			}

			req := validRequest()
			couponCode := "SAVE10"
			req.CouponCode = &couponCode

			resp, err := f.uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, resp)
			assert.Empty(t, f.bookingRepo.created)
			assert.Empty(t, f.couponRepo.incremented)
		})
	}
}

func TestCreateBooking_UsageLimitRaceAtCommit(t *testing.T) {
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	f := newFixture(now)

	f.couponRepo.coupons["SAVE10"] = &domain.Coupon{
		ID:            7,
		Code:          "SAVE10",
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: decimal.NewFromInt(10),
		Status:        domain.CouponActive,
	}
	// Лимит исчерпан между валидацией и инкрементом
	f.couponRepo.incrementErr = couponRepo.ErrUsageLimitReached

	req := validRequest()
	couponCode := "SAVE10"
	req.CouponCode = &couponCode

	resp, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrPromotionNoLongerEligible)
	assert.Nil(t, resp)
}

func TestCreateBooking_GiftcardStaleAtCommit(t *testing.T) {
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	f := newFixture(now)

	f.giftcardRepo.cards["GC-50"] = &domain.Giftcard{
		ID:       21,
		Code:     "GC-50",
		Balance:  decimal.NewFromInt(50),
		Spent:    decimal.NewFromInt(50),
		Leftover: decimal.Zero, // опустошена конкурентом
		IsActive: true,
	}

	req := validRequest()
	req.GiftcardCodes = []string{"GC-50"}

	resp, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrPromotionNoLongerEligible)
	assert.Nil(t, resp)
	assert.Empty(t, f.ledger.spends)
}

func TestCreateBooking_StartTimeValidation(t *testing.T) {
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		startTime types.TimeString
	}{
		{"not aligned to the slot grid", "10:15"},
		{"before the working window", "08:30"},
		{"does not fit the working window", "17:30"},
		{"overlaps the lunch break", "12:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(now)

			req := validRequest()
			req.StartTime = tt.startTime

			resp, err := f.uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidStartTime)
			assert.Nil(t, resp)
			assert.Zero(t, f.txManager.serializableRuns, "must fail before the transaction")
		})
	}
}

func TestCreateBooking_PastStartTimeToday(t *testing.T) {
	// Сегодня среда, рабочий день; запрошенное время уже прошло
	now := time.Date(2026, 9, 16, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrInvalidStartTime)
	assert.Nil(t, resp)
}

func TestCreateBooking_StaffNotWorking(t *testing.T) {
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	t.Run("weekday is off", func(t *testing.T) {
		f := newFixture(now)

		req := validRequest()
		req.Date = time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC) // воскресенье

		resp, err := f.uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrStaffNotWorking)
		assert.Nil(t, resp)
	})

	t.Run("holiday overrides the weekly pattern", func(t *testing.T) {
		f := newFixture(now)
		f.staffClient.schedule.Holidays = []domain.Holiday{
			{Date: time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC), Label: "day off"},
		}

		resp, err := f.uc.Execute(context.Background(), validRequest())
		require.ErrorIs(t, err, ErrStaffNotWorking)
		assert.Nil(t, resp)
	})
}

func TestCreateBooking_DateValidation(t *testing.T) {
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	t.Run("date in the past", func(t *testing.T) {
		f := newFixture(now)

		req := validRequest()
		req.Date = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

		_, err := f.uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("date beyond the booking horizon", func(t *testing.T) {
		f := newFixture(now)

		req := validRequest()
		req.Date = time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

		_, err := f.uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrDateTooFarInFuture)
	})
}

func TestCreateBooking_StaffDoesNotPerformService(t *testing.T) {
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	f := newFixture(now)

	req := validRequest()
	req.StaffID = 4 // услугу оказывает только сотрудник 3

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrStaffDoesNotPerformService)
}

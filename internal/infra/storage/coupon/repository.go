package coupon

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/chrisnails1212/salon-booking-engine/internal/domain"
	"github.com/chrisnails1212/salon-booking-engine/pkg/dbmetrics"
	"github.com/chrisnails1212/salon-booking-engine/pkg/psqlbuilder"
)

var couponColumns = []string{
	"id",
	"code",
	"discount_type",
	"discount_value",
	"valid_from",
	"valid_to",
	"usage_limit",
	"times_used",
	"minimum_purchase",
	"maximum_discount",
	"allow_combination",
	"service_filter",
	"staff_filter",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с купонами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория купонов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByCode получает купон по его коду
// Внутри транзакции строка блокируется FOR UPDATE: счетчик использований
// проверяется и увеличивается в одной транзакции с созданием бронирования
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(couponColumns...).
		From("coupons").
		Where(squirrel.Eq{"code": code})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	coupon, err := scanCoupon(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - scan coupon: %v", ErrScanRow, err)
	}

	return coupon, nil
}

// IncrementUsage увеличивает счетчик использований купона
// Условие times_used < usage_limit в самом запросе защищает от превышения
// лимита при конкурентных коммитах
func (r *Repository) IncrementUsage(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("coupons").
		Set("times_used", squirrel.Expr("times_used + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Or{
			squirrel.Eq{"usage_limit": nil},
			squirrel.Expr("times_used < usage_limit"),
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrUsageLimitReached
	}

	return nil
}

// scanCoupon сканирует одну строку в модель купона
func scanCoupon(scan func(dest ...interface{}) error) (*domain.Coupon, error) {
	var coupon domain.Coupon
	var serviceFilter, staffFilter pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&coupon.ID,
		&coupon.Code,
		&coupon.DiscountType,
		&coupon.DiscountValue,
		&coupon.ValidFrom,
		&coupon.ValidTo,
		&coupon.UsageLimit,
		&coupon.TimesUsed,
		&coupon.MinimumPurchase,
		&coupon.MaximumDiscount,
		&coupon.AllowCombination,
		&serviceFilter,
		&staffFilter,
		&coupon.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	coupon.ServiceFilter = serviceFilter
	coupon.StaffFilter = staffFilter
	coupon.CreatedAt = createdAt.Time
	coupon.UpdatedAt = updatedAt.Time

	return &coupon, nil
}

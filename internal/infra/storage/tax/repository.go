package tax

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/chrisnails1212/salon-booking-engine/internal/domain"
	"github.com/chrisnails1212/salon-booking-engine/pkg/dbmetrics"
	"github.com/chrisnails1212/salon-booking-engine/pkg/psqlbuilder"
)

var taxColumns = []string{
	"id",
	"name",
	"rate_percent",
	"minimum_amount",
	"maximum_amount",
	"incorporate_into_price",
	"apply_to_discounted_price",
	"location_filter",
	"service_filter",
	"enabled",
	"created_at",
	"updated_at",
}

// Repository репозиторий для чтения настроенных налоговых правил
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория налогов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListEnabled возвращает все включенные налоговые правила
// Фильтрация по услуге и локации выполняется на уровне расчета цены
func (r *Repository) ListEnabled(ctx context.Context) ([]domain.Tax, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(taxColumns...).
		From("taxes").
		Where(squirrel.Eq{"enabled": true}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListEnabled - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListEnabled - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	taxes := make([]domain.Tax, 0)
	for rows.Next() {
		var t domain.Tax
		var locationFilter, serviceFilter pq.Int64Array
		var minAmount, maxAmount decimal.NullDecimal
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&t.ID,
			&t.Name,
			&t.RatePercent,
			&minAmount,
			&maxAmount,
			&t.IncorporateIntoPrice,
			&t.ApplyToDiscountedPrice,
			&locationFilter,
			&serviceFilter,
			&t.Enabled,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListEnabled - scan tax: %v", ErrScanRow, err)
		}

		if minAmount.Valid {
			v := minAmount.Decimal
			t.MinimumAmount = &v
		}
		if maxAmount.Valid {
			v := maxAmount.Decimal
			t.MaximumAmount = &v
		}
		t.LocationFilter = locationFilter
		t.ServiceFilter = serviceFilter
		t.CreatedAt = createdAt.Time
		t.UpdatedAt = updatedAt.Time

		taxes = append(taxes, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListEnabled - rows error: %v", ErrScanRow, err)
	}

	return taxes, nil
}

package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/importdesk/backend/internal/domain/sales"
	"github.com/importdesk/backend/internal/domain/shared"
	"github.com/importdesk/backend/internal/infrastructure/persistence/models"
)

// GormSaleRepository implements sales.Repository using GORM. Sales load
// and save whole: items, payments and returns travel with the root.
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

func (r *GormSaleRepository) preload(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		Preload("Returns").
		Preload("Returns.Items")
}

// FindByID finds a sale by ID with all children loaded
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	var model models.SaleModel
	if err := r.preload(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a sale by its document number
func (r *GormSaleRepository) FindByNumber(ctx context.Context, number string) (*sales.Sale, error) {
	var model models.SaleModel
	if err := r.preload(ctx).Where("number = ?", number).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds sales matching the filter
func (r *GormSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Sale, error) {
	return r.findWhere(ctx, filter, nil)
}

// FindByClient finds sales for a client
func (r *GormSaleRepository) FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]sales.Sale, error) {
	return r.findWhere(ctx, filter, func(q *gorm.DB) *gorm.DB {
		return q.Where("client_id = ?", clientID)
	})
}

// FindByPeriod finds sales booked in a financial period
func (r *GormSaleRepository) FindByPeriod(ctx context.Context, periodID uuid.UUID, filter shared.Filter) ([]sales.Sale, error) {
	return r.findWhere(ctx, filter, func(q *gorm.DB) *gorm.DB {
		return q.Where("period_id = ?", periodID)
	})
}

// FindByStatus finds sales in the given settlement status
func (r *GormSaleRepository) FindByStatus(ctx context.Context, status sales.SaleStatus, filter shared.Filter) ([]sales.Sale, error) {
	return r.findWhere(ctx, filter, func(q *gorm.DB) *gorm.DB {
		return q.Where("status = ?", status)
	})
}

func (r *GormSaleRepository) findWhere(ctx context.Context, filter shared.Filter, scope func(*gorm.DB) *gorm.DB) ([]sales.Sale, error) {
	var saleModels []models.SaleModel
	query := r.preload(ctx).Model(&models.SaleModel{})
	if scope != nil {
		query = scope(query)
	}
	query = r.applyFilter(query, filter)

	if err := query.Find(&saleModels).Error; err != nil {
		return nil, err
	}

	result := make([]sales.Sale, len(saleModels))
	for i, model := range saleModels {
		result[i] = *model.ToDomain()
	}
	return result, nil
}

// Save creates or updates a sale and its children
func (r *GormSaleRepository) Save(ctx context.Context, s *sales.Sale) error {
	model := models.SaleModelFromDomain(s)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items", "Payments", "Returns").Save(model).Error; err != nil {
			return err
		}
		return r.saveChildren(tx, model)
	})
}

// SaveWithLock saves a sale with optimistic locking. The version is
// advanced here because the aggregate's mutations do not bump it.
func (r *GormSaleRepository) SaveWithLock(ctx context.Context, s *sales.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		currentVersion := s.Version
		s.Version++
		s.UpdatedAt = time.Now()
		model := models.SaleModelFromDomain(s)

		result := tx.Model(&models.SaleModel{}).
			Where("id = ? AND version = ?", s.ID, currentVersion).
			Updates(map[string]interface{}{
				"status":             model.Status,
				"due_date":           model.DueDate,
				"total_amount_usd":   model.TotalAmountUSD,
				"paid_amount_usd":    model.PaidAmountUSD,
				"debt_amount_usd":    model.DebtAmountUSD,
				"original_total_usd": model.OriginalTotalUSD,
				"fully_returned":     model.FullyReturned,
				"version":            model.Version,
				"updated_at":         model.UpdatedAt,
			})
		if result.Error != nil {
			s.Version = currentVersion
			return result.Error
		}
		if result.RowsAffected == 0 {
			s.Version = currentVersion
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The sale has been modified by another transaction")
		}

		return r.saveChildren(tx, model)
	})
}

// saveChildren upserts the sale's child rows. Items update in place as
// returned quantities accumulate; payments, returns and return items
// are append-only.
func (r *GormSaleRepository) saveChildren(tx *gorm.DB, model *models.SaleModel) error {
	for i := range model.Items {
		if err := tx.Save(&model.Items[i]).Error; err != nil {
			return err
		}
	}
	for i := range model.Payments {
		if err := tx.Save(&model.Payments[i]).Error; err != nil {
			return err
		}
	}
	for i := range model.Returns {
		ret := &model.Returns[i]
		if err := tx.Omit("Items").Save(ret).Error; err != nil {
			return err
		}
		for j := range ret.Items {
			if err := tx.Save(&ret.Items[j]).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// Count counts sales matching the filter
func (r *GormSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.SaleModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountWithDebt counts sales in the period with a positive debt
// balance, used by the period closure checklist
func (r *GormSaleRepository) CountWithDebt(ctx context.Context, periodID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Where("period_id = ? AND debt_amount_usd > 0", periodID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountOutstanding counts sales in the period in DEBT or PARTIALLY_PAID
// status, used by the period closure checklist
func (r *GormSaleRepository) CountOutstanding(ctx context.Context, periodID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Where("period_id = ? AND status IN ?", periodID,
			[]sales.SaleStatus{sales.SaleStatusDebt, sales.SaleStatusPartiallyPaid}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormSaleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, SaleSortFields, "")
		if sortField != "" {
			query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))
		} else {
			query = query.Order("sold_at DESC")
		}
	} else {
		query = query.Order("sold_at DESC")
	}

	return query
}

func (r *GormSaleRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("number ILIKE ? OR client_name ILIKE ?", searchPattern, searchPattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "mode":
			query = query.Where("mode = ?", value)
		case "period_id":
			query = query.Where("period_id = ?", value)
		}
	}
	return query
}

// Ensure GormSaleRepository implements sales.Repository
var _ sales.Repository = (*GormSaleRepository)(nil)

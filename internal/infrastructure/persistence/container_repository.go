package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/importdesk/backend/internal/domain/container"
	"github.com/importdesk/backend/internal/domain/shared"
	"github.com/importdesk/backend/internal/infrastructure/persistence/models"
)

// GormContainerRepository implements container.Repository using GORM.
// The aggregate persists whole: items, expenses with corrections,
// investments and payouts are replaced alongside the root.
type GormContainerRepository struct {
	db *gorm.DB
}

// NewGormContainerRepository creates a new GormContainerRepository
func NewGormContainerRepository(db *gorm.DB) *GormContainerRepository {
	return &GormContainerRepository{db: db}
}

func (r *GormContainerRepository) preload(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items").
		Preload("Expenses").
		Preload("Expenses.Corrections").
		Preload("Investments").
		Preload("Payouts")
}

// FindByID finds a container by ID with all children loaded
func (r *GormContainerRepository) FindByID(ctx context.Context, id uuid.UUID) (*container.Container, error) {
	var model models.ContainerModel
	if err := r.preload(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a container by its business number
func (r *GormContainerRepository) FindByNumber(ctx context.Context, number string) (*container.Container, error) {
	var model models.ContainerModel
	if err := r.preload(ctx).Where("number = ?", number).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds containers matching the filter
func (r *GormContainerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]container.Container, error) {
	var containerModels []models.ContainerModel
	query := r.applyFilter(r.preload(ctx).Model(&models.ContainerModel{}), filter)

	if err := query.Find(&containerModels).Error; err != nil {
		return nil, err
	}

	containers := make([]container.Container, len(containerModels))
	for i, model := range containerModels {
		containers[i] = *model.ToDomain()
	}
	return containers, nil
}

// FindByStatus finds containers in the given status
func (r *GormContainerRepository) FindByStatus(ctx context.Context, status container.ContainerStatus, filter shared.Filter) ([]container.Container, error) {
	var containerModels []models.ContainerModel
	query := r.applyFilter(r.preload(ctx).Model(&models.ContainerModel{}).Where("status = ?", status), filter)

	if err := query.Find(&containerModels).Error; err != nil {
		return nil, err
	}

	containers := make([]container.Container, len(containerModels))
	for i, model := range containerModels {
		containers[i] = *model.ToDomain()
	}
	return containers, nil
}

// FindByProduct finds non-closed containers holding live stock of the
// product, oldest arrival first. Containers still in transit sort last.
func (r *GormContainerRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]container.Container, error) {
	var containerModels []models.ContainerModel
	if err := r.preload(ctx).
		Where("status <> ?", container.ContainerStatusClosed).
		Where("id IN (?)", r.db.
			Model(&models.ContainerItemModel{}).
			Select("container_id").
			Where("product_id = ? AND quantity > 0", productID)).
		Order("arrived_at ASC NULLS LAST, created_at ASC").
		Find(&containerModels).Error; err != nil {
		return nil, err
	}

	containers := make([]container.Container, len(containerModels))
	for i, model := range containerModels {
		containers[i] = *model.ToDomain()
	}
	return containers, nil
}

// Save creates or updates a container and its children
func (r *GormContainerRepository) Save(ctx context.Context, c *container.Container) error {
	model := models.ContainerModelFromDomain(c)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items", "Expenses", "Investments", "Payouts").Save(model).Error; err != nil {
			return err
		}
		return r.saveChildren(tx, model)
	})
}

// SaveWithLock saves a container with optimistic locking. The version
// is advanced here because the aggregate's mutations do not bump it.
func (r *GormContainerRepository) SaveWithLock(ctx context.Context, c *container.Container) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		currentVersion := c.Version
		c.Version++
		c.UpdatedAt = time.Now()
		model := models.ContainerModelFromDomain(c)

		result := tx.Model(&models.ContainerModel{}).
			Where("id = ? AND version = ?", c.ID, currentVersion).
			Updates(map[string]interface{}{
				"number":             model.Number,
				"status":             model.Status,
				"total_purchase_cny": model.TotalPurchaseCNY,
				"exchange_rate":      model.ExchangeRate,
				"total_purchase_usd": model.TotalPurchaseUSD,
				"total_expenses_usd": model.TotalExpensesUSD,
				"net_profit_usd":     model.NetProfitUSD,
				"arrived_at":         model.ArrivedAt,
				"closed_at":          model.ClosedAt,
				"version":            model.Version,
				"updated_at":         model.UpdatedAt,
			})
		if result.Error != nil {
			c.Version = currentVersion
			return result.Error
		}
		if result.RowsAffected == 0 {
			c.Version = currentVersion
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The container has been modified by another transaction")
		}

		return r.saveChildren(tx, model)
	})
}

// saveChildren replaces the child rows with the aggregate's current
// state. Rows removed from the aggregate are deleted; the rest upsert.
func (r *GormContainerRepository) saveChildren(tx *gorm.DB, model *models.ContainerModel) error {
	itemIDs := make([]uuid.UUID, len(model.Items))
	for i := range model.Items {
		itemIDs[i] = model.Items[i].ID
	}
	if err := deleteStale(tx, &models.ContainerItemModel{}, "container_id", model.ID, itemIDs); err != nil {
		return err
	}
	for i := range model.Items {
		if err := tx.Save(&model.Items[i]).Error; err != nil {
			return err
		}
	}

	expenseIDs := make([]uuid.UUID, len(model.Expenses))
	for i := range model.Expenses {
		expenseIDs[i] = model.Expenses[i].ID
	}
	if err := deleteStale(tx, &models.ContainerExpenseModel{}, "container_id", model.ID, expenseIDs); err != nil {
		return err
	}
	for i := range model.Expenses {
		exp := &model.Expenses[i]
		if err := tx.Omit("Corrections").Save(exp).Error; err != nil {
			return err
		}
		corrIDs := make([]uuid.UUID, len(exp.Corrections))
		for j := range exp.Corrections {
			corrIDs[j] = exp.Corrections[j].ID
		}
		if err := deleteStale(tx, &models.ExpenseCorrectionModel{}, "expense_id", exp.ID, corrIDs); err != nil {
			return err
		}
		for j := range exp.Corrections {
			if err := tx.Save(&exp.Corrections[j]).Error; err != nil {
				return err
			}
		}
	}

	investmentIDs := make([]uuid.UUID, len(model.Investments))
	for i := range model.Investments {
		investmentIDs[i] = model.Investments[i].ID
	}
	if err := deleteStale(tx, &models.ContainerInvestmentModel{}, "container_id", model.ID, investmentIDs); err != nil {
		return err
	}
	for i := range model.Investments {
		if err := tx.Save(&model.Investments[i]).Error; err != nil {
			return err
		}
	}

	// Payouts are append-only; existing rows never change or disappear.
	for i := range model.Payouts {
		if err := tx.Save(&model.Payouts[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// Count counts containers matching the filter
func (r *GormContainerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ContainerModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountNegativeProfit counts non-closed containers with a negative net
// profit among those with expense or sale activity in the period, used
// by the period closure checklist
func (r *GormContainerRepository) CountNegativeProfit(ctx context.Context, periodID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ContainerModel{}).
		Where("status <> ? AND net_profit_usd < 0", container.ContainerStatusClosed).
		Where(`id IN (SELECT container_id FROM container_expenses WHERE period_id = ?)
			OR id IN (SELECT si.container_id FROM sale_items si JOIN sales s ON s.id = si.sale_id WHERE s.period_id = ?)`,
			periodID, periodID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountUnconfirmedCorrections counts expense corrections awaiting
// review that were booked into the period, used by the period closure
// checklist
func (r *GormContainerRepository) CountUnconfirmedCorrections(ctx context.Context, periodID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ExpenseCorrectionModel{}).
		Where("confirmed = ? AND period_id = ?", false, periodID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormContainerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, ContainerSortFields, "")
		if sortField != "" {
			query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))
		} else {
			query = query.Order("created_at DESC")
		}
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

func (r *GormContainerRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("number ILIKE ?", "%"+filter.Search+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		}
	}
	return query
}

// deleteStale removes child rows of the parent that are no longer part
// of the aggregate.
func deleteStale(tx *gorm.DB, model interface{}, parentColumn string, parentID uuid.UUID, keep []uuid.UUID) error {
	query := tx.Where(parentColumn+" = ?", parentID)
	if len(keep) > 0 {
		query = query.Where("id NOT IN ?", keep)
	}
	return query.Delete(model).Error
}

// Ensure GormContainerRepository implements container.Repository
var _ container.Repository = (*GormContainerRepository)(nil)

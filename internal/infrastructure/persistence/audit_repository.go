package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/importdesk/backend/internal/domain/shared"
	"github.com/importdesk/backend/internal/infrastructure/persistence/models"
)

// GormAuditRepository implements shared.AuditRecorder and
// shared.AuditReader using GORM. Entries are append-only; there is no
// update or delete path.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GormAuditRepository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Record appends an audit entry. When the repository is bound to a
// transaction the insert joins it, so entries never outlive a rolled
// back mutation.
func (r *GormAuditRepository) Record(ctx context.Context, entry *shared.AuditEntry) error {
	model, err := models.AuditEntryModelFromDomain(entry)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByEntity returns the trail for a single aggregate, newest first
func (r *GormAuditRepository) FindByEntity(ctx context.Context, entityType string, entityID uuid.UUID, filter shared.Filter) ([]shared.AuditEntry, error) {
	var entryModels []models.AuditEntryModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.AuditEntryModel{}).
			Where("entity_type = ? AND entity_id = ?", entityType, entityID),
		filter,
	)

	if err := query.Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return r.toDomain(entryModels)
}

// FindAll returns audit entries matching the filter, newest first
func (r *GormAuditRepository) FindAll(ctx context.Context, filter shared.Filter) ([]shared.AuditEntry, error) {
	var entryModels []models.AuditEntryModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.AuditEntryModel{}), filter)

	if err := query.Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return r.toDomain(entryModels)
}

func (r *GormAuditRepository) toDomain(entryModels []models.AuditEntryModel) ([]shared.AuditEntry, error) {
	entries := make([]shared.AuditEntry, len(entryModels))
	for i, model := range entryModels {
		entry, err := model.ToDomain()
		if err != nil {
			return nil, err
		}
		entries[i] = *entry
	}
	return entries, nil
}

func (r *GormAuditRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "action":
			query = query.Where("action = ?", value)
		case "actor_id":
			query = query.Where("actor_id = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, AuditSortFields, "")
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

// Ensure GormAuditRepository implements both audit interfaces
var (
	_ shared.AuditRecorder = (*GormAuditRepository)(nil)
	_ shared.AuditReader   = (*GormAuditRepository)(nil)
)

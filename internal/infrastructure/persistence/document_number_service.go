package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/importdesk/backend/internal/domain/shared"
	"github.com/importdesk/backend/internal/infrastructure/persistence/models"
)

// GormDocumentNumberService issues sequential document numbers backed by
// the document_sequences table. The sequence row is locked FOR UPDATE, so
// concurrent callers serialize per prefix and a number is consumed only
// when the surrounding transaction commits.
type GormDocumentNumberService struct {
	db *gorm.DB
}

// NewGormDocumentNumberService creates a new GormDocumentNumberService
func NewGormDocumentNumberService(db *gorm.DB) *GormDocumentNumberService {
	return &GormDocumentNumberService{db: db}
}

// NextDocumentNumber returns the next number for a prefix, formatted as
// "PREFIX-000042"
func (s *GormDocumentNumberService) NextDocumentNumber(ctx context.Context, prefix string) (string, error) {
	var value int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// seed the row on first use; conflicts are fine, the lock below
		// picks up whichever row won
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.DocumentSequenceModel{Prefix: prefix, NextValue: 1, UpdatedAt: time.Now()}).Error; err != nil {
			return err
		}

		var seq models.DocumentSequenceModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&seq, "prefix = ?", prefix).Error; err != nil {
			return err
		}

		value = seq.NextValue
		return tx.Model(&models.DocumentSequenceModel{}).
			Where("prefix = ?", prefix).
			Updates(map[string]interface{}{
				"next_value": seq.NextValue + 1,
				"updated_at": time.Now(),
			}).Error
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%06d", prefix, value), nil
}

// Ensure GormDocumentNumberService implements shared.DocumentNumberService
var _ shared.DocumentNumberService = (*GormDocumentNumberService)(nil)

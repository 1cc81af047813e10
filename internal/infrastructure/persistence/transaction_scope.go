package persistence

import (
	"context"

	"gorm.io/gorm"

	appshared "github.com/importdesk/backend/internal/application/shared"
	"github.com/importdesk/backend/internal/domain/container"
	"github.com/importdesk/backend/internal/domain/inventory"
	"github.com/importdesk/backend/internal/domain/partner"
	"github.com/importdesk/backend/internal/domain/period"
	"github.com/importdesk/backend/internal/domain/sales"
	"github.com/importdesk/backend/internal/domain/shared"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appshared.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Periods returns the financial period repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Periods() period.Repository {
	return NewGormPeriodRepository(r.tx)
}

// Containers returns the container repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Containers() container.Repository {
	return NewGormContainerRepository(r.tx)
}

// Clients returns the client repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Clients() partner.ClientRepository {
	return NewGormClientRepository(r.tx)
}

// Investors returns the investor repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Investors() partner.InvestorRepository {
	return NewGormInvestorRepository(r.tx)
}

// Sales returns the sale repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Sales() sales.Repository {
	return NewGormSaleRepository(r.tx)
}

// Counts returns the count session repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Counts() inventory.Repository {
	return NewGormCountSessionRepository(r.tx)
}

// Numbers returns the document number service scoped to the current transaction.
func (r *gormTransactionalRepositories) Numbers() shared.DocumentNumberService {
	return NewGormDocumentNumberService(r.tx)
}

// Audit returns the audit sink scoped to the current transaction.
func (r *gormTransactionalRepositories) Audit() shared.AuditRecorder {
	return NewGormAuditRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appshared.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appshared.TransactionalRepositories = (*gormTransactionalRepositories)(nil)

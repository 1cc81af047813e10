package shared

import (
	"context"

	"github.com/importdesk/backend/internal/domain/container"
	"github.com/importdesk/backend/internal/domain/inventory"
	"github.com/importdesk/backend/internal/domain/partner"
	"github.com/importdesk/backend/internal/domain/period"
	"github.com/importdesk/backend/internal/domain/sales"
	"github.com/importdesk/backend/internal/domain/shared"
)

// TransactionScope provides transactional access to the repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or
// roll back atomically. Every mutating use case runs inside exactly one
// Execute call; a mid-flight error leaves no partial writes.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to every repository within
// one transaction. All repositories returned share the same underlying
// database transaction.
//
// Aggregate boundary notes:
//   - Containers: items, expenses with corrections, investments and
//     payouts are children of the Container root and persist with it.
//   - Sales: items, payments and returns persist with the Sale root.
//   - Numbers and Audit join the same transaction, so document numbers
//     and audit rows cannot outlive a rolled back mutation.
type TransactionalRepositories interface {
	// Periods returns the financial period repository scoped to the current transaction
	Periods() period.Repository
	// Containers returns the container repository scoped to the current transaction
	Containers() container.Repository
	// Clients returns the client repository scoped to the current transaction
	Clients() partner.ClientRepository
	// Investors returns the investor repository scoped to the current transaction
	Investors() partner.InvestorRepository
	// Sales returns the sale repository scoped to the current transaction
	Sales() sales.Repository
	// Counts returns the count session repository scoped to the current transaction
	Counts() inventory.Repository
	// Numbers returns the document number service scoped to the current transaction
	Numbers() shared.DocumentNumberService
	// Audit returns the audit sink scoped to the current transaction
	Audit() shared.AuditRecorder
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for tests with in-memory or mock repositories.
type NoOpTransactionScope struct {
	PeriodRepo    period.Repository
	ContainerRepo container.Repository
	ClientRepo    partner.ClientRepository
	InvestorRepo  partner.InvestorRepository
	SaleRepo      sales.Repository
	CountRepo     inventory.Repository
	NumberService shared.DocumentNumberService
	AuditSink     shared.AuditRecorder
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Periods returns the financial period repository
func (s *NoOpTransactionScope) Periods() period.Repository { return s.PeriodRepo }

// Containers returns the container repository
func (s *NoOpTransactionScope) Containers() container.Repository { return s.ContainerRepo }

// Clients returns the client repository
func (s *NoOpTransactionScope) Clients() partner.ClientRepository { return s.ClientRepo }

// Investors returns the investor repository
func (s *NoOpTransactionScope) Investors() partner.InvestorRepository { return s.InvestorRepo }

// Sales returns the sale repository
func (s *NoOpTransactionScope) Sales() sales.Repository { return s.SaleRepo }

// Counts returns the count session repository
func (s *NoOpTransactionScope) Counts() inventory.Repository { return s.CountRepo }

// Numbers returns the document number service
func (s *NoOpTransactionScope) Numbers() shared.DocumentNumberService { return s.NumberService }

// Audit returns the audit sink
func (s *NoOpTransactionScope) Audit() shared.AuditRecorder { return s.AuditSink }

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)

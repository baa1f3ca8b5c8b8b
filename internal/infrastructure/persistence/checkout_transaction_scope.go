package persistence

import (
	"context"

	"gorm.io/gorm"

	appcheckout "github.com/helios/backend/internal/application/checkout"
	"github.com/helios/backend/internal/domain/finance"
	"github.com/helios/backend/internal/domain/order"
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
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appcheckout.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// OrderRepo returns the order repository scoped to the current transaction.
func (r *gormTransactionalRepositories) OrderRepo() order.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// ImpactFundRepo returns the impact fund repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ImpactFundRepo() finance.ImpactFundRepository {
	return NewGormImpactFundRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appcheckout.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appcheckout.TransactionalRepositories = (*gormTransactionalRepositories)(nil)

package checkout

import (
	"context"

	"github.com/helios/backend/internal/domain/finance"
	"github.com/helios/backend/internal/domain/order"
)

// TransactionScope provides transactional access to checkout repositories.
// Placing an order writes the order, its items, its address, and the
// impact fund allocation atomically; a failure anywhere rolls back all of it.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories that
// participate in checkout, all scoped to the same transaction
type TransactionalRepositories interface {
	// OrderRepo returns the order repository scoped to the current transaction
	OrderRepo() order.OrderRepository
	// ImpactFundRepo returns the impact fund repository scoped to the current transaction
	ImpactFundRepo() finance.ImpactFundRepository
}

// NoOpTransactionScope runs checkout without a real transaction.
// Used in tests where the repositories are mocks.
type NoOpTransactionScope struct {
	orderRepo  order.OrderRepository
	impactRepo finance.ImpactFundRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(orderRepo order.OrderRepository, impactRepo finance.ImpactFundRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{orderRepo: orderRepo, impactRepo: impactRepo}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the order repository
func (s *NoOpTransactionScope) OrderRepo() order.OrderRepository {
	return s.orderRepo
}

// ImpactFundRepo returns the impact fund repository
func (s *NoOpTransactionScope) ImpactFundRepo() finance.ImpactFundRepository {
	return s.impactRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)

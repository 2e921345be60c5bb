package gorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockchef/stockchef/internal/ports/outbound"
)

type txKey struct{}

// TxManager runs functions inside a single GORM transaction. The
// transaction handle rides in the context, so repositories built on the
// same base connection join it transparently.
type TxManager struct {
	db *gorm.DB
}

// NewTxManager creates a transaction manager
func NewTxManager(db *gorm.DB) outbound.TxManager {
	return &TxManager{db: db}
}

// InTx executes fn inside a transaction; any error rolls back.
func (m *TxManager) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	// Nested calls join the existing transaction.
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func txFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return nil
}

// dbFromContext returns the transaction handle from the context when one
// is active, otherwise the base connection.
func dbFromContext(ctx context.Context, base *gorm.DB) *gorm.DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return base.WithContext(ctx)
}

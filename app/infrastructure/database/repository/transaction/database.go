package transaction

import (
	"context"

	"gorm.io/gorm"
	"pantrypal.app/pantry-api-gateway/app/utils/contextkeys"
)

func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, contextkeys.TransactionContextKey{}, tx)
}

type Database struct {
	db *gorm.DB
}

// GetTx returns the request transaction when one was opened by the
// transaction middleware, otherwise the shared pool.
func (t *Database) GetTx(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(contextkeys.TransactionContextKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return t.db.WithContext(ctx)
}

// Transaction runs fn inside a transaction, reusing the one already in ctx.
func (t *Database) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(contextkeys.TransactionContextKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(WithTx(ctx, tx))
	})
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db}
}

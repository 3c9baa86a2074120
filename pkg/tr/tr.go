package tr

import (
	"context"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/profibuy/storefront/pkg/e"
)

type txKey struct{}

// WithTx кладёт транзакцию в контекст, чтобы репозитории работали в её рамках.
func WithTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromCtx извлекает объект транзакции (pgx.Tx) из контекста
func TxFromCtx(ctx context.Context) (pgx.Tx, error) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	if !ok {
		return nil, e.ErrTransactionNotFound
	}
	return tx, nil
}

// Manager выполняет функцию в транзакции PostgreSQL и кладёт pgx.Tx в контекст.
type Manager struct {
	db transaction.Transactional
}

func NewManager(db transaction.Transactional) *Manager {
	return &Manager{db: db}
}

// Do коммитит транзакцию, если fn вернула nil, иначе откатывает.
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	const op = "tr.Manager.Do"

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, m.db)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			_ = tx.Rollback(ctx)
		}
	}()

	pgxTx, ok := tx.Transaction().(pgx.Tx)
	if !ok {
		err = e.ErrTransactionNotFound
		return err
	}

	if err = fn(WithTx(ctx, pgxTx)); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

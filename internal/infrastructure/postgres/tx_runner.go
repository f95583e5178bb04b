package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/almacen-api/internal/application/analysis"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Ensure TxRunner implements ledger.TxRunner and analysis.TxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)
var _ analysis.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Fallos de serialización o deadlock se traducen a ErrConcurrencyConflict
// para que el caller reintente.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	itemRepo repository.StockItemRepository,
) error) error {
	return r.inTx(ctx, pgx.TxOptions{}, func(tx pgx.Tx) error {
		return fn(NewStockMovementRepository(tx), NewStockItemRepository(tx))
	})
}

// RunRetire inicia una transacción con todos los repos del retiro en cascada.
func (r *TxRunner) RunRetire(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	itemRepo repository.StockItemRepository,
	prodAnalysisRepo repository.ProductAnalysisRepository,
	locAnalysisRepo repository.LocationAnalysisRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
) error) error {
	return r.inTx(ctx, pgx.TxOptions{}, func(tx pgx.Tx) error {
		return fn(
			NewStockMovementRepository(tx),
			NewStockItemRepository(tx),
			NewProductAnalysisRepository(tx),
			NewLocationAnalysisRepository(tx),
			NewProductRepository(tx),
			NewLocationRepository(tx),
		)
	})
}

// RunAnalysis inicia una transacción REPEATABLE READ: la corrida de análisis
// lee un snapshot consistente del libro tomado al inicio, sin bloquear a los
// escritores del ledger.
func (r *TxRunner) RunAnalysis(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	itemRepo repository.StockItemRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	prodAnalysisRepo repository.ProductAnalysisRepository,
	locAnalysisRepo repository.LocationAnalysisRepository,
) error) error {
	return r.inTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead}, func(tx pgx.Tx) error {
		return fn(
			NewStockMovementRepository(tx),
			NewStockItemRepository(tx),
			NewProductRepository(tx),
			NewLocationRepository(tx),
			NewProductAnalysisRepository(tx),
			NewLocationAnalysisRepository(tx),
		)
	})
}

func (r *TxRunner) inTx(ctx context.Context, opts pgx.TxOptions, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		if isSerializationFailure(err) {
			return domain.ErrConcurrencyConflict
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return domain.ErrConcurrencyConflict
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

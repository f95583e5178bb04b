package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// validID reporta si id es un UUID bien formado. Un id malformado jamás
// referencia una fila existente, así que se trata igual que un no-encontrado
// sin llegar a la base.
func validID(id string) bool {
	return uuid.Validate(id) == nil
}

// TxRunner ejecuta callbacks dentro de una transacción, con los repositorios
// atados a la misma (Commit si fn retorna nil, Rollback si no).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		itemRepo repository.StockItemRepository,
	) error) error

	// RunRetire abre una transacción con todos los repos necesarios para el
	// retiro en cascada de productos o locaciones.
	RunRetire(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		itemRepo repository.StockItemRepository,
		prodAnalysisRepo repository.ProductAnalysisRepository,
		locAnalysisRepo repository.LocationAnalysisRepository,
		productRepo repository.ProductRepository,
		locationRepo repository.LocationRepository,
	) error) error
}

// RetireKind indica qué tipo de entidad se retira en BulkRetire.
type RetireKind string

// Tipos de retiro en cascada.
const (
	RetireProducts  RetireKind = "products"
	RetireLocations RetireKind = "locations"
)

// StockLedgerUseCase mantiene el libro de movimientos y el stock materializado
// por (producto, locación). Toda mutación corre en una transacción: los
// descuentos bloquean la fila (SELECT FOR UPDATE) antes de verificar
// suficiencia, y toda escritura de cantidad es un upsert por delta que suma en
// la base misma, de modo que escritores concurrentes del mismo par nunca se
// pisan, la cantidad nunca baja de cero y siempre iguala la suma del libro.
type StockLedgerUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
}

// NewStockLedgerUseCase construye el caso de uso.
func NewStockLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
) *StockLedgerUseCase {
	return &StockLedgerUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		locationRepo: locationRepo,
	}
}

// MovementInput entrada para AddStock y RemoveStock.
type MovementInput struct {
	ProductID  string
	LocationID string
	Quantity   int64 // siempre positiva; el signo lo decide la operación
	ActorID    string
}

// TransferInput entrada para TransferStock.
type TransferInput struct {
	ProductID      string
	FromLocationID string
	ToLocationID   string
	Quantity       int64
	ActorID        string
}

// AddStock suma cantidad al stock del par (producto, locación) y registra un
// movimiento positivo en el libro. Todo en una transacción.
func (uc *StockLedgerUseCase) AddStock(ctx context.Context, input MovementInput) error {
	if input.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if err := uc.checkPair(input.ProductID, input.LocationID); err != nil {
		return err
	}

	now := time.Now().UTC()
	return uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		itemRepo repository.StockItemRepository,
	) error {
		// La suma la hace la base (upsert por delta): dos entradas
		// concurrentes del mismo par acumulan ambas, incluso cuando la fila
		// aún no existe y ninguna tiene nada que bloquear
		if err := itemRepo.ApplyDelta(input.ProductID, input.LocationID, input.Quantity); err != nil {
			return err
		}
		return movRepo.Create(&entity.StockMovement{
			ProductID:  input.ProductID,
			LocationID: input.LocationID,
			Quantity:   input.Quantity,
			UserID:     input.ActorID,
			CreatedAt:  now,
		})
	})
}

// RemoveStock descuenta cantidad del par (producto, locación) y registra un
// movimiento negativo. Falla con ErrInsufficientStock si el stock actual no
// alcanza; en ese caso nada cambia.
func (uc *StockLedgerUseCase) RemoveStock(ctx context.Context, input MovementInput) error {
	if input.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if err := uc.checkPair(input.ProductID, input.LocationID); err != nil {
		return err
	}

	now := time.Now().UTC()
	return uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		itemRepo repository.StockItemRepository,
	) error {
		// Bloquea la fila antes de verificar suficiencia; el descuento mismo
		// va por delta para no pisar a nadie
		item, err := itemRepo.GetForUpdate(input.ProductID, input.LocationID)
		if err != nil {
			return err
		}
		if item.Quantity < input.Quantity {
			return domain.ErrInsufficientStock
		}
		if err := itemRepo.ApplyDelta(input.ProductID, input.LocationID, -input.Quantity); err != nil {
			return err
		}
		return movRepo.Create(&entity.StockMovement{
			ProductID:  input.ProductID,
			LocationID: input.LocationID,
			Quantity:   -input.Quantity,
			UserID:     input.ActorID,
			CreatedAt:  now,
		})
	})
}

// TransferStock mueve cantidad de una locación a otra: descuenta en origen y
// suma en destino registrando dos movimientos (negativo y positivo) en la misma
// transacción. Si el origen no alcanza, nada cambia en ninguna de las dos.
func (uc *StockLedgerUseCase) TransferStock(ctx context.Context, input TransferInput) error {
	if input.FromLocationID == input.ToLocationID {
		return domain.ErrInvalidTransfer
	}
	if input.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if !validID(input.ProductID) || !validID(input.FromLocationID) || !validID(input.ToLocationID) {
		return domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	from, err := uc.locationRepo.GetByID(input.FromLocationID)
	if err != nil {
		return err
	}
	to, err := uc.locationRepo.GetByID(input.ToLocationID)
	if err != nil {
		return err
	}
	if from == nil || to == nil {
		return domain.ErrNotFound
	}

	now := time.Now().UTC()
	return uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		itemRepo repository.StockItemRepository,
	) error {
		// Bloquea la fila del origen; la verificación y el descuento deben ser
		// atómicos frente a otros escritores del mismo par
		origin, err := itemRepo.GetForUpdate(input.ProductID, input.FromLocationID)
		if err != nil {
			return err
		}
		if origin.Quantity < input.Quantity {
			return domain.ErrInsufficientStock
		}
		if err := itemRepo.ApplyDelta(input.ProductID, input.FromLocationID, -input.Quantity); err != nil {
			return err
		}
		// El destino no se lee ni se bloquea: el delta suma en la base, así
		// que una entrada concurrente en el mismo destino no se pierde
		if err := itemRepo.ApplyDelta(input.ProductID, input.ToLocationID, input.Quantity); err != nil {
			return err
		}

		// Movimiento de salida en origen
		if err := movRepo.Create(&entity.StockMovement{
			ProductID:  input.ProductID,
			LocationID: input.FromLocationID,
			Quantity:   -input.Quantity,
			UserID:     input.ActorID,
			CreatedAt:  now,
		}); err != nil {
			return err
		}
		// Movimiento de entrada en destino
		return movRepo.Create(&entity.StockMovement{
			ProductID:  input.ProductID,
			LocationID: input.ToLocationID,
			Quantity:   input.Quantity,
			UserID:     input.ActorID,
			CreatedAt:  now,
		})
	})
}

// BulkRetire elimina en cascada todo lo que referencia a los productos o
// locaciones dados: primero los movimientos, luego el stock materializado,
// luego las filas de análisis y por último las entidades mismas. Todo o nada.
func (uc *StockLedgerUseCase) BulkRetire(ctx context.Context, kind RetireKind, ids []string) error {
	if len(ids) == 0 {
		return domain.ErrInvalidInput
	}
	for _, id := range ids {
		if !validID(id) {
			return domain.ErrNotFound
		}
	}
	return uc.txRunner.RunRetire(ctx, func(
		movRepo repository.StockMovementRepository,
		itemRepo repository.StockItemRepository,
		prodAnalysisRepo repository.ProductAnalysisRepository,
		locAnalysisRepo repository.LocationAnalysisRepository,
		productRepo repository.ProductRepository,
		locationRepo repository.LocationRepository,
	) error {
		switch kind {
		case RetireProducts:
			if err := movRepo.DeleteByProducts(ids); err != nil {
				return err
			}
			if err := itemRepo.DeleteByProducts(ids); err != nil {
				return err
			}
			if err := prodAnalysisRepo.DeleteByProducts(ids); err != nil {
				return err
			}
			return productRepo.Delete(ids)
		case RetireLocations:
			if err := movRepo.DeleteByLocations(ids); err != nil {
				return err
			}
			if err := itemRepo.DeleteByLocations(ids); err != nil {
				return err
			}
			if err := locAnalysisRepo.DeleteByLocations(ids); err != nil {
				return err
			}
			return locationRepo.Delete(ids)
		default:
			return domain.ErrInvalidInput
		}
	})
}

// checkPair valida que el producto y la locación existan.
func (uc *StockLedgerUseCase) checkPair(productID, locationID string) error {
	if !validID(productID) || !validID(locationID) {
		return domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	location, err := uc.locationRepo.GetByID(locationID)
	if err != nil {
		return err
	}
	if location == nil {
		return domain.ErrNotFound
	}
	return nil
}

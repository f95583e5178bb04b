package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/catalog"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// StockHandler maneja las peticiones HTTP del ledger de stock.
type StockHandler struct {
	ledgerUC *ledger.StockLedgerUseCase
	queryUC  *catalog.StockQueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(ledgerUC *ledger.StockLedgerUseCase, queryUC *catalog.StockQueryUseCase) *StockHandler {
	return &StockHandler{ledgerUC: ledgerUC, queryUC: queryUC}
}

// Add agrega stock a una locación.
func (h *StockHandler) Add(c *fiber.Ctx) error {
	actorID := GetActorID(c)
	if actorID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "falta actor"})
	}
	var in dto.StockMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.ledgerUC.AddStock(c.Context(), ledger.MovementInput{
		ProductID:  in.ProductID,
		LocationID: in.LocationID,
		Quantity:   in.Quantity,
		ActorID:    actorID,
	})
	if err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "stock agregado"})
}

// Remove descuenta stock de una locación.
func (h *StockHandler) Remove(c *fiber.Ctx) error {
	actorID := GetActorID(c)
	if actorID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "falta actor"})
	}
	var in dto.StockMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.ledgerUC.RemoveStock(c.Context(), ledger.MovementInput{
		ProductID:  in.ProductID,
		LocationID: in.LocationID,
		Quantity:   in.Quantity,
		ActorID:    actorID,
	})
	if err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "stock descontado"})
}

// Transfer mueve stock entre dos locaciones.
func (h *StockHandler) Transfer(c *fiber.Ctx) error {
	actorID := GetActorID(c)
	if actorID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "falta actor"})
	}
	var in dto.StockTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.ledgerUC.TransferStock(c.Context(), ledger.TransferInput{
		ProductID:      in.ProductID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Quantity:       in.Quantity,
		ActorID:        actorID,
	})
	if err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "transferencia completada"})
}

// List lista el stock actual con búsqueda opcional.
func (h *StockHandler) List(c *fiber.Ctx) error {
	rows, err := h.queryUC.ListStock(c.Context(), c.Query("query"), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.StockRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.StockRowResponse{
			ProductID:       row.ProductID,
			ProductBarcode:  row.ProductBarcode,
			ProductName:     row.ProductName,
			LocationID:      row.LocationID,
			LocationBarcode: row.LocationBarcode,
			Quantity:        row.Quantity,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}

// History lista el historial de movimientos, más reciente primero.
func (h *StockHandler) History(c *fiber.Ctx) error {
	rows, err := h.queryUC.ListHistory(c.Context(), c.Query("query"), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.MovementRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.MovementRowResponse{
			MovementID:      row.MovementID,
			ProductBarcode:  row.ProductBarcode,
			ProductName:     row.ProductName,
			LocationBarcode: row.LocationBarcode,
			Quantity:        row.Quantity,
			UserID:          row.UserID,
			CreatedAt:       row.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

// ProductMovements lista el libro de un producto, opcionalmente acotado por
// fechas (from/to en RFC 3339).
func (h *StockHandler) ProductMovements(c *fiber.Ctx) error {
	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido, use RFC 3339"})
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido, use RFC 3339"})
		}
		to = &t
	}
	movements, err := h.queryUC.ListProductMovements(c.Context(), c.Params("id"),
		from, to, c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return ledgerError(c, err)
	}
	out := make([]dto.ProductMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.ProductMovementResponse{
			ID:         m.ID,
			LocationID: m.LocationID,
			Quantity:   m.Quantity,
			UserID:     m.UserID,
			CreatedAt:  m.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

// SearchBarcode resuelve un barcode escaneado a producto o locación.
func (h *StockHandler) SearchBarcode(c *fiber.Ctx) error {
	result, err := h.queryUC.ResolveBarcode(c.Context(), c.Params("code"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "barcode requerido"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "barcode no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	switch result.Kind {
	case "product":
		return c.JSON(fiber.Map{"kind": result.Kind, "product": toProductResponse(result.Product)})
	default:
		return c.JSON(fiber.Map{"kind": result.Kind, "location": toLocationResponse(result.Location)})
	}
}

// ledgerError traduce errores del ledger a códigos HTTP.
func ledgerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "la cantidad debe ser positiva"})
	case errors.Is(err, domain.ErrInvalidTransfer):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_TRANSFER", Message: "origen y destino no pueden ser iguales"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto o locación no encontrado"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrConcurrencyConflict):
		// Seguro de reintentar por el cliente
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENCY_CONFLICT", Message: "conflicto de concurrencia, reintente"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

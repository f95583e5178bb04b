package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/analysis"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/reports"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/pkg/config"
)

// AnalysisHandler expone el panel estratégico, el dashboard y el disparo
// manual de la corrida de análisis.
type AnalysisHandler struct {
	analysisUC *analysis.StrategicAnalysisUseCase
	reportsUC  *reports.ReportsUseCase
	cfg        config.AnalysisConfig
}

// NewAnalysisHandler construye el handler.
func NewAnalysisHandler(analysisUC *analysis.StrategicAnalysisUseCase, reportsUC *reports.ReportsUseCase, cfg config.AnalysisConfig) *AnalysisHandler {
	return &AnalysisHandler{analysisUC: analysisUC, reportsUC: reportsUC, cfg: cfg}
}

// RunNow ejecuta la corrida de análisis de inmediato, fuera del horario
// programado. Útil después de cargas masivas o cambios de parámetros.
func (h *AnalysisHandler) RunNow(c *fiber.Ctx) error {
	started := time.Now().UTC()
	if err := h.analysisUC.Run(c.Context(), analysis.ParamsFromConfig(h.cfg, started)); err != nil {
		if errors.Is(err, domain.ErrConcurrencyConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code:    "CONCURRENCY_CONFLICT",
				Message: "la corrida chocó con movimientos en curso, reintente",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "la corrida de análisis falló"})
	}
	return c.JSON(fiber.Map{
		"message":     "análisis completado",
		"started_at":  started,
		"duration_ms": time.Since(started).Milliseconds(),
	})
}

// StrategicPanel devuelve las filas de análisis de productos y locaciones.
func (h *AnalysisHandler) StrategicPanel(c *fiber.Ctx) error {
	panel, err := h.reportsUC.GetStrategicPanel(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error consultando el panel"})
	}
	products := make([]dto.ProductAnalysisResponse, 0, len(panel.Products))
	for _, p := range panel.Products {
		products = append(products, dto.ProductAnalysisResponse{
			ProductID:        p.ProductID,
			Barcode:          p.Barcode,
			Name:             p.Name,
			AnalysisDate:     p.AnalysisDate,
			DailyVelocity:    p.DailyVelocity.String(),
			DaysOfSupply:     p.DaysOfSupply,
			LastMovementDate: p.LastMovementDate,
			Status:           p.Status,
		})
	}
	locations := make([]dto.LocationAnalysisResponse, 0, len(panel.Locations))
	for _, l := range panel.Locations {
		locations = append(locations, dto.LocationAnalysisResponse{
			LocationID:     l.LocationID,
			Barcode:        l.Barcode,
			AnalysisDate:   l.AnalysisDate,
			TotalMovements: l.TotalMovements,
			PickCount:      l.PickCount,
			PlaceCount:     l.PlaceCount,
			Status:         l.Status,
		})
	}
	return c.JSON(fiber.Map{"products": products, "locations": locations})
}

// Dashboard devuelve las métricas de la pantalla principal.
func (h *AnalysisHandler) Dashboard(c *fiber.Ctx) error {
	summary, err := h.reportsUC.GetDashboardSummary(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error consultando el dashboard"})
	}
	return c.JSON(dto.DashboardResponse{
		ProductCount:    summary.ProductCount,
		LocationCount:   summary.LocationCount,
		TotalOnHand:     summary.TotalOnHand,
		MovementsLast24: summary.MovementsLast24,
		ReorderNowCount: summary.ReorderNowCount,
	})
}

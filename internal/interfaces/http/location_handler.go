package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/catalog"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// LocationHandler maneja las peticiones HTTP de locaciones y categorías.
type LocationHandler struct {
	locationUC *catalog.LocationUseCase
	categoryUC *catalog.CategoryUseCase
}

// NewLocationHandler construye el handler.
func NewLocationHandler(locationUC *catalog.LocationUseCase, categoryUC *catalog.CategoryUseCase) *LocationHandler {
	return &LocationHandler{locationUC: locationUC, categoryUC: categoryUC}
}

// Create crea una locación.
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var in dto.LocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	location, err := h.locationUC.Create(c.Context(), catalog.CreateLocationInput{
		Barcode:     in.Barcode,
		Description: in.Description,
		CategoryID:  in.CategoryID,
	})
	if err != nil {
		return catalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toLocationResponse(location))
}

// GetByID obtiene una locación.
func (h *LocationHandler) GetByID(c *fiber.Ctx) error {
	location, err := h.locationUC.Get(c.Context(), c.Params("id"))
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(toLocationResponse(location))
}

// Update modifica descripción y categoría de una locación.
func (h *LocationHandler) Update(c *fiber.Ctx) error {
	var in dto.LocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	location, err := h.locationUC.Update(c.Context(), c.Params("id"), catalog.UpdateLocationInput{
		Description: in.Description,
		CategoryID:  in.CategoryID,
	})
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(toLocationResponse(location))
}

// Delete retira una locación con todos sus movimientos y stock.
func (h *LocationHandler) Delete(c *fiber.Ctx) error {
	if err := h.locationUC.Delete(c.Context(), c.Params("id")); err != nil {
		return catalogError(c, err)
	}
	return c.JSON(fiber.Map{"message": "locación retirada"})
}

// List lista locaciones con búsqueda opcional.
func (h *LocationHandler) List(c *fiber.Ctx) error {
	locations, err := h.locationUC.List(c.Context(), c.Query("query"), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return catalogError(c, err)
	}
	out := make([]dto.LocationResponse, 0, len(locations))
	for _, l := range locations {
		out = append(out, toLocationResponse(l))
	}
	return c.JSON(fiber.Map{"total": len(out), "locations": out})
}

// CreateCategory crea una categoría de locación.
func (h *LocationHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	category, err := h.categoryUC.Create(c.Context(), in.Name)
	if err != nil {
		return catalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CategoryResponse{ID: category.ID, Name: category.Name})
}

// UpdateCategory renombra una categoría.
func (h *LocationHandler) UpdateCategory(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	category, err := h.categoryUC.Update(c.Context(), c.Params("id"), in.Name)
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(dto.CategoryResponse{ID: category.ID, Name: category.Name})
}

// DeleteCategory borra una categoría sin locaciones asociadas.
func (h *LocationHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.categoryUC.Delete(c.Context(), c.Params("id")); err != nil {
		return catalogError(c, err)
	}
	return c.JSON(fiber.Map{"message": "categoría eliminada"})
}

// ListCategories devuelve todas las categorías.
func (h *LocationHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.categoryUC.List(c.Context())
	if err != nil {
		return catalogError(c, err)
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		out = append(out, dto.CategoryResponse{ID: cat.ID, Name: cat.Name})
	}
	return c.JSON(fiber.Map{"total": len(out), "categories": out})
}

func toLocationResponse(l *entity.Location) dto.LocationResponse {
	return dto.LocationResponse{
		ID:          l.ID,
		Barcode:     l.Barcode,
		Description: l.Description,
		CategoryID:  l.CategoryID,
	}
}

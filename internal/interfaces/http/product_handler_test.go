package http_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/catalog"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	apihttp "github.com/jhoicas/almacen-api/internal/interfaces/http"
)

// mapProductRepo repo de productos en memoria, suficiente para el handler.
type mapProductRepo struct {
	products map[string]*entity.Product
}

func (r *mapProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *mapProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}
func (r *mapProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Barcode == barcode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *mapProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *mapProductRepo) Delete(ids []string) error {
	for _, id := range ids {
		delete(r.products, id)
	}
	return nil
}
func (r *mapProductRepo) List(string, int, int) ([]*entity.Product, error) { return nil, nil }
func (r *mapProductRepo) ListIDs() ([]string, error)                       { return nil, nil }
func (r *mapProductRepo) Count() (int, error)                              { return len(r.products), nil }

const knownProductID = "8dd5fe7c-26a7-4e01-a4f2-4ad0778aa1a3"

func newProductApp(t *testing.T) *fiber.App {
	t.Helper()
	repo := &mapProductRepo{products: map[string]*entity.Product{
		knownProductID: {ID: knownProductID, Barcode: "PRD-001", Name: "tornillos"},
	}}
	handler := apihttp.NewProductHandler(catalog.NewProductUseCase(repo, nil))
	app := fiber.New()
	app.Get("/api/products/:id", handler.GetByID)
	return app
}

func decodeError(t *testing.T, body io.Reader) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestProductGetByID_Existente(t *testing.T) {
	app := newProductApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/products/"+knownProductID, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestProductGetByID_UUIDValidoInexistente(t *testing.T) {
	app := newProductApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/products/3f2f1a9e-0000-4000-8000-000000000000", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// Un id que ni siquiera es UUID no debe llegar a la base ni terminar en 500:
// se responde 404 igual que cualquier otro id inexistente.
func TestProductGetByID_IDMalformadoResponde404(t *testing.T) {
	app := newProductApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/products/garbage", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode,
		"un id malformado debe tratarse como no encontrado")
	assert.Equal(t, "NOT_FOUND", decodeError(t, resp.Body).Code)
}

package http

import "github.com/gofiber/fiber/v2"

// HeaderActorID header con el ID del usuario ya autenticado por el gateway.
// La autorización ocurre aguas arriba; aquí solo se usa para estampar
// los movimientos del ledger.
const HeaderActorID = "X-Actor-ID"

// GetActorID devuelve el actor de la petición, o vacío si falta el header.
func GetActorID(c *fiber.Ctx) string {
	return c.Get(HeaderActorID)
}

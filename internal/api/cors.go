package api

import "github.com/gofiber/fiber/v2"

// NovoCORS devolve o middleware de CORS permissivo do painel: os cabeçalhos
// são aplicados a toda resposta e o preflight OPTIONS responde 200 sem corpo,
// o contrato que o front-end espera.
func NovoCORS(allowOrigins, allowMethods, allowHeaders string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Access-Control-Allow-Origin", allowOrigins)
		c.Set("Access-Control-Allow-Methods", allowMethods)
		c.Set("Access-Control-Allow-Headers", allowHeaders)

		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusOK)
		}
		return c.Next()
	}
}

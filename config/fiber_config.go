package config

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

// LoadFiberConfig retorna a configuração para o Fiber API
func LoadFiberConfig(api *APIConfig) fiber.Config {
	return fiber.Config{
		ServerHeader:          "Painel MES",
		StrictRouting:         true,
		CaseSensitive:         true,
		BodyLimit:             4 * 1024 * 1024, // 4MB
		ReadTimeout:           time.Duration(api.ReadTimeout) * time.Second,
		WriteTimeout:          time.Duration(api.WriteTimeout) * time.Second,
		IdleTimeout:           120 * time.Second,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	}
}

// errorHandler converte qualquer falha de handler no corpo de erro padrão
// da API: {"error": mensagem}. Nenhuma falha derruba o processo.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	mensagem := "erro interno do servidor"
	switch code {
	case fiber.StatusNotFound:
		mensagem = "recurso não encontrado"
	case fiber.StatusMethodNotAllowed:
		mensagem = "método não permitido"
	}

	return c.Status(code).JSON(fiber.Map{"error": mensagem})
}

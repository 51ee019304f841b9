package api

import (
	"encoding/json"
	"errors"
	"strconv"

	"Painel_MES/internal/store"

	"github.com/gofiber/fiber/v2"
)

// ListarTitulos retorna todos os títulos de processo
func (h *Handler) ListarTitulos(c *fiber.Ctx) error {
	return c.JSON(h.armazem.ListProcessTitles())
}

// CriarTitulo insere um título de processo com ID do servidor
func (h *Handler) CriarTitulo(c *fiber.Ctx) error {
	var titulo store.ProcessTitle
	if err := json.Unmarshal(c.Body(), &titulo); err != nil {
		return responderErro(c, fiber.StatusInternalServerError, "erro ao processar os dados do título")
	}

	criado := h.armazem.InsertProcessTitle(titulo)
	h.armazem.Save(store.KindProcessTitles)

	return c.Status(fiber.StatusCreated).JSON(criado)
}

// AtualizarTitulo aplica um merge parcial a um título de processo
func (h *Handler) AtualizarTitulo(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return responderErro(c, fiber.StatusNotFound, "título não encontrado")
	}

	var partial map[string]interface{}
	if err := json.Unmarshal(c.Body(), &partial); err != nil {
		return responderErro(c, fiber.StatusInternalServerError, "erro ao processar os dados do título")
	}

	atualizado, err := h.armazem.MergeProcessTitle(id, partial)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return responderErro(c, fiber.StatusNotFound, "título não encontrado")
		}
		return responderErro(c, fiber.StatusInternalServerError, "erro ao atualizar o título")
	}

	h.armazem.Save(store.KindProcessTitles)
	return c.JSON(atualizado)
}

// RemoverTitulo remove um título de processo (idempotente, sempre 204)
func (h *Handler) RemoverTitulo(c *fiber.Ctx) error {
	id, _ := strconv.ParseInt(c.Params("id"), 10, 64)

	h.armazem.RemoveProcessTitle(id)
	h.armazem.Save(store.KindProcessTitles)

	return c.SendStatus(fiber.StatusNoContent)
}

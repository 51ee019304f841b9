package api

import (
	"encoding/json"
	"errors"
	"strconv"

	"Painel_MES/internal/store"

	"github.com/gofiber/fiber/v2"
)

// ListarLinhas retorna todos os nomes de linha
func (h *Handler) ListarLinhas(c *fiber.Ctx) error {
	return c.JSON(h.armazem.ListLineNames())
}

// CriarLinha insere um nome de linha com ID do servidor
func (h *Handler) CriarLinha(c *fiber.Ctx) error {
	var linha store.LineName
	if err := json.Unmarshal(c.Body(), &linha); err != nil {
		return responderErro(c, fiber.StatusInternalServerError, "erro ao processar os dados da linha")
	}

	criada := h.armazem.InsertLineName(linha)
	h.armazem.Save(store.KindLineNames)

	return c.Status(fiber.StatusCreated).JSON(criada)
}

// AtualizarLinha aplica um merge parcial a um nome de linha
func (h *Handler) AtualizarLinha(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return responderErro(c, fiber.StatusNotFound, "linha não encontrada")
	}

	var partial map[string]interface{}
	if err := json.Unmarshal(c.Body(), &partial); err != nil {
		return responderErro(c, fiber.StatusInternalServerError, "erro ao processar os dados da linha")
	}

	atualizada, err := h.armazem.MergeLineName(id, partial)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return responderErro(c, fiber.StatusNotFound, "linha não encontrada")
		}
		return responderErro(c, fiber.StatusInternalServerError, "erro ao atualizar a linha")
	}

	h.armazem.Save(store.KindLineNames)
	return c.JSON(atualizada)
}

// RemoverLinha remove um nome de linha (idempotente, sempre 204)
func (h *Handler) RemoverLinha(c *fiber.Ctx) error {
	id, _ := strconv.ParseInt(c.Params("id"), 10, 64)

	h.armazem.RemoveLineName(id)
	h.armazem.Save(store.KindLineNames)

	return c.SendStatus(fiber.StatusNoContent)
}

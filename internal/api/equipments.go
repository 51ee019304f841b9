package api

import (
	"encoding/json"
	"errors"
	"strconv"

	"Painel_MES/internal/store"
	"Painel_MES/internal/websocket"

	"github.com/gofiber/fiber/v2"
)

// ListarEquipamentos retorna todos os equipamentos do painel
func (h *Handler) ListarEquipamentos(c *fiber.Ctx) error {
	return c.JSON(h.armazem.ListEquipments())
}

// CriarEquipamento insere um equipamento com ID atribuído pelo servidor,
// faz o broadcast e então persiste a coleção.
func (h *Handler) CriarEquipamento(c *fiber.Ctx) error {
	var equipamento store.Equipment
	if err := json.Unmarshal(c.Body(), &equipamento); err != nil {
		return responderErro(c, fiber.StatusInternalServerError, "erro ao processar os dados do equipamento")
	}

	criado := h.armazem.InsertEquipment(equipamento)
	h.hub.Publicar(websocket.EventoEquipmentAdded, criado)
	h.armazem.Save(store.KindEquipments)

	return c.Status(fiber.StatusCreated).JSON(criado)
}

// AtualizarEquipamento aplica um merge parcial guiado por tipo; cada toque
// bem-sucedido gera uma entrada de histórico no registro.
func (h *Handler) AtualizarEquipamento(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return responderErro(c, fiber.StatusNotFound, "equipamento não encontrado")
	}

	var partial map[string]interface{}
	if err := json.Unmarshal(c.Body(), &partial); err != nil {
		return responderErro(c, fiber.StatusInternalServerError, "erro ao processar os dados do equipamento")
	}

	atualizado, err := h.armazem.MergeEquipment(id, partial)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return responderErro(c, fiber.StatusNotFound, "equipamento não encontrado")
		}
		return responderErro(c, fiber.StatusInternalServerError, "erro ao atualizar o equipamento")
	}

	h.hub.Publicar(websocket.EventoEquipmentUpdated, atualizado)
	h.armazem.Save(store.KindEquipments)

	return c.JSON(atualizado)
}

// RemoverEquipamento remove um equipamento; a remoção é idempotente e
// sempre responde 204, mesmo para IDs inexistentes.
func (h *Handler) RemoverEquipamento(c *fiber.Ctx) error {
	id, _ := strconv.ParseInt(c.Params("id"), 10, 64)

	h.armazem.RemoveEquipment(id)
	h.hub.Publicar(websocket.EventoEquipmentDeleted, fiber.Map{"id": id})
	h.armazem.Save(store.KindEquipments)

	return c.SendStatus(fiber.StatusNoContent)
}

package api

import (
	"encoding/json"
	"errors"
	"strconv"

	"Painel_MES/internal/store"

	"github.com/gofiber/fiber/v2"
)

// ListarTabelas retorna todas as tabelas de atribuição
func (h *Handler) ListarTabelas(c *fiber.Ctx) error {
	return c.JSON(h.armazem.ListAssignmentTables())
}

// CriarTabela insere uma tabela de atribuição. Campos arbitrários do corpo
// são aceitos; posição e tamanho recebem os valores padrão quando ausentes.
func (h *Handler) CriarTabela(c *fiber.Ctx) error {
	var campos store.AssignmentTable
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &campos); err != nil {
			return responderErro(c, fiber.StatusInternalServerError, "erro ao processar os dados da tabela")
		}
	}

	criada := h.armazem.InsertAssignmentTable(campos)
	h.armazem.Save(store.KindAssignmentTables)

	return c.Status(fiber.StatusCreated).JSON(criada)
}

// AtualizarTabela aplica uma união rasa dos campos recebidos; o registro
// é identificado pela query string (?id=).
func (h *Handler) AtualizarTabela(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		return responderErro(c, fiber.StatusNotFound, "tabela não encontrada")
	}

	var partial map[string]interface{}
	if err := json.Unmarshal(c.Body(), &partial); err != nil {
		return responderErro(c, fiber.StatusInternalServerError, "erro ao processar os dados da tabela")
	}

	atualizada, err := h.armazem.MergeAssignmentTable(id, partial)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return responderErro(c, fiber.StatusNotFound, "tabela não encontrada")
		}
		return responderErro(c, fiber.StatusInternalServerError, "erro ao atualizar a tabela")
	}

	h.armazem.Save(store.KindAssignmentTables)
	return c.JSON(atualizada)
}

// RemoverTabela remove uma tabela identificada por query string (sempre 204)
func (h *Handler) RemoverTabela(c *fiber.Ctx) error {
	id, _ := strconv.ParseInt(c.Query("id"), 10, 64)

	h.armazem.RemoveAssignmentTable(id)
	h.armazem.Save(store.KindAssignmentTables)

	return c.SendStatus(fiber.StatusNoContent)
}

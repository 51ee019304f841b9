package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// credenciaisLogin é o corpo esperado em POST /api/login
type credenciaisLogin struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Login autentica pela tripla exata usuário/senha/papel contra a lista
// estática de usuários. O token de sessão emitido é apenas informativo:
// nenhuma mutação o exige.
func (h *Handler) Login(c *fiber.Ctx) error {
	var cred credenciaisLogin
	if err := json.Unmarshal(c.Body(), &cred); err != nil {
		return responderErro(c, fiber.StatusInternalServerError, "erro ao processar as credenciais")
	}

	usuario, err := h.armazem.Authenticate(cred.Username, cred.Password, cred.Role)
	if err != nil {
		return responderErro(c, fiber.StatusUnauthorized, "credenciais inválidas")
	}

	token := uuid.NewString()
	h.sessoesMutex.Lock()
	h.sessoes[token] = usuario
	h.sessoesMutex.Unlock()

	return c.JSON(fiber.Map{
		"username": usuario.Username,
		"role":     usuario.Role,
		"token":    token,
	})
}

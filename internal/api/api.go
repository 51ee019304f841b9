package api

import (
	"sync"

	"Painel_MES/internal/store"

	"github.com/gofiber/fiber/v2"
)

// Publicador abstrai o canal de broadcast para os handlers REST
type Publicador interface {
	Publicar(nome string, dados interface{})
}

// Handler concentra os handlers REST da API do painel
type Handler struct {
	armazem *store.Store
	hub     Publicador

	// Sessões emitidas no login. O token é apenas informativo: as mutações
	// não o exigem (modelo de confiança do cliente preservado).
	sessoesMutex sync.Mutex
	sessoes      map[string]store.User
}

// NewHandler cria o conjunto de handlers da API
func NewHandler(armazem *store.Store, hub Publicador) *Handler {
	return &Handler{
		armazem: armazem,
		hub:     hub,
		sessoes: make(map[string]store.User),
	}
}

// RegistrarRotas registra todas as rotas da API no aplicativo Fiber
func (h *Handler) RegistrarRotas(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/equipments", h.ListarEquipamentos)
	api.Post("/equipments", h.CriarEquipamento)
	api.Put("/equipments/:id", h.AtualizarEquipamento)
	api.Delete("/equipments/:id", h.RemoverEquipamento)

	api.Get("/processTitles", h.ListarTitulos)
	api.Post("/processTitles", h.CriarTitulo)
	api.Put("/processTitles/:id", h.AtualizarTitulo)
	api.Delete("/processTitles/:id", h.RemoverTitulo)

	api.Get("/lineNames", h.ListarLinhas)
	api.Post("/lineNames", h.CriarLinha)
	api.Put("/lineNames/:id", h.AtualizarLinha)
	api.Delete("/lineNames/:id", h.RemoverLinha)

	// Tabelas de atribuição identificam o registro por query string (?id=)
	api.Get("/assignmentTables", h.ListarTabelas)
	api.Post("/assignmentTables", h.CriarTabela)
	api.Put("/assignmentTables", h.AtualizarTabela)
	api.Delete("/assignmentTables", h.RemoverTabela)

	api.Post("/login", h.Login)
}

// responderErro envia o corpo de erro padrão da API
func responderErro(c *fiber.Ctx, status int, mensagem string) error {
	return c.Status(status).JSON(fiber.Map{"error": mensagem})
}

package websocket

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Permitir conexões de qualquer origem (em produção, restrinja isso)
	},
}

// ManipularWS manipula as requisições WebSocket
func (g *Gerenciador) ManipularWS(w http.ResponseWriter, r *http.Request) {
	// Faz o upgrade da conexão HTTP para WebSocket
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Erro ao abrir conexão WebSocket: %v", err)
		return
	}

	// Cria um novo cliente
	cliente := &Cliente{
		conn:        conn,
		gerenciador: g,
		enviar:      make(chan Evento, 256),
	}

	// Registra o cliente no gerenciador
	g.registrar <- cliente

	// Inicia as goroutines para leitura e escrita
	go cliente.bombearEscrita()
	go cliente.bombearLeitura()
}

package websocket

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

// Cliente representa uma conexão WebSocket com uma sessão do painel
type Cliente struct {
	gerenciador *Gerenciador
	conn        *websocket.Conn
	enviar      chan Evento
}

// bombearEscrita envia eventos para o WebSocket
func (c *Cliente) bombearEscrita() {
	defer func() {
		c.conn.Close()
	}()

	// Configura um ping periódico para manter a conexão
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case evento, ok := <-c.enviar:
			// Configura o tempo limite de escrita
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				// Canal fechado, encerra conexão
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// Envia o evento como JSON
			if err := c.conn.WriteJSON(evento); err != nil {
				log.Printf("Erro ao enviar evento: %v", err)
				return
			}

		case <-ticker.C:
			// Envia ping periódico
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// bombearLeitura lê comandos do WebSocket
func (c *Cliente) bombearLeitura() {
	defer func() {
		c.gerenciador.desregistrar <- c
		c.conn.Close()
	}()

	// Configura parâmetros do WebSocket
	c.conn.SetReadLimit(4096) // 4KB
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure) {
				log.Printf("Erro na leitura do WebSocket: %v", err)
			}
			break
		}

		// Processa comandos recebidos
		var recebido Evento
		if err := json.Unmarshal(message, &recebido); err != nil {
			log.Printf("Erro ao decodificar comando: %v", err)
			continue
		}

		if recebido.Nome == EventoStatusUpdate {
			var cmd ComandoStatus
			if !decodificarDados(recebido.Dados, &cmd) {
				log.Printf("Comando statusUpdate com dados inválidos")
				continue
			}
			c.gerenciador.processarStatus(cmd)
		}
	}
}

// decodificarDados reaproveita o codec JSON para tipar o campo data do evento
func decodificarDados(dados interface{}, dest interface{}) bool {
	raw, err := json.Marshal(dados)
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

package websocket

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"sync"
	"time"

	"Painel_MES/internal/cache"
	"Painel_MES/internal/store"

	"github.com/google/uuid"
)

// Canal e chave usados na ponte de eventos via Redis
const (
	canalEventos = "painel:eventos"
	chaveSessoes = "painel:sessoes"
)

// Gerenciador gerencia todas as conexões WebSocket e a distribuição de
// eventos do painel. Todo evento aceito é entregue a todas as sessões
// conectadas, incluindo a que originou a mutação (eco preservado).
type Gerenciador struct {
	clientes     map[*Cliente]bool
	broadcast    chan Evento
	registrar    chan *Cliente
	desregistrar chan *Cliente
	cache        cache.Cache
	store        *store.Store
	instanceID   string
	mutex        sync.RWMutex
	wg           sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc

	// Canal para controlar o encerramento
	doneChan chan struct{}
}

// NovoGerenciador cria uma nova instância do gerenciador WebSocket
func NovoGerenciador(armazem *store.Store, cacheProvider cache.Cache) *Gerenciador {
	ctx, cancel := context.WithCancel(context.Background())
	return &Gerenciador{
		clientes:     make(map[*Cliente]bool),
		broadcast:    make(chan Evento, 100), // Buffer para evitar bloqueio do caminho HTTP
		registrar:    make(chan *Cliente),
		desregistrar: make(chan *Cliente),
		store:        armazem,
		cache:        cacheProvider,
		instanceID:   uuid.NewString(),
		ctx:          ctx,
		cancel:       cancel,
		doneChan:     make(chan struct{}),
	}
}

// Iniciar inicia o loop do gerenciador WebSocket e a ponte Redis
func (g *Gerenciador) Iniciar() {
	g.wg.Add(2)

	go g.ponteRedis()

	go func() {
		defer g.wg.Done()

		for {
			select {
			case <-g.doneChan:
				log.Println("Encerrando loop do gerenciador WebSocket")
				return

			case cliente := <-g.registrar:
				g.mutex.Lock()
				g.clientes[cliente] = true
				total := len(g.clientes)
				g.mutex.Unlock()
				log.Printf("Novo cliente WebSocket conectado. Total: %d", total)

				// Snapshot completo apenas para a nova sessão.
				select {
				case cliente.enviar <- Evento{Nome: EventoInitialEquipments, Dados: g.store.ListEquipments()}:
				default:
				}

				g.anunciarSessoes(total)

			case cliente := <-g.desregistrar:
				g.mutex.Lock()
				total := len(g.clientes)
				if _, ok := g.clientes[cliente]; ok {
					delete(g.clientes, cliente)
					close(cliente.enviar)
					total = len(g.clientes)
					log.Printf("Cliente WebSocket desconectado. Total: %d", total)
				}
				g.mutex.Unlock()

				g.anunciarSessoes(total)

			case evento := <-g.broadcast:
				g.mutex.Lock()
				for cliente := range g.clientes {
					select {
					case cliente.enviar <- evento:
					default:
						// Cliente lento demais: descarta a conexão.
						close(cliente.enviar)
						delete(g.clientes, cliente)
					}
				}
				g.mutex.Unlock()
			}
		}
	}()
}

// Parar encerra o gerenciador de WebSocket de forma graciosa
func (g *Gerenciador) Parar() {
	log.Println("Iniciando encerramento do gerenciador WebSocket...")

	g.cancel()
	close(g.doneChan)

	g.mutex.Lock()
	for cliente := range g.clientes {
		close(cliente.enviar)
	}
	g.clientes = make(map[*Cliente]bool)
	g.mutex.Unlock()

	waitChan := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(waitChan)
	}()

	select {
	case <-waitChan:
		log.Println("Gerenciador WebSocket encerrado com sucesso")
	case <-time.After(5 * time.Second):
		log.Println("Timeout ao aguardar encerramento de goroutines do WebSocket")
	}
}

// Publicar entrega um evento a todas as sessões locais e o propaga pela
// ponte Redis para as demais instâncias. Nunca bloqueia o chamador.
func (g *Gerenciador) Publicar(nome string, dados interface{}) {
	evento := Evento{Nome: nome, Dados: dados}

	select {
	case g.broadcast <- evento:
	default:
		log.Printf("Canal de broadcast cheio, descartando evento %s", nome)
	}

	// Propaga para outras instâncias; falha do Redis nunca afeta a entrega local.
	envelope := envelopeRemoto{Origem: g.instanceID, Evento: evento}
	payload, err := json.Marshal(envelope)
	if err != nil {
		log.Printf("Erro ao serializar evento %s para a ponte: %v", nome, err)
		return
	}
	if err := g.cache.Publish(canalEventos, payload); err != nil {
		log.Printf("Erro ao publicar evento %s na ponte Redis: %v", nome, err)
	}
}

// Sessoes retorna o número de sessões conectadas nesta instância
func (g *Gerenciador) Sessoes() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return len(g.clientes)
}

// anunciarSessoes rebroadcasta a contagem de sessões a cada conexão e
// desconexão, e registra o valor no cache.
func (g *Gerenciador) anunciarSessoes(total int) {
	select {
	case g.broadcast <- Evento{Nome: EventoUserCount, Dados: total}:
	default:
	}

	if err := g.cache.SetValue(chaveSessoes, strconv.Itoa(total)); err != nil {
		log.Printf("Erro ao registrar contagem de sessões no cache: %v", err)
	}
}

// ponteRedis assina o canal de eventos e injeta no broadcast local os
// eventos publicados por outras instâncias do painel.
func (g *Gerenciador) ponteRedis() {
	defer g.wg.Done()

	sub, err := g.cache.Subscribe(g.ctx, canalEventos)
	if err != nil {
		log.Printf("Aviso: ponte Redis indisponível: %v", err)
		return
	}
	if sub == nil {
		// Cache em memória: implantação de instância única, sem ponte.
		return
	}

	for {
		select {
		case <-g.doneChan:
			return
		case payload, ok := <-sub:
			if !ok {
				return
			}

			var envelope envelopeRemoto
			if err := json.Unmarshal(payload, &envelope); err != nil {
				log.Printf("Erro ao decodificar evento da ponte: %v", err)
				continue
			}
			if envelope.Origem == g.instanceID {
				continue // eco da própria publicação
			}

			select {
			case g.broadcast <- envelope.Evento:
			default:
				log.Printf("Canal de broadcast cheio, descartando evento remoto %s", envelope.Evento.Nome)
			}
		}
	}
}

// processarStatus aplica um comando de mudança de status vindo de uma sessão:
// o armazém é atualizado (com registro de histórico) e o evento statusUpdate
// é rebroadcastado a todas as sessões, inclusive a que originou o comando.
func (g *Gerenciador) processarStatus(cmd ComandoStatus) {
	if cmd.ID == 0 {
		return
	}

	partial := map[string]interface{}{
		"status": cmd.Status,
		"user":   cmd.User,
	}
	atualizado, err := g.store.MergeEquipment(cmd.ID, partial)
	if err != nil {
		log.Printf("Erro ao aplicar statusUpdate do equipamento %d: %v", cmd.ID, err)
		return
	}

	// Broadcast antes da persistência: a gravação em disco nunca atrasa
	// a convergência das sessões.
	g.Publicar(EventoStatusUpdate, atualizado)
	g.store.Save(store.KindEquipments)
}

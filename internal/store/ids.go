package store

import (
	"sync"
	"time"
)

// IDGenerator gera identificadores únicos de processo para novos registros
type IDGenerator interface {
	Next() int64
}

// clockIDGenerator gera IDs derivados do relógio (milissegundos), com
// incremento forçado quando duas criações caem no mesmo milissegundo.
type clockIDGenerator struct {
	mutex sync.Mutex
	last  int64
}

// NewClockIDGenerator cria o gerador de IDs padrão do sistema
func NewClockIDGenerator() IDGenerator {
	return &clockIDGenerator{}
}

func (g *clockIDGenerator) Next() int64 {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	id := time.Now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// SequentialIDGenerator gera IDs sequenciais determinísticos, usado em testes
type SequentialIDGenerator struct {
	mutex sync.Mutex
	next  int64
}

// NewSequentialIDGenerator cria um gerador sequencial iniciando em start
func NewSequentialIDGenerator(start int64) *SequentialIDGenerator {
	return &SequentialIDGenerator{next: start}
}

func (g *SequentialIDGenerator) Next() int64 {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	id := g.next
	g.next++
	return id
}

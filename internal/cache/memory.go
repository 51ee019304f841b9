package cache

import (
	"context"
	"sync"
)

// MemoryCache implementa a interface Cache usando armazenamento em memória
type MemoryCache struct {
	data  map[string]string
	mutex sync.RWMutex
}

// NewMemoryCache cria uma nova instância do cache em memória
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data: make(map[string]string),
	}
}

// Close "fecha" o cache em memória (operação sem efeito para esse tipo)
func (m *MemoryCache) Close() error {
	return nil
}

// SetValue armazena uma string arbitrária no cache em memória
func (m *MemoryCache) SetValue(key string, value string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.data[key] = value
	return nil
}

// GetValue recupera uma string arbitrária do cache em memória
func (m *MemoryCache) GetValue(key string) (string, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.data[key], nil // chave ausente retorna vazio
}

// DeleteKey remove uma chave do cache em memória
func (m *MemoryCache) DeleteKey(key string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.data, key)
	return nil
}

// Publish não tem efeito no cache em memória: não há sistema pub/sub real,
// a distribuição de eventos fica restrita ao processo local.
func (m *MemoryCache) Publish(channel string, payload []byte) error {
	return nil
}

// Subscribe não oferece canal de eventos no cache em memória
func (m *MemoryCache) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	return nil, nil
}

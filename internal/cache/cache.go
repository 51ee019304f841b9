package cache

import "context"

// Cache define a interface de cache e de ponte de eventos entre instâncias
// do painel. Na implantação de instância única (memória) não existe pub/sub
// real e a ponte degrada para distribuição apenas local.
type Cache interface {
	// Close fecha a conexão com o cache
	Close() error

	// SetValue armazena uma string arbitrária no cache
	SetValue(key string, value string) error

	// GetValue recupera uma string arbitrária do cache
	GetValue(key string) (string, error)

	// DeleteKey remove uma chave do cache
	DeleteKey(key string) error

	// Publish publica uma mensagem no canal de eventos
	Publish(channel string, payload []byte) error

	// Subscribe assina um canal de eventos. O canal retornado pode ser nil
	// quando a implementação não oferece pub/sub.
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
}

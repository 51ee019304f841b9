package cache

import (
	"context"
	"log"
	"sync"
	"time"
)

// RedisConfig contém as configurações para conexão com o Redis.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
}

// DynamicCache é um wrapper que implementa a interface Cache e
// alterna dinamicamente entre RedisCache e MemoryCache conforme o health check.
type DynamicCache struct {
	mu       sync.RWMutex
	active   Cache
	redisCfg RedisConfig
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewDynamicCache tenta conectar ao Redis e, se falhar, usa o cache em memória como fallback.
func NewDynamicCache(ctx context.Context, redisCfg RedisConfig) *DynamicCache {
	active, err := NewRedisCache(redisCfg.Host, redisCfg.Port, redisCfg.Password)
	if err != nil {
		log.Printf("[DynamicCache] Erro ao conectar ao Redis: %v. Usando cache em memória como fallback.", err)
		active = NewMemoryCache()
	} else {
		log.Println("[DynamicCache] Conectado ao Redis com sucesso.")
	}
	dctx, cancel := context.WithCancel(ctx)
	dc := &DynamicCache{
		active:   active,
		redisCfg: redisCfg,
		ctx:      dctx,
		cancel:   cancel,
	}
	go dc.healthCheckRoutine()
	return dc
}

// healthCheckRoutine verifica periodicamente a saúde do cache ativo.
// Se o Redis estiver ativo e o ping falhar, alterna para MemoryCache.
// Se estiver usando MemoryCache, tenta reconectar ao Redis.
func (dc *DynamicCache) healthCheckRoutine() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-dc.ctx.Done():
			log.Println("[DynamicCache] Health check routine finalizada.")
			return
		case <-ticker.C:
			dc.mu.RLock()
			current := dc.active
			dc.mu.RUnlock()

			switch cacheInstance := current.(type) {
			case *RedisCache:
				// Se o cache ativo é Redis, realiza o Ping.
				if err := cacheInstance.Ping(); err != nil {
					log.Printf("[DynamicCache] Health check do Redis falhou: %v. Alternando para MemoryCache.", err)
					dc.mu.Lock()
					dc.active = NewMemoryCache()
					dc.mu.Unlock()
				}
			default:
				// Se estiver usando MemoryCache, tenta reconectar ao Redis.
				newRedis, err := NewRedisCache(dc.redisCfg.Host, dc.redisCfg.Port, dc.redisCfg.Password)
				if err == nil {
					log.Println("[DynamicCache] Reconectado ao Redis com sucesso. Alternando para RedisCache.")
					dc.mu.Lock()
					dc.active = newRedis
					dc.mu.Unlock()
				}
			}
		}
	}
}

// Close encerra o health check e fecha o cache ativo
func (dc *DynamicCache) Close() error {
	dc.cancel()

	dc.mu.RLock()
	defer dc.mu.RUnlock()
	return dc.active.Close()
}

// SetValue delega ao cache ativo
func (dc *DynamicCache) SetValue(key string, value string) error {
	return dc.current().SetValue(key, value)
}

// GetValue delega ao cache ativo
func (dc *DynamicCache) GetValue(key string) (string, error) {
	return dc.current().GetValue(key)
}

// DeleteKey delega ao cache ativo
func (dc *DynamicCache) DeleteKey(key string) error {
	return dc.current().DeleteKey(key)
}

// Publish delega ao cache ativo
func (dc *DynamicCache) Publish(channel string, payload []byte) error {
	return dc.current().Publish(channel, payload)
}

// Subscribe mantém uma assinatura viva através das alternâncias entre Redis
// e memória: quando a assinatura ativa cai (ou não existe, no caso da
// memória), uma nova tentativa é feita periodicamente contra o cache ativo.
func (dc *DynamicCache) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	out := make(chan []byte, 64)

	go func() {
		defer close(out)

		for {
			sub, err := dc.current().Subscribe(ctx, channel)
			if err != nil || sub == nil {
				select {
				case <-ctx.Done():
					return
				case <-dc.ctx.Done():
					return
				case <-time.After(5 * time.Second):
					continue
				}
			}

			// Encaminha mensagens até a assinatura cair.
			for payload := range sub {
				select {
				case out <- payload:
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-ctx.Done():
				return
			case <-dc.ctx.Done():
				return
			default:
				// Assinatura caiu; tenta novamente contra o cache ativo.
			}
		}
	}()

	return out, nil
}

func (dc *DynamicCache) current() Cache {
	dc.mu.RLock()
	defer dc.mu.RUnlock()
	return dc.active
}

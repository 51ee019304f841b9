package cache

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisCache encapsula a conexão e operações com o Redis.
type RedisCache struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisCache cria uma nova instância do cache Redis.
// Retorna a interface Cache em vez do tipo concreto.
func NewRedisCache(host string, port int, password string) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       0,
	})

	ctx := context.Background()

	// Testa a conexão.
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("erro ao conectar ao Redis: %w", err)
	}

	return &RedisCache{
		client: client,
		ctx:    ctx,
	}, nil
}

// Ping realiza um health check no Redis, retornando erro se a conexão não estiver saudável.
func (r *RedisCache) Ping() error {
	return r.client.Ping(r.ctx).Err()
}

// Close fecha a conexão com o Redis.
func (r *RedisCache) Close() error {
	return r.client.Close()
}

// SetValue armazena uma string arbitrária no Redis
func (r *RedisCache) SetValue(key string, value string) error {
	return r.client.Set(r.ctx, key, value, 0).Err()
}

// GetValue recupera uma string arbitrária do Redis
func (r *RedisCache) GetValue(key string) (string, error) {
	val, err := r.client.Get(r.ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // Chave não existe
		}
		return "", err
	}
	return val, nil
}

// DeleteKey remove uma chave do Redis
func (r *RedisCache) DeleteKey(key string) error {
	return r.client.Del(r.ctx, key).Err()
}

// Publish publica uma mensagem no canal PubSub do Redis
func (r *RedisCache) Publish(channel string, payload []byte) error {
	return r.client.Publish(r.ctx, channel, payload).Err()
}

// Subscribe assina um canal PubSub do Redis e entrega as mensagens em um
// canal Go até o contexto ser cancelado.
func (r *RedisCache) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	pubsub := r.client.Subscribe(ctx, channel)

	// Confirma a assinatura antes de entregar o canal.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("erro ao assinar canal %s: %w", channel, err)
	}

	out := make(chan []byte, 64)
	go func() {
		defer close(out)
		defer pubsub.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-pubsub.Channel():
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Painel_MES/config"
	"Painel_MES/internal/api"
	"Painel_MES/internal/cache"
	"Painel_MES/internal/database"
	"Painel_MES/internal/persistence"
	"Painel_MES/internal/store"
	"Painel_MES/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func main() {
	log.Println("Iniciando serviço do painel MES...")

	// Carrega configurações
	configPath := getEnv("CONFIG_FILE", "config/app.json")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Aviso: Não foi possível carregar configurações do arquivo: %v. Usando configurações padrão.", err)
		cfg = config.DefaultConfig()
	}

	// Criar o contexto principal para gerenciamento de goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Camada de persistência: durável em arquivo ou efêmera em memória,
	// com fallback automático quando o disco não aceita escrita
	adapter := persistence.NewAdapter(cfg.Persistencia.Mode, cfg.Persistencia.DataDir)
	defer adapter.Close()

	// Armazém autoritativo em memória
	armazem := store.New(adapter, store.NewClockIDGenerator())
	armazem.SetUsers(usuariosDaConfig(cfg.Users))
	armazem.Load()

	// Cache dinâmico: Redis quando disponível, memória como fallback
	cacheProvider := cache.NewDynamicCache(ctx, cache.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
	})
	defer cacheProvider.Close()

	// Auditoria de histórico em PostgreSQL (opcional)
	if cfg.Database.Enabled {
		auditDB, err := database.NewDB(cfg.Database.Audit)
		if err != nil {
			log.Printf("Aviso: Erro ao conectar ao banco de auditoria: %v. Histórico ficará apenas em memória.", err)
		} else {
			defer auditDB.Close()

			auditor, err := database.NewHistoryAuditor(ctx, auditDB)
			if err != nil {
				log.Printf("Aviso: Erro ao iniciar auditor de histórico: %v", err)
			} else {
				defer auditor.Close()
				armazem.SetHistorySink(auditor)
				log.Println("Auditoria de histórico em PostgreSQL habilitada")
			}
		}
	}

	// Gerenciador WebSocket
	hub := websocket.NovoGerenciador(armazem, cacheProvider)
	hub.Iniciar()

	// Servidor WebSocket em porta própria (o Fiber atende a API REST).
	// Quando o transporte realtime não está disponível no ambiente, os
	// clientes degradam para polling periódico das rotas de listagem.
	wsMux := http.NewServeMux()
	wsMux.HandleFunc("/ws", hub.ManipularWS)
	wsServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.WSPort),
		Handler: wsMux,
	}
	go func() {
		log.Printf("Servidor WebSocket ouvindo em %s", wsServer.Addr)
		if err := wsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Aviso: Servidor WebSocket encerrado: %v. Clientes devem usar polling.", err)
		}
	}()

	// API REST
	app := fiber.New(config.LoadFiberConfig(cfg.API))
	app.Use(api.NovoCORS(cfg.Security.CORSOrigins(), cfg.Security.CORSMethods(), cfg.Security.CORSHeaders()))
	if cfg.Security.RateLimit.Enabled {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.Security.RateLimit.RequestsMax,
			Expiration: time.Duration(cfg.Security.RateLimit.WindowSecs) * time.Second,
		}))
	}

	handler := api.NewHandler(armazem, hub)
	handler.RegistrarRotas(app)

	apiAddr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
	go func() {
		log.Printf("API REST ouvindo em %s", apiAddr)
		if err := app.Listen(apiAddr); err != nil {
			log.Fatalf("Erro ao iniciar API REST: %v", err)
		}
	}()

	// Configurar captura de sinais do sistema operacional para encerramento gracioso
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-signalChan
	log.Printf("Recebido sinal %v, iniciando encerramento gracioso...", sig)
	cancel()

	hub.Parar()

	shutdownTimeout := time.Duration(cfg.API.ShutdownTimeout) * time.Second
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Printf("Erro no encerramento da API REST: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Erro no encerramento do servidor WebSocket: %v", err)
	}

	log.Println("Serviço do painel MES encerrado com sucesso")
}

// usuariosDaConfig converte a lista de usuários da configuração
func usuariosDaConfig(users []config.UserConfig) []store.User {
	result := make([]store.User, 0, len(users))
	for _, u := range users {
		result = append(result, store.User{
			Username: u.Username,
			Password: u.Password,
			Role:     u.Role,
		})
	}
	return result
}

// getEnv recupera uma variável de ambiente com fallback.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

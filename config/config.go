package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"Painel_MES/internal/database"
	"Painel_MES/internal/persistence"
)

// AppConfig contém toda a configuração da aplicação
type AppConfig struct {
	API          *APIConfig          `json:"api"`
	Persistencia *PersistenciaConfig `json:"persistence"`
	Redis        *RedisConfig        `json:"redis"`
	Database     *DatabaseConfig     `json:"database"`
	Security     *SecurityConfig     `json:"security"`
	Users        []UserConfig        `json:"users"`
}

// APIConfig contém configurações para a API REST e o servidor WebSocket
type APIConfig struct {
	Port            int    `json:"port"`
	WSPort          int    `json:"ws_port"`
	Host            string `json:"host"`
	ReadTimeout     int    `json:"read_timeout_seconds"`
	WriteTimeout    int    `json:"write_timeout_seconds"`
	ShutdownTimeout int    `json:"shutdown_timeout_seconds"`
}

// PersistenciaConfig seleciona a implantação da camada de persistência:
// "arquivo" (durável) ou "memoria" (efêmera, para ambientes sem disco)
type PersistenciaConfig struct {
	Mode    string `json:"mode"`
	DataDir string `json:"data_dir"`
}

// RedisConfig contém a configuração da ponte de eventos entre instâncias
type RedisConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Password string `json:"password"`
}

// DatabaseConfig contém a configuração do banco de auditoria (opcional)
type DatabaseConfig struct {
	Enabled bool              `json:"enabled"`
	Audit   database.DBConfig `json:"audit"`
}

// UserConfig representa um usuário estático do sistema
type UserConfig struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// DefaultConfig retorna uma configuração padrão
func DefaultConfig() *AppConfig {
	return &AppConfig{
		API: &APIConfig{
			Port:            8080,
			WSPort:          8081,
			Host:            "0.0.0.0",
			ReadTimeout:     30,
			WriteTimeout:    30,
			ShutdownTimeout: 10,
		},
		Persistencia: &PersistenciaConfig{
			Mode:    persistence.ModeFile,
			DataDir: "data",
		},
		Redis: &RedisConfig{
			Host:     "localhost",
			Port:     6379,
			Password: "",
		},
		Database: &DatabaseConfig{
			Enabled: false,
			Audit: database.DBConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "painel",
				Password: "painel",
				Database: "painel_mes",
				SSLMode:  "disable",
			},
		},
		Security: LoadSecurityConfig(),
		Users: []UserConfig{
			{Username: "admin", Password: "admin123", Role: "admin"},
			{Username: "operator", Password: "operator123", Role: "operator"},
			{Username: "manager", Password: "manager123", Role: "manager"},
		},
	}
}

// LoadConfig carrega a configuração de um arquivo
func LoadConfig(configFile string) (*AppConfig, error) {
	// Usa configuração padrão
	config := DefaultConfig()

	// Se o arquivo não for especificado, retorna a configuração padrão
	if configFile == "" {
		return config, nil
	}

	// Verifica se o arquivo existe
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		// Cria o diretório se não existir
		dir := filepath.Dir(configFile)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("erro ao criar diretório de configuração: %w", err)
		}

		// Salva a configuração padrão
		if err := SaveConfig(configFile, config); err != nil {
			return nil, fmt.Errorf("erro ao salvar configuração padrão: %w", err)
		}

		log.Printf("Arquivo de configuração criado em: %s", configFile)
		return config, nil
	}

	// Lê o arquivo de configuração
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler arquivo de configuração: %w", err)
	}

	// Decodifica o JSON
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("erro ao decodificar configuração: %w", err)
	}

	return config, nil
}

// SaveConfig salva a configuração em um arquivo
func SaveConfig(configFile string, config *AppConfig) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("erro ao codificar configuração: %w", err)
	}

	if err := os.WriteFile(configFile, data, 0644); err != nil {
		return fmt.Errorf("erro ao escrever arquivo de configuração: %w", err)
	}

	return nil
}

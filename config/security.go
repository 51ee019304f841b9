package config

import "strings"

// SecurityConfig contém as configurações de segurança da aplicação
type SecurityConfig struct {
	CORS struct {
		AllowOrigins []string `json:"allow_origins"`
		AllowMethods []string `json:"allow_methods"`
		AllowHeaders []string `json:"allow_headers"`
	} `json:"cors"`

	RateLimit struct {
		Enabled     bool `json:"enabled"`
		RequestsMax int  `json:"requests_max"`
		WindowSecs  int  `json:"window_seconds"`
	} `json:"rate_limit"`
}

// LoadSecurityConfig carrega as configurações de segurança
func LoadSecurityConfig() *SecurityConfig {
	config := &SecurityConfig{}

	// CORS permissivo: o painel é servido de origens variadas no chão de fábrica
	config.CORS.AllowOrigins = []string{"*"}
	config.CORS.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.CORS.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}

	// Rate Limit
	config.RateLimit.Enabled = false
	config.RateLimit.RequestsMax = 100
	config.RateLimit.WindowSecs = 60

	return config
}

// CORSOrigins retorna as origens permitidas no formato de cabeçalho HTTP
func (c *SecurityConfig) CORSOrigins() string {
	return strings.Join(c.CORS.AllowOrigins, ", ")
}

// CORSMethods retorna os métodos permitidos no formato de cabeçalho HTTP
func (c *SecurityConfig) CORSMethods() string {
	return strings.Join(c.CORS.AllowMethods, ", ")
}

// CORSHeaders retorna os cabeçalhos permitidos no formato de cabeçalho HTTP
func (c *SecurityConfig) CORSHeaders() string {
	return strings.Join(c.CORS.AllowHeaders, ", ")
}

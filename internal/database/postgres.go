package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// DBConfig contém as configurações de conexão ao PostgreSQL
type DBConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
	SSLMode  string `json:"sslmode"`
}

// DB encapsula a conexão com o PostgreSQL
type DB struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewDB cria uma nova conexão com o PostgreSQL
func NewDB(config DBConfig) (*DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.Database, config.SSLMode)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar ao PostgreSQL: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &DB{
		db:      db,
		timeout: 5 * time.Second,
	}, nil
}

// Close fecha a conexão com o banco
func (d *DB) Close() error {
	return d.db.Close()
}

// Exec executa uma query SQL que não retorna resultados
func (d *DB) Exec(query string, args ...interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	_, err := d.db.ExecContext(ctx, query, args...)
	return err
}

// Select executa uma query e preenche a slice dest com os resultados
func (d *DB) Select(dest interface{}, query string, args ...interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	return d.db.SelectContext(ctx, dest, query, args...)
}

// Get executa uma query e preenche dest com o resultado
func (d *DB) Get(dest interface{}, query string, args ...interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	return d.db.GetContext(ctx, dest, query, args...)
}

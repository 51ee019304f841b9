package database

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"Painel_MES/internal/common"
	"Painel_MES/internal/store"
)

// AuditRecord representa uma linha do histórico de equipamento no banco
type AuditRecord struct {
	ID            int64     `db:"id" json:"id"`
	EquipmentID   int64     `db:"equipment_id" json:"equipment_id"`
	EquipmentName string    `db:"equipment_name" json:"equipment_name"`
	Usuario       string    `db:"usuario" json:"usuario"`
	Valor         string    `db:"valor" json:"valor"`
	TocadoEm      int64     `db:"tocado_em" json:"tocado_em"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// HistoryAuditor grava em lote as entradas de histórico de equipamentos no
// PostgreSQL. A gravação é totalmente assíncrona: a fila nunca bloqueia o
// caminho da requisição e falhas do banco são registradas e engolidas.
type HistoryAuditor struct {
	db           *DB
	queue        chan AuditRecord
	batchSize    int
	flushTimeout time.Duration
	breaker      *common.CircuitBreaker
	wg           sync.WaitGroup
	ctx          context.Context
	cancel       context.CancelFunc
}

// NewHistoryAuditor cria o auditor e garante a tabela de destino
func NewHistoryAuditor(ctx context.Context, db *DB) (*HistoryAuditor, error) {
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS equipment_history (
			id BIGSERIAL PRIMARY KEY,
			equipment_id BIGINT NOT NULL,
			equipment_name TEXT NOT NULL DEFAULT '',
			usuario TEXT NOT NULL,
			valor TEXT NOT NULL,
			tocado_em BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`); err != nil {
		return nil, fmt.Errorf("erro ao criar tabela de auditoria: %w", err)
	}

	auditCtx, cancel := context.WithCancel(ctx)
	a := &HistoryAuditor{
		db:           db,
		queue:        make(chan AuditRecord, 1000),
		batchSize:    100,
		flushTimeout: 5 * time.Second,
		breaker:      common.NewCircuitBreaker("auditoria", 5, 30*time.Second),
		ctx:          auditCtx,
		cancel:       cancel,
	}

	a.wg.Add(1)
	go a.processQueue()

	return a, nil
}

// Record enfileira uma entrada de histórico para gravação em lote.
// Fila cheia descarta a entrada com aviso: o estado em memória continua
// sendo a fonte de verdade do histórico.
func (a *HistoryAuditor) Record(equipmentID int64, equipmentName string, entry store.HistoryEntry) {
	record := AuditRecord{
		EquipmentID:   equipmentID,
		EquipmentName: equipmentName,
		Usuario:       entry.User,
		Valor:         entry.Value,
		TocadoEm:      entry.Time,
	}

	select {
	case a.queue <- record:
	default:
		log.Printf("Aviso: fila de auditoria cheia, descartando entrada do equipamento %d", equipmentID)
	}
}

// Close encerra o auditor gravando as entradas pendentes
func (a *HistoryAuditor) Close() error {
	a.cancel()

	waitChan := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(waitChan)
	}()

	select {
	case <-waitChan:
		return nil
	case <-time.After(10 * time.Second):
		return fmt.Errorf("timeout ao aguardar flush final da auditoria")
	}
}

// processQueue acumula entradas e grava quando o lote enche ou o timer expira
func (a *HistoryAuditor) processQueue() {
	defer a.wg.Done()

	batch := make([]AuditRecord, 0, a.batchSize)
	ticker := time.NewTicker(a.flushTimeout)
	defer ticker.Stop()

	for {
		select {
		case <-a.ctx.Done():
			// Drena o que restou na fila antes de sair.
			for {
				select {
				case record := <-a.queue:
					batch = append(batch, record)
				default:
					a.flush(batch)
					return
				}
			}

		case record := <-a.queue:
			batch = append(batch, record)
			if len(batch) >= a.batchSize {
				a.flush(batch)
				batch = batch[:0]
			}

		case <-ticker.C:
			if len(batch) > 0 {
				a.flush(batch)
				batch = batch[:0]
			}
		}
	}
}

// flush grava um lote de entradas sob proteção do circuit breaker
func (a *HistoryAuditor) flush(batch []AuditRecord) {
	if len(batch) == 0 {
		return
	}

	err := a.breaker.Execute(func() error {
		var sb strings.Builder
		sb.WriteString("INSERT INTO equipment_history (equipment_id, equipment_name, usuario, valor, tocado_em) VALUES ")

		args := make([]interface{}, 0, len(batch)*5)
		for i, record := range batch {
			if i > 0 {
				sb.WriteString(", ")
			}
			base := i * 5
			fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4, base+5)
			args = append(args, record.EquipmentID, record.EquipmentName, record.Usuario, record.Valor, record.TocadoEm)
		}

		return a.db.Exec(sb.String(), args...)
	})

	if err != nil {
		log.Printf("Erro ao gravar lote de auditoria (%d entradas): %v", len(batch), err)
	}
}

// RecentHistory retorna as últimas entradas de auditoria de um equipamento
func (a *HistoryAuditor) RecentHistory(equipmentID int64, limit int) ([]AuditRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	var records []AuditRecord
	err := a.db.Select(&records, `
		SELECT id, equipment_id, equipment_name, usuario, valor, tocado_em, created_at
		FROM equipment_history
		WHERE equipment_id = $1
		ORDER BY tocado_em DESC
		LIMIT $2`, equipmentID, limit)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar histórico de auditoria: %w", err)
	}
	return records, nil
}

package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileAdapter persiste cada tipo de entidade em um arquivo JSON próprio:
// um array de registros no nível raiz, indentado, sobrescrito por inteiro a
// cada mutação. Não há formato incremental nem garantia transacional.
type FileAdapter struct {
	dir string
}

// NewFileAdapter cria o adaptador durável, garantindo o diretório de dados
// e verificando que ele aceita escrita.
func NewFileAdapter(dir string) (*FileAdapter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("erro ao criar diretório de dados: %w", err)
	}

	// Teste de escrita: alguns ambientes de execução montam o disco
	// somente leitura e o MkdirAll não acusa nada.
	probe := filepath.Join(dir, ".escrita")
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		return nil, fmt.Errorf("diretório de dados sem permissão de escrita: %w", err)
	}
	_ = os.Remove(probe)

	return &FileAdapter{dir: dir}, nil
}

// Load lê o arquivo do tipo informado. Arquivo ausente ou JSON malformado
// deixam dest intocado e não retornam erro fatal.
func (f *FileAdapter) Load(kind string, dest interface{}) error {
	data, err := os.ReadFile(f.path(kind))
	if err != nil {
		if os.IsNotExist(err) {
			return nil // primeira execução: coleção vazia
		}
		return fmt.Errorf("erro ao ler arquivo de %s: %w", kind, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("arquivo de %s corrompido, iniciando vazio: %w", kind, err)
	}
	return nil
}

// Save serializa a coleção inteira e sobrescreve o arquivo do tipo
func (f *FileAdapter) Save(kind string, data interface{}) error {
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("erro ao codificar %s: %w", kind, err)
	}

	if err := os.WriteFile(f.path(kind), encoded, 0644); err != nil {
		return fmt.Errorf("erro ao escrever arquivo de %s: %w", kind, err)
	}
	return nil
}

// Close não mantém recursos abertos entre operações
func (f *FileAdapter) Close() error {
	return nil
}

func (f *FileAdapter) path(kind string) string {
	return filepath.Join(f.dir, kind+".json")
}

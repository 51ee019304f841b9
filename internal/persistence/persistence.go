package persistence

import "log"

// Modos de implantação da camada de persistência
const (
	ModeFile   = "arquivo"
	ModeMemory = "memoria"
)

// Adapter define a estratégia de persistência das coleções de entidades.
// O contrato é idêntico nos modos durável e efêmero; apenas a durabilidade
// entre reinícios do processo difere.
type Adapter interface {
	// Load preenche dest com a coleção do tipo informado; arquivo ausente
	// ou corrompido resulta em coleção vazia, nunca em erro fatal
	Load(kind string, dest interface{}) error

	// Save grava a coleção inteira do tipo informado
	Save(kind string, data interface{}) error

	// Close libera recursos da camada de persistência
	Close() error
}

// NewAdapter seleciona a estratégia de persistência conforme o modo
// configurado. Se o modo durável não puder ser inicializado (diretório de
// dados sem permissão de escrita, ambiente sem disco persistente), cai para
// o modo efêmero em memória em vez de impedir a subida do serviço.
func NewAdapter(mode, dataDir string) Adapter {
	if mode == ModeMemory {
		log.Println("Persistência em modo efêmero: estado será perdido ao reiniciar")
		return NewMemoryAdapter()
	}

	file, err := NewFileAdapter(dataDir)
	if err != nil {
		log.Printf("Aviso: persistência em arquivo indisponível: %v. Usando memória como fallback.", err)
		return NewMemoryAdapter()
	}
	log.Printf("Persistência durável em arquivo: %s", dataDir)
	return file
}

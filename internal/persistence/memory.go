package persistence

// MemoryAdapter é a variante efêmera da persistência: Save não tem efeito e
// Load sempre resulta em coleção vazia. Usada onde o ambiente de execução
// não oferece disco persistente gravável.
type MemoryAdapter struct{}

// NewMemoryAdapter cria o adaptador efêmero
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{}
}

// Load não tem o que carregar: o estado começa sempre vazio
func (m *MemoryAdapter) Load(kind string, dest interface{}) error {
	return nil
}

// Save é uma operação sem efeito no modo efêmero
func (m *MemoryAdapter) Save(kind string, data interface{}) error {
	return nil
}

// Close é uma operação sem efeito no modo efêmero
func (m *MemoryAdapter) Close() error {
	return nil
}

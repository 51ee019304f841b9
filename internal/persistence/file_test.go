package persistence

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

type registroTeste struct {
	ID   int64  `json:"id"`
	Nome string `json:"nome"`
}

func TestFileAdapterRoundTrip(t *testing.T) {
	dir := t.TempDir()

	adapter, err := NewFileAdapter(dir)
	if err != nil {
		t.Fatalf("erro ao criar adaptador: %v", err)
	}

	original := []registroTeste{
		{ID: 1, Nome: "Prensa 01"},
		{ID: 2, Nome: "Forno 02"},
	}
	if err := adapter.Save("equipments", original); err != nil {
		t.Fatalf("erro ao salvar: %v", err)
	}

	// Um novo adaptador simula o reinício do processo.
	reiniciado, err := NewFileAdapter(dir)
	if err != nil {
		t.Fatalf("erro ao recriar adaptador: %v", err)
	}

	var carregado []registroTeste
	if err := reiniciado.Load("equipments", &carregado); err != nil {
		t.Fatalf("erro ao carregar: %v", err)
	}
	if !reflect.DeepEqual(original, carregado) {
		t.Fatalf("coleção recarregada difere da original:\n%+v\n%+v", original, carregado)
	}
}

func TestFileAdapterArquivoIndentado(t *testing.T) {
	dir := t.TempDir()

	adapter, err := NewFileAdapter(dir)
	if err != nil {
		t.Fatalf("erro ao criar adaptador: %v", err)
	}
	if err := adapter.Save("lineNames", []registroTeste{{ID: 1, Nome: "Linha A"}}); err != nil {
		t.Fatalf("erro ao salvar: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "lineNames.json"))
	if err != nil {
		t.Fatalf("erro ao ler arquivo: %v", err)
	}
	if data[0] != '[' {
		t.Fatalf("arquivo deve conter um array JSON no nível raiz: %s", data)
	}
	if !bytes.ContainsRune(data, '\n') {
		t.Fatalf("arquivo deve ser indentado: %s", data)
	}
}

func TestFileAdapterArquivoAusente(t *testing.T) {
	adapter, err := NewFileAdapter(t.TempDir())
	if err != nil {
		t.Fatalf("erro ao criar adaptador: %v", err)
	}

	var carregado []registroTeste
	if err := adapter.Load("equipments", &carregado); err != nil {
		t.Fatalf("arquivo ausente não pode ser erro: %v", err)
	}
	if len(carregado) != 0 {
		t.Fatalf("coleção deveria iniciar vazia: %+v", carregado)
	}
}

func TestFileAdapterArquivoCorrompido(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "equipments.json"), []byte("{isso não é um array"), 0644); err != nil {
		t.Fatalf("erro ao preparar arquivo corrompido: %v", err)
	}

	adapter, err := NewFileAdapter(dir)
	if err != nil {
		t.Fatalf("erro ao criar adaptador: %v", err)
	}

	var carregado []registroTeste
	if err := adapter.Load("equipments", &carregado); err == nil {
		t.Fatalf("arquivo corrompido deveria retornar erro para registro em log")
	}
	if len(carregado) != 0 {
		t.Fatalf("coleção deve permanecer vazia após arquivo corrompido: %+v", carregado)
	}
}

func TestNewAdapterFallbackParaMemoria(t *testing.T) {
	// Um arquivo no lugar do diretório de dados impede o modo durável.
	blocker := filepath.Join(t.TempDir(), "bloqueio")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("erro ao preparar bloqueio: %v", err)
	}

	adapter := NewAdapter(ModeFile, filepath.Join(blocker, "data"))
	if _, ok := adapter.(*MemoryAdapter); !ok {
		t.Fatalf("esperado fallback para MemoryAdapter, recebido %T", adapter)
	}
}

func TestMemoryAdapterSemEfeito(t *testing.T) {
	adapter := NewMemoryAdapter()

	if err := adapter.Save("equipments", []registroTeste{{ID: 1}}); err != nil {
		t.Fatalf("Save em memória não pode falhar: %v", err)
	}

	var carregado []registroTeste
	if err := adapter.Load("equipments", &carregado); err != nil {
		t.Fatalf("Load em memória não pode falhar: %v", err)
	}
	if len(carregado) != 0 {
		t.Fatalf("modo efêmero sempre inicia vazio: %+v", carregado)
	}
}

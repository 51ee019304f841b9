package store

import (
	"errors"
	"testing"

	"Painel_MES/internal/persistence"
)

func novoArmazemDeTeste() *Store {
	s := New(persistence.NewMemoryAdapter(), NewSequentialIDGenerator(1))
	s.SetUsers([]User{
		{Username: "admin", Password: "admin123", Role: RoleAdmin},
		{Username: "operator", Password: "operator123", Role: RoleOperator},
	})
	return s
}

func TestInsertEquipmentThenList(t *testing.T) {
	s := novoArmazemDeTeste()

	criado := s.InsertEquipment(Equipment{Name: "Prensa 01", Status: StatusRunning, X: 10, Y: 20})
	if criado.ID != 1 {
		t.Fatalf("ID atribuído pelo servidor esperado 1, recebido %d", criado.ID)
	}

	lista := s.ListEquipments()
	if len(lista) != 1 {
		t.Fatalf("lista esperada com 1 equipamento, recebida com %d", len(lista))
	}
	if lista[0].ID != criado.ID || lista[0].Name != "Prensa 01" || lista[0].Status != StatusRunning {
		t.Fatalf("registro listado difere do criado: %+v", lista[0])
	}
	if lista[0].Options == nil || lista[0].History == nil || lista[0].MaintenanceHistory == nil {
		t.Fatalf("slices do registro devem ser normalizadas para vazias, não nil")
	}
}

func TestListEquipmentsOrderedByCreation(t *testing.T) {
	s := novoArmazemDeTeste()

	s.InsertEquipment(Equipment{Name: "a"})
	s.InsertEquipment(Equipment{Name: "b"})
	s.InsertEquipment(Equipment{Name: "c"})

	lista := s.ListEquipments()
	for i := 1; i < len(lista); i++ {
		if lista[i].ID <= lista[i-1].ID {
			t.Fatalf("lista fora de ordem de criação: %v", lista)
		}
	}
}

func TestRemoveEquipmentIdempotente(t *testing.T) {
	s := novoArmazemDeTeste()
	criado := s.InsertEquipment(Equipment{Name: "Prensa 01"})

	s.RemoveEquipment(criado.ID)
	if len(s.ListEquipments()) != 0 {
		t.Fatalf("equipamento deveria ter sido removido")
	}

	// Remover de novo não é erro.
	s.RemoveEquipment(criado.ID)
	s.RemoveEquipment(999999)
}

func TestMergeEquipmentPreservaCamposNaoTocados(t *testing.T) {
	s := novoArmazemDeTeste()
	criado := s.InsertEquipment(Equipment{Name: "Prensa 01", Memo: "troca de correia pendente", Status: StatusIdle})

	atualizado, err := s.MergeEquipment(criado.ID, map[string]interface{}{"status": StatusRunning})
	if err != nil {
		t.Fatalf("merge falhou: %v", err)
	}
	if atualizado.Status != StatusRunning {
		t.Fatalf("status esperado %q, recebido %q", StatusRunning, atualizado.Status)
	}
	if atualizado.Memo != "troca de correia pendente" {
		t.Fatalf("memo deveria ter sido preservado, recebido %q", atualizado.Memo)
	}
}

func TestMergeEquipmentGuardaDeTipoNasCoordenadas(t *testing.T) {
	s := novoArmazemDeTeste()
	criado := s.InsertEquipment(Equipment{Name: "Prensa 01", X: 42, Y: 7})

	atualizado, err := s.MergeEquipment(criado.ID, map[string]interface{}{"x": "não-é-número", "y": 99.5})
	if err != nil {
		t.Fatalf("merge falhou: %v", err)
	}
	if atualizado.X != 42 {
		t.Fatalf("x com tipo inválido deveria preservar o valor anterior, recebido %v", atualizado.X)
	}
	if atualizado.Y != 99.5 {
		t.Fatalf("y numérico deveria ter sido aceito, recebido %v", atualizado.Y)
	}
}

func TestMergeEquipmentNaoAceitaHistoricoDoCliente(t *testing.T) {
	s := novoArmazemDeTeste()
	criado := s.InsertEquipment(Equipment{Name: "Prensa 01"})

	forjado := []map[string]interface{}{{"user": "intruso", "time": 1, "value": "forjado"}}
	atualizado, err := s.MergeEquipment(criado.ID, map[string]interface{}{"history": forjado})
	if err != nil {
		t.Fatalf("merge falhou: %v", err)
	}

	// Apenas a entrada do próprio toque deve existir.
	if len(atualizado.History) != 1 {
		t.Fatalf("histórico esperado com 1 entrada, recebido com %d", len(atualizado.History))
	}
	if atualizado.History[0].User == "intruso" {
		t.Fatalf("histórico enviado pelo cliente não pode ser aceito")
	}
}

func TestMergeEquipmentRegistraHistoricoACadaToque(t *testing.T) {
	s := novoArmazemDeTeste()
	relogio := int64(1000)
	s.SetClock(func() int64 { relogio += 10; return relogio })

	criado := s.InsertEquipment(Equipment{Name: "Prensa 01", Status: StatusIdle})

	// O toque registra histórico mesmo sem mudança de status.
	primeiro, err := s.MergeEquipment(criado.ID, map[string]interface{}{"memo": "a", "user": "admin"})
	if err != nil {
		t.Fatalf("merge falhou: %v", err)
	}
	if len(primeiro.History) != 1 {
		t.Fatalf("histórico esperado com 1 entrada após o primeiro toque, recebido %d", len(primeiro.History))
	}
	if primeiro.History[0].User != "admin" || primeiro.History[0].Value != StatusIdle {
		t.Fatalf("entrada de histórico inesperada: %+v", primeiro.History[0])
	}

	segundo, err := s.MergeEquipment(criado.ID, map[string]interface{}{"status": StatusMaint})
	if err != nil {
		t.Fatalf("merge falhou: %v", err)
	}
	if len(segundo.History) != 2 {
		t.Fatalf("histórico esperado com 2 entradas, recebido %d", len(segundo.History))
	}
	if segundo.History[1].Value != StatusMaint {
		t.Fatalf("entrada deve registrar o status vigente após o merge, recebido %q", segundo.History[1].Value)
	}
	if segundo.History[1].Time < segundo.History[0].Time {
		t.Fatalf("tempo do histórico deve ser não-decrescente: %d < %d",
			segundo.History[1].Time, segundo.History[0].Time)
	}
}

func TestMergeEquipmentNaoEncontrado(t *testing.T) {
	s := novoArmazemDeTeste()

	if _, err := s.MergeEquipment(12345, map[string]interface{}{"status": StatusRunning}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("esperado ErrNotFound, recebido %v", err)
	}
}

func TestMergeEquipmentOpcoesSomenteArray(t *testing.T) {
	s := novoArmazemDeTeste()
	criado := s.InsertEquipment(Equipment{Name: "Prensa 01", Options: []string{"auto", "manual"}})

	atualizado, err := s.MergeEquipment(criado.ID, map[string]interface{}{"options": "não-é-array"})
	if err != nil {
		t.Fatalf("merge falhou: %v", err)
	}
	if len(atualizado.Options) != 2 {
		t.Fatalf("options com tipo inválido deveria preservar o valor anterior: %v", atualizado.Options)
	}

	atualizado, err = s.MergeEquipment(criado.ID, map[string]interface{}{"options": []interface{}{"auto"}})
	if err != nil {
		t.Fatalf("merge falhou: %v", err)
	}
	if len(atualizado.Options) != 1 || atualizado.Options[0] != "auto" {
		t.Fatalf("options array deveria substituir o valor anterior: %v", atualizado.Options)
	}
}

func TestProcessTitleBlocosComIDUnico(t *testing.T) {
	s := novoArmazemDeTeste()
	criado := s.InsertProcessTitle(ProcessTitle{Title: "Estampagem"})

	blocos := []interface{}{
		map[string]interface{}{"id": 1, "yieldValue": 90.0},
		map[string]interface{}{"id": 1, "yieldValue": 50.0},
		map[string]interface{}{"id": 2, "yieldValue": 80.0},
	}
	atualizado, err := s.MergeProcessTitle(criado.ID, map[string]interface{}{"productionBlocks": blocos})
	if err != nil {
		t.Fatalf("merge falhou: %v", err)
	}
	if len(atualizado.ProductionBlocks) != 2 {
		t.Fatalf("blocos com ID duplicado devem ser descartados: %+v", atualizado.ProductionBlocks)
	}
	if atualizado.ProductionBlocks[0].YieldValue != 90.0 {
		t.Fatalf("a primeira ocorrência de cada ID deve ser mantida: %+v", atualizado.ProductionBlocks[0])
	}
}

func TestAssignmentTablePadroesDeCriacao(t *testing.T) {
	s := novoArmazemDeTeste()

	criada := s.InsertAssignmentTable(AssignmentTable{"team": "turno A"})
	if criada["x"] != float64(100) || criada["y"] != float64(100) {
		t.Fatalf("posição padrão esperada (100,100): %+v", criada)
	}
	if criada["width"] != float64(400) || criada["height"] != float64(300) {
		t.Fatalf("tamanho padrão esperado 400x300: %+v", criada)
	}
	if criada["team"] != "turno A" {
		t.Fatalf("campos arbitrários do cliente devem ser mantidos: %+v", criada)
	}

	// Valores informados não são sobrescritos pelos padrões.
	outra := s.InsertAssignmentTable(AssignmentTable{"x": float64(5)})
	if outra["x"] != float64(5) {
		t.Fatalf("x informado não deveria ser sobrescrito: %+v", outra)
	}
}

func TestAssignmentTableMergeProtegeID(t *testing.T) {
	s := novoArmazemDeTeste()
	criada := s.InsertAssignmentTable(nil)
	id := criada["id"].(int64)

	atualizada, err := s.MergeAssignmentTable(id, map[string]interface{}{"id": float64(777), "status": "ocupada"})
	if err != nil {
		t.Fatalf("merge falhou: %v", err)
	}
	if atualizada["id"] != id {
		t.Fatalf("ID não pode ser sobrescrito pelo cliente: %+v", atualizada)
	}
	if atualizada["status"] != "ocupada" {
		t.Fatalf("campo novo deveria ter sido unido: %+v", atualizada)
	}
}

func TestAuthenticateTriplaExata(t *testing.T) {
	s := novoArmazemDeTeste()

	if _, err := s.Authenticate("admin", "admin123", RoleAdmin); err != nil {
		t.Fatalf("tripla correta deveria autenticar: %v", err)
	}

	// Usuário e senha corretos com papel errado falham.
	if _, err := s.Authenticate("admin", "admin123", RoleOperator); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("papel errado deveria falhar com ErrUnauthorized, recebido %v", err)
	}
	if _, err := s.Authenticate("admin", "errada", RoleAdmin); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("senha errada deveria falhar com ErrUnauthorized, recebido %v", err)
	}
}

func TestClockIDGeneratorEstritamenteCrescente(t *testing.T) {
	g := NewClockIDGenerator()

	anterior := int64(0)
	for i := 0; i < 1000; i++ {
		id := g.Next()
		if id <= anterior {
			t.Fatalf("IDs devem ser estritamente crescentes: %d depois de %d", id, anterior)
		}
		anterior = id
	}
}

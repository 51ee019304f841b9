package store

import (
	"encoding/json"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"Painel_MES/internal/persistence"
)

// Tipos de entidade persistidos pelo armazém
const (
	KindEquipments       = "equipments"
	KindProcessTitles    = "processTitles"
	KindLineNames        = "lineNames"
	KindAssignmentTables = "assignmentTables"
)

var (
	// ErrNotFound indica que o registro solicitado não existe no armazém
	ErrNotFound = errors.New("registro não encontrado")

	// ErrUnauthorized indica falha na verificação de credenciais
	ErrUnauthorized = errors.New("credenciais inválidas")
)

// HistorySink recebe entradas de histórico para gravação externa (auditoria).
// A gravação nunca pode bloquear o caminho da requisição.
type HistorySink interface {
	Record(equipmentID int64, equipmentName string, entry HistoryEntry)
}

// Store é o armazém autoritativo em memória de todas as entidades do painel.
// Um único mutex serializa as mutações, preservando a semântica de
// "uma mutação por vez" do modelo de requisições.
type Store struct {
	mutex   sync.Mutex
	ids     IDGenerator
	persist persistence.Adapter
	now     func() int64

	equipments       map[int64]*Equipment
	processTitles    map[int64]*ProcessTitle
	lineNames        map[int64]*LineName
	assignmentTables map[int64]AssignmentTable
	users            []User

	historySink HistorySink
}

// New cria um armazém vazio com a estratégia de persistência informada
func New(persist persistence.Adapter, ids IDGenerator) *Store {
	return &Store{
		ids:              ids,
		persist:          persist,
		now:              func() int64 { return time.Now().UnixMilli() },
		equipments:       make(map[int64]*Equipment),
		processTitles:    make(map[int64]*ProcessTitle),
		lineNames:        make(map[int64]*LineName),
		assignmentTables: make(map[int64]AssignmentTable),
	}
}

// SetClock substitui a fonte de tempo das entradas de histórico (uso em testes)
func (s *Store) SetClock(now func() int64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.now = now
}

// SetHistorySink registra o destino de auditoria das entradas de histórico
func (s *Store) SetHistorySink(sink HistorySink) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.historySink = sink
}

// SetUsers define a lista estática de usuários do sistema
func (s *Store) SetUsers(users []User) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.users = append([]User(nil), users...)
}

// Authenticate verifica a tripla exata usuário/senha/papel.
// Não há emissão de sessão obrigatória: a API aceita mutações sem token.
func (s *Store) Authenticate(username, password, role string) (User, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, u := range s.users {
		if u.Username == username && u.Password == password && u.Role == role {
			return u, nil
		}
	}
	return User{}, ErrUnauthorized
}

// Load carrega todas as coleções da camada de persistência.
// Arquivo ausente ou corrompido resulta em coleção vazia, nunca em falha.
func (s *Store) Load() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var equipments []Equipment
	if err := s.persist.Load(KindEquipments, &equipments); err != nil {
		log.Printf("Aviso: falha ao carregar %s: %v", KindEquipments, err)
	}
	for i := range equipments {
		e := equipments[i]
		normalizeEquipment(&e)
		s.equipments[e.ID] = &e
	}

	var titles []ProcessTitle
	if err := s.persist.Load(KindProcessTitles, &titles); err != nil {
		log.Printf("Aviso: falha ao carregar %s: %v", KindProcessTitles, err)
	}
	for i := range titles {
		t := titles[i]
		normalizeProcessTitle(&t)
		s.processTitles[t.ID] = &t
	}

	var lines []LineName
	if err := s.persist.Load(KindLineNames, &lines); err != nil {
		log.Printf("Aviso: falha ao carregar %s: %v", KindLineNames, err)
	}
	for i := range lines {
		l := lines[i]
		s.lineNames[l.ID] = &l
	}

	var tables []AssignmentTable
	if err := s.persist.Load(KindAssignmentTables, &tables); err != nil {
		log.Printf("Aviso: falha ao carregar %s: %v", KindAssignmentTables, err)
	}
	for _, t := range tables {
		id, ok := asInt64(t["id"])
		if !ok {
			continue // registro sem id numérico é descartado
		}
		t["id"] = id
		s.assignmentTables[id] = t
	}

	log.Printf("Armazém carregado: %d equipamentos, %d títulos, %d linhas, %d tabelas",
		len(s.equipments), len(s.processTitles), len(s.lineNames), len(s.assignmentTables))
}

// Save serializa a coleção inteira do tipo informado para a persistência.
// Falhas de E/S são registradas e engolidas: o estado em memória continua
// sendo a fonte de verdade pelo resto da vida do processo.
func (s *Store) Save(kind string) {
	var data interface{}
	switch kind {
	case KindEquipments:
		data = s.ListEquipments()
	case KindProcessTitles:
		data = s.ListProcessTitles()
	case KindLineNames:
		data = s.ListLineNames()
	case KindAssignmentTables:
		data = s.ListAssignmentTables()
	default:
		log.Printf("Aviso: tipo de entidade desconhecido para salvar: %s", kind)
		return
	}

	if err := s.persist.Save(kind, data); err != nil {
		log.Printf("Erro ao salvar %s: %v", kind, err)
	}
}

// ---- Equipamentos ----

// ListEquipments retorna todos os equipamentos em ordem de criação
func (s *Store) ListEquipments() []Equipment {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	result := make([]Equipment, 0, len(s.equipments))
	for _, e := range s.equipments {
		result = append(result, cloneEquipment(e))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// GetEquipment retorna um equipamento pelo ID
func (s *Store) GetEquipment(id int64) (Equipment, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	e, ok := s.equipments[id]
	if !ok {
		return Equipment{}, ErrNotFound
	}
	return cloneEquipment(e), nil
}

// InsertEquipment insere um novo equipamento com ID atribuído pelo servidor
func (s *Store) InsertEquipment(e Equipment) Equipment {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	e.ID = s.ids.Next()
	normalizeEquipment(&e)
	s.equipments[e.ID] = &e
	return cloneEquipment(&e)
}

// equipmentMergeRules define, por campo, a política de aceitação do merge
// parcial de equipamentos: campos numéricos e de texto só são aceitos quando
// o valor recebido tem o tipo esperado; caso contrário o valor anterior é
// preservado. O histórico nunca é aceito do cliente.
var equipmentMergeRules = map[string]func(e *Equipment, v interface{}){
	"name": func(e *Equipment, v interface{}) {
		if str, ok := asString(v); ok {
			e.Name = str
		}
	},
	"iconUrl": func(e *Equipment, v interface{}) {
		if str, ok := asString(v); ok {
			e.IconURL = str
		}
	},
	"x": func(e *Equipment, v interface{}) {
		if n, ok := asNumber(v); ok {
			e.X = n
		}
	},
	"y": func(e *Equipment, v interface{}) {
		if n, ok := asNumber(v); ok {
			e.Y = n
		}
	},
	"status": func(e *Equipment, v interface{}) {
		if str, ok := asString(v); ok {
			e.Status = str
		}
	},
	"memo": func(e *Equipment, v interface{}) {
		if str, ok := asString(v); ok {
			e.Memo = str
		}
	},
	"selectedOption": func(e *Equipment, v interface{}) {
		if str, ok := asString(v); ok {
			e.SelectedOption = str
		}
	},
	"options": func(e *Equipment, v interface{}) {
		var options []string
		if decodeInto(v, &options) {
			e.Options = options
		}
	},
	"maintenanceHistory": func(e *Equipment, v interface{}) {
		var entries []MaintenanceEntry
		if decodeInto(v, &entries) {
			e.MaintenanceHistory = entries
		}
	},
}

// MergeEquipment aplica um merge parcial guiado por tipo e registra uma
// entrada de histórico a cada toque, tenha o status mudado ou não.
func (s *Store) MergeEquipment(id int64, partial map[string]interface{}) (Equipment, error) {
	s.mutex.Lock()

	e, ok := s.equipments[id]
	if !ok {
		s.mutex.Unlock()
		return Equipment{}, ErrNotFound
	}

	for field, value := range partial {
		if rule, ok := equipmentMergeRules[field]; ok {
			rule(e, value)
		}
	}

	user := "desconhecido"
	if str, ok := asString(partial["user"]); ok && str != "" {
		user = str
	}
	entry := HistoryEntry{User: user, Time: s.now(), Value: e.Status}
	e.History = append(e.History, entry)

	result := cloneEquipment(e)
	sink := s.historySink
	s.mutex.Unlock()

	if sink != nil {
		sink.Record(result.ID, result.Name, entry)
	}
	return result, nil
}

// RemoveEquipment remove um equipamento; remover um ID inexistente é sucesso
func (s *Store) RemoveEquipment(id int64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.equipments, id)
}

// ---- Títulos de processo ----

// ListProcessTitles retorna todos os títulos de processo em ordem de criação
func (s *Store) ListProcessTitles() []ProcessTitle {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	result := make([]ProcessTitle, 0, len(s.processTitles))
	for _, t := range s.processTitles {
		result = append(result, cloneProcessTitle(t))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// GetProcessTitle retorna um título de processo pelo ID
func (s *Store) GetProcessTitle(id int64) (ProcessTitle, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	t, ok := s.processTitles[id]
	if !ok {
		return ProcessTitle{}, ErrNotFound
	}
	return cloneProcessTitle(t), nil
}

// InsertProcessTitle insere um novo título de processo com ID do servidor
func (s *Store) InsertProcessTitle(t ProcessTitle) ProcessTitle {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	t.ID = s.ids.Next()
	normalizeProcessTitle(&t)
	s.processTitles[t.ID] = &t
	return cloneProcessTitle(&t)
}

// processTitleMergeRules define a política de merge parcial de títulos
var processTitleMergeRules = map[string]func(t *ProcessTitle, v interface{}){
	"title": func(t *ProcessTitle, v interface{}) {
		if str, ok := asString(v); ok {
			t.Title = str
		}
	},
	"x": func(t *ProcessTitle, v interface{}) {
		if n, ok := asNumber(v); ok {
			t.X = n
		}
	},
	"y": func(t *ProcessTitle, v interface{}) {
		if n, ok := asNumber(v); ok {
			t.Y = n
		}
	},
	"team": func(t *ProcessTitle, v interface{}) {
		if str, ok := asString(v); ok {
			t.Team = str
		}
	},
	"yieldValue": func(t *ProcessTitle, v interface{}) {
		if n, ok := asNumber(v); ok {
			t.YieldValue = n
		}
	},
	"secondValue": func(t *ProcessTitle, v interface{}) {
		if n, ok := asNumber(v); ok {
			t.SecondValue = n
		}
	},
	"productionBlocks": func(t *ProcessTitle, v interface{}) {
		var blocks []ProductionBlock
		if decodeInto(v, &blocks) {
			t.ProductionBlocks = dedupeBlocks(blocks)
		}
	},
	"maintenanceHistory": func(t *ProcessTitle, v interface{}) {
		var entries []MaintenanceEntry
		if decodeInto(v, &entries) {
			t.MaintenanceHistory = entries
		}
	},
	"history": func(t *ProcessTitle, v interface{}) {
		var entries []HistoryEntry
		if decodeInto(v, &entries) {
			t.History = entries
		}
	},
}

// MergeProcessTitle aplica um merge parcial a um título de processo
func (s *Store) MergeProcessTitle(id int64, partial map[string]interface{}) (ProcessTitle, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	t, ok := s.processTitles[id]
	if !ok {
		return ProcessTitle{}, ErrNotFound
	}

	for field, value := range partial {
		if rule, ok := processTitleMergeRules[field]; ok {
			rule(t, value)
		}
	}
	return cloneProcessTitle(t), nil
}

// RemoveProcessTitle remove um título de processo (idempotente)
func (s *Store) RemoveProcessTitle(id int64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.processTitles, id)
}

// ---- Nomes de linha ----

// ListLineNames retorna todos os nomes de linha em ordem de criação
func (s *Store) ListLineNames() []LineName {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	result := make([]LineName, 0, len(s.lineNames))
	for _, l := range s.lineNames {
		result = append(result, *l)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// InsertLineName insere um novo nome de linha com ID do servidor
func (s *Store) InsertLineName(l LineName) LineName {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	l.ID = s.ids.Next()
	s.lineNames[l.ID] = &l
	return l
}

// MergeLineName aplica um merge parcial a um nome de linha
func (s *Store) MergeLineName(id int64, partial map[string]interface{}) (LineName, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	l, ok := s.lineNames[id]
	if !ok {
		return LineName{}, ErrNotFound
	}

	if str, ok := asString(partial["name"]); ok {
		l.Name = str
	}
	if n, ok := asNumber(partial["x"]); ok {
		l.X = n
	}
	if n, ok := asNumber(partial["y"]); ok {
		l.Y = n
	}
	return *l, nil
}

// RemoveLineName remove um nome de linha (idempotente)
func (s *Store) RemoveLineName(id int64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.lineNames, id)
}

// ---- Tabelas de atribuição ----

// ListAssignmentTables retorna todas as tabelas em ordem de criação
func (s *Store) ListAssignmentTables() []AssignmentTable {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	ids := make([]int64, 0, len(s.assignmentTables))
	for id := range s.assignmentTables {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := make([]AssignmentTable, 0, len(ids))
	for _, id := range ids {
		result = append(result, cloneTable(s.assignmentTables[id]))
	}
	return result
}

// InsertAssignmentTable insere uma tabela com ID do servidor e os valores
// padrão de posição e tamanho quando ausentes no corpo da requisição.
func (s *Store) InsertAssignmentTable(fields AssignmentTable) AssignmentTable {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	t := cloneTable(fields)
	if t == nil {
		t = AssignmentTable{}
	}
	if _, ok := asNumber(t["x"]); !ok {
		t["x"] = float64(100)
	}
	if _, ok := asNumber(t["y"]); !ok {
		t["y"] = float64(100)
	}
	if _, ok := asNumber(t["width"]); !ok {
		t["width"] = float64(400)
	}
	if _, ok := asNumber(t["height"]); !ok {
		t["height"] = float64(300)
	}
	id := s.ids.Next()
	t["id"] = id
	s.assignmentTables[id] = t
	return cloneTable(t)
}

// MergeAssignmentTable faz a união rasa dos campos recebidos sobre o registro
// armazenado; o ID nunca é sobrescrito pelo cliente.
func (s *Store) MergeAssignmentTable(id int64, partial map[string]interface{}) (AssignmentTable, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	t, ok := s.assignmentTables[id]
	if !ok {
		return nil, ErrNotFound
	}

	for field, value := range partial {
		if field == "id" {
			continue
		}
		t[field] = value
	}
	return cloneTable(t), nil
}

// RemoveAssignmentTable remove uma tabela (idempotente)
func (s *Store) RemoveAssignmentTable(id int64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.assignmentTables, id)
}

// ---- Auxiliares ----

func normalizeEquipment(e *Equipment) {
	if e.Options == nil {
		e.Options = []string{}
	}
	if e.MaintenanceHistory == nil {
		e.MaintenanceHistory = []MaintenanceEntry{}
	}
	if e.History == nil {
		e.History = []HistoryEntry{}
	}
}

func normalizeProcessTitle(t *ProcessTitle) {
	if t.ProductionBlocks == nil {
		t.ProductionBlocks = []ProductionBlock{}
	} else {
		t.ProductionBlocks = dedupeBlocks(t.ProductionBlocks)
	}
	if t.MaintenanceHistory == nil {
		t.MaintenanceHistory = []MaintenanceEntry{}
	}
	if t.History == nil {
		t.History = []HistoryEntry{}
	}
}

// dedupeBlocks garante IDs únicos dentro dos blocos de produção de um título,
// mantendo a primeira ocorrência de cada ID.
func dedupeBlocks(blocks []ProductionBlock) []ProductionBlock {
	seen := make(map[int64]bool, len(blocks))
	result := make([]ProductionBlock, 0, len(blocks))
	for _, b := range blocks {
		if seen[b.ID] {
			continue
		}
		seen[b.ID] = true
		result = append(result, b)
	}
	return result
}

func cloneEquipment(e *Equipment) Equipment {
	c := *e
	c.Options = append([]string(nil), e.Options...)
	c.MaintenanceHistory = append([]MaintenanceEntry(nil), e.MaintenanceHistory...)
	c.History = append([]HistoryEntry(nil), e.History...)
	return c
}

func cloneProcessTitle(t *ProcessTitle) ProcessTitle {
	c := *t
	c.ProductionBlocks = append([]ProductionBlock(nil), t.ProductionBlocks...)
	c.MaintenanceHistory = append([]MaintenanceEntry(nil), t.MaintenanceHistory...)
	c.History = append([]HistoryEntry(nil), t.History...)
	return c
}

func cloneTable(t AssignmentTable) AssignmentTable {
	if t == nil {
		return nil
	}
	c := make(AssignmentTable, len(t))
	for k, v := range t {
		c[k] = v
	}
	return c
}

// asString aceita apenas valores de texto
func asString(v interface{}) (string, bool) {
	str, ok := v.(string)
	return str, ok
}

// asNumber aceita qualquer representação numérica vinda do JSON
func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// asInt64 converte um valor JSON numérico para ID
func asInt64(v interface{}) (int64, bool) {
	if n, ok := asNumber(v); ok {
		return int64(n), true
	}
	return 0, false
}

// decodeInto reaproveita o codec JSON para validar a forma de um sub-campo:
// o valor só é aceito quando decodifica integralmente no tipo de destino.
func decodeInto(v interface{}, dest interface{}) bool {
	if v == nil {
		return false
	}
	data, err := json.Marshal(v)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

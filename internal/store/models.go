// models.go

package store

// StatusEquipamento define os status possíveis de um equipamento
const (
	StatusRunning = "running"
	StatusStopped = "stopped"
	StatusMaint   = "maint"
	StatusIdle    = "idle"
)

// Papéis de usuário do sistema
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
	RoleManager  = "manager"
)

// HistoryEntry representa uma entrada no histórico de toques de um registro
type HistoryEntry struct {
	User  string `json:"user"`
	Time  int64  `json:"time"`
	Value string `json:"value"`
}

// MaintenanceEntry representa um registro de manutenção de um equipamento
type MaintenanceEntry struct {
	Description string `json:"description"`
	EqNo        string `json:"eqNo"`
	Time        int64  `json:"time"`
}

// ProductionBlock representa um bloco de produção dentro de um título de processo
type ProductionBlock struct {
	ID          int64   `json:"id"`
	YieldValue  float64 `json:"yieldValue"`
	SecondValue float64 `json:"secondValue"`
}

// Equipment representa um equipamento exibido no painel
type Equipment struct {
	ID                 int64              `json:"id"`
	Name               string             `json:"name"`
	IconURL            string             `json:"iconUrl"`
	X                  float64            `json:"x"`
	Y                  float64            `json:"y"`
	Status             string             `json:"status"`
	Memo               string             `json:"memo"`
	Options            []string           `json:"options"`
	SelectedOption     string             `json:"selectedOption"`
	MaintenanceHistory []MaintenanceEntry `json:"maintenanceHistory"`
	History            []HistoryEntry     `json:"history"`
}

// ProcessTitle representa um bloco de título de processo no painel
type ProcessTitle struct {
	ID                 int64              `json:"id"`
	Title              string             `json:"title"`
	X                  float64            `json:"x"`
	Y                  float64            `json:"y"`
	Team               string             `json:"team"`
	YieldValue         float64            `json:"yieldValue"`
	SecondValue        float64            `json:"secondValue"`
	ProductionBlocks   []ProductionBlock  `json:"productionBlocks"`
	MaintenanceHistory []MaintenanceEntry `json:"maintenanceHistory"`
	History            []HistoryEntry     `json:"history"`
}

// LineName representa um rótulo de nome de linha no painel
type LineName struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// AssignmentTable representa uma tabela de atribuição no painel.
// Além dos campos fixos de posição e tamanho, o front-end envia campos
// arbitrários (team, status, lineName), portanto o registro é um objeto JSON.
type AssignmentTable map[string]interface{}

// User representa um usuário estático do sistema (sem mutação via API)
type User struct {
	Username string `json:"username"`
	Password string `json:"-"`
	Role     string `json:"role"`
}

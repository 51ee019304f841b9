package websocket

// Nomes dos eventos do canal de broadcast
const (
	EventoEquipmentAdded    = "equipmentAdded"
	EventoEquipmentUpdated  = "equipmentUpdated"
	EventoEquipmentDeleted  = "equipmentDeleted"
	EventoStatusUpdate      = "statusUpdate"
	EventoUserCount         = "userCount"
	EventoInitialEquipments = "initialEquipments"
)

// Evento representa a mensagem completa enviada pelo WebSocket
type Evento struct {
	Nome  string      `json:"event"`
	Dados interface{} `json:"data"`
}

// ComandoStatus representa o comando de mudança de status enviado pelo
// front-end via WebSocket
type ComandoStatus struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
	User   string `json:"user"`
}

// envelopeRemoto embala um evento para a ponte Redis entre instâncias;
// a origem permite descartar o eco da própria publicação.
type envelopeRemoto struct {
	Origem string `json:"origin"`
	Evento Evento `json:"event"`
}

package api

import (
	"encoding/json"
)

// Типы сообщений сервер -> клиент
const (
	TypeInit    = "INIT"    // полная карта + текущее состояние
	TypeUpdate  = "UPDATE"  // один тик
	TypeStopped = "STOPPED" // симуляция остановлена, новых тиков не будет
)

// Действия клиента
const (
	ActionInit = "INIT" // повторно прислать карту
	ActionPing = "PING"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// На каждый тик приходит UPDATE; карта (Grid, Map) есть только в INIT.
type ServerResponse struct {
	// Type тип сообщения: INIT, UPDATE или STOPPED.
	Type string `json:"type"`

	// RunID идентификатор запуска. Меняется при каждом старте сервера,
	// по нему клиент понимает, что симуляция началась заново.
	RunID string `json:"runId"`

	// Tick номер тика. 0 - состояние до первого шага.
	Tick uint64 `json:"tick"`

	// Grid метаданные о размере всей карты.
	Grid *GridMeta `json:"grid,omitempty"`

	// Map все клетки планировки (только в INIT).
	Map []TileView `json:"map,omitempty"`

	Shopper *AgentView `json:"shopper,omitempty"`
	Pursuer *AgentView `json:"pursuer,omitempty"`

	// Collided true, если на этом тике покупателя поймали.
	Collided bool `json:"collided,omitempty"`
	Respawns int  `json:"respawns"`

	// Logs события тика (поимки).
	Logs []LogEntry `json:"logs,omitempty"`

	// Legend - только в INIT: чем рисовать известные символы планировки.
	Legend []LegendEntry `json:"legend,omitempty"`
}

// LegendEntry описывает один символ планировки. Символы не из легенды - декоративный пол.
type LegendEntry struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Terrain  string `json:"terrain"`
	Color    string `json:"color"`
	Walkable bool   `json:"walkable"`
}

// GridMeta содержит общие размеры карты, чтобы клиент знал,
// какую сетку для рендеринга нужно подготовить.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TileView это DTO для одной клетки планировки.
type TileView struct {
	X int `json:"x"`
	Y int `json:"y"`

	// Symbol и Color - визуальное представление клетки (e.g. "#" для стены).
	Symbol string `json:"symbol"`
	Color  string `json:"color"`

	// Terrain - вид клетки: floor, wall, shelf, checkout.
	Terrain string `json:"terrain"`

	// IsWall true, если по клетке нельзя пройти.
	IsWall bool `json:"isWall"`

	// Zone отдел, к которому относится клетка (пусто для проходов).
	Zone string `json:"zone,omitempty"`
}

// AgentView это DTO для покупателя или призрака.
type AgentView struct {
	Pos PositionView `json:"pos"`

	// Zone, Avatar и Visit заполняются только для покупателя.
	Zone   string `json:"zone,omitempty"`
	Avatar int    `json:"avatar"`
	Visit  int    `json:"visit,omitempty"`
}

type PositionView struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// LogEntry представляет одну запись в логе событий.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, CATCH
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Action название действия: INIT или PING.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Сейчас не используется.
	Payload json.RawMessage `json:"payload,omitempty"`
}

package server

import (
	"net/http"

	"github.com/mkoeppel/Markov-Market/internal/engine"
)

// DebugHandler предоставляет доступ к внутреннему состоянию симуляции
type DebugHandler struct {
	srv *Server
}

func NewDebugHandler(s *Server) *DebugHandler {
	return &DebugHandler{srv: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/stats", h.handleStats)
	mux.HandleFunc("/debug/matrix", h.handleMatrix)
}

// StatsView - ответ /debug/stats
type StatsView struct {
	Ticks       uint64             `json:"ticks"`
	Collisions  uint64             `json:"collisions"`
	Subscribers int                `json:"subscribers"`
	Dropped     uint64             `json:"dropped"`
	Zones       []engine.ZoneShare `json:"zones"`
}

// /debug/stats - доля тиков по зонам против стационарного распределения цепи
func (h *DebugHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	s := h.srv
	writeJSON(w, StatsView{
		Ticks:       s.Stats.Total(),
		Collisions:  s.Stats.Collisions(),
		Subscribers: s.Hub.SubscriberCount(),
		Dropped:     s.Hub.Dropped(),
		Zones:       s.Stats.Compare(s.Market.Model.Zones(), s.stationary),
	})
}

// RowView - строка матрицы переходов
type RowView struct {
	Zone string    `json:"zone"`
	Row  []float64 `json:"row"`
}

// MatrixView - ответ /debug/matrix
type MatrixView struct {
	Order      []string           `json:"order"`
	Rows       []RowView          `json:"rows"`
	Stationary map[string]float64 `json:"stationary"`
}

// /debug/matrix - канонический порядок зон, матрица переходов и ее стационарное распределение
func (h *DebugHandler) handleMatrix(w http.ResponseWriter, r *http.Request) {
	model := h.srv.Market.Model

	view := MatrixView{Stationary: make(map[string]float64, len(h.srv.stationary))}
	for _, zone := range model.Zones() {
		row, err := model.Row(zone)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		view.Order = append(view.Order, string(zone))
		view.Rows = append(view.Rows, RowView{Zone: string(zone), Row: row})
	}
	for zone, p := range h.srv.stationary {
		view.Stationary[string(zone)] = p
	}
	writeJSON(w, view)
}

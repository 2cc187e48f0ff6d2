package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/mkoeppel/Markov-Market/internal/domain"
	"github.com/mkoeppel/Markov-Market/internal/engine"
	"github.com/mkoeppel/Markov-Market/internal/network"
	"github.com/mkoeppel/Markov-Market/internal/version"
	"github.com/mkoeppel/Markov-Market/pkg/logger"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

// Deps - все, что сервер читает у запущенной симуляции.
// Сам сервер симуляцию не тикает: это делает Runner в своей горутине.
type Deps struct {
	Hub    *network.Broadcaster
	Market engine.Market
	Latest *engine.Latest
	Stats  *engine.Occupancy
	Stop   *engine.StopFlag
	RunID  string
	Seed   int64
}

type Server struct {
	Deps
	Port string

	stationary map[domain.ZoneName]float64
	log        *logrus.Entry
}

func New(deps Deps, port string) *Server {
	return &Server{
		Deps:       deps,
		Port:       port,
		stationary: deps.Market.Model.Stationary(),
		log:        logger.Component("http").WithField("run_id", deps.RunID),
	}
}

// Handler собирает все роуты. Отдельно от Run, чтобы тесты могли поднять httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Регистрируем роуты
	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))
	mux.HandleFunc("/state", enableCORS(s.handleState))
	mux.HandleFunc("/layout", enableCORS(s.handleLayout))
	mux.HandleFunc("/control/stop", enableCORS(s.handleStop))

	debugHandler := NewDebugHandler(s)
	debugHandler.RegisterRoutes(mux)

	return mux
}

// Run запускает HTTP сервер и гасит его при отмене контекста
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.Port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("🛒 Markov Market server running on :%s", s.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		s.log.Info("HTTP server stopped")
		return nil
	}
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Разрешаем запросы с фронтенда
		w.Header().Set("Access-Control-Allow-Origin", "*")
		// Разрешаем заголовки, если фронт шлет что-то нестандартное
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// handleWS обрабатывает подключение по WebSocket
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Error("Upgrade error")
		return
	}

	client := NewClient(s, conn)
	client.Start()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, version.Info())
}

// StateView - ответ /state
type StateView struct {
	RunID   string                 `json:"runId"`
	Seed    int64                  `json:"seed"`
	Stopped bool                   `json:"stopped"`
	Started bool                   `json:"started"`
	State   domain.SimulationState `json:"state"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	state, started := s.Latest.Get()
	writeJSON(w, StateView{
		RunID:   s.RunID,
		Seed:    s.Seed,
		Stopped: s.Stop.StopRequested(),
		Started: started,
		State:   state,
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	meta, tiles := engine.BuildLayout(s.Market)
	writeJSON(w, map[string]any{"grid": meta, "map": tiles, "legend": engine.BuildLegend()})
}

// handleStop - внешний сигнал остановки. Симуляция увидит его на следующем тике.
func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.Stop.Stop()
	s.log.WithField("remote", r.RemoteAddr).Info("Stop requested over HTTP")
	w.WriteHeader(http.StatusAccepted)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")

	// Если data == nil, возвращаем пустой массив [], а не null
	if data == nil {
		_, _ = w.Write([]byte("[]"))
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Component("http").WithError(err).Warn("failed to encode response")
	}
}

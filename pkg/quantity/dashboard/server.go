// Package dashboard serves an embeddable web calculator over the engine:
// a single-page UI, a JSON API and a websocket feed broadcasting every
// evaluation to connected clients.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/itt-ustutt/quantity/pkg/quantity"
	"github.com/itt-ustutt/quantity/pkg/quantity/calc"
	"github.com/itt-ustutt/quantity/pkg/quantity/catalog"
	"github.com/itt-ustutt/quantity/pkg/quantity/unit"
)

type Server struct {
	port         int
	server       *http.Server
	upgrader     websocket.Upgrader
	clients      map[*websocket.Conn]bool
	clientsMutex sync.RWMutex
	maxClients   int
	results      chan Evaluation
	stop         chan struct{}
	stopOnce     sync.Once

	mutex          sync.RWMutex
	history        []Evaluation
	maxHistorySize int

	eval *calc.Evaluator

	registry    *prometheus.Registry
	evalTotal   prometheus.Counter
	evalErrors  *prometheus.CounterVec
	evalLatency prometheus.Histogram
}

// Evaluation is one calculator round trip, as broadcast to clients and
// kept in the history buffer.
type Evaluation struct {
	Timestamp  time.Time `json:"timestamp"`
	Expression string    `json:"expression"`
	Result     string    `json:"result,omitempty"`
	Exponents  []string  `json:"exponents,omitempty"`
	Error      string    `json:"error,omitempty"`
}

func NewServer(port int) *Server {
	s := &Server{
		port: port,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true // Allow requests without Origin header
				}
				// Allow localhost and same-origin requests
				return origin == fmt.Sprintf("http://localhost:%d", port) ||
					origin == fmt.Sprintf("http://127.0.0.1:%d", port)
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clients:        make(map[*websocket.Conn]bool),
		maxClients:     100, // Limit concurrent WebSocket connections
		results:        make(chan Evaluation, 100),
		stop:           make(chan struct{}),
		history:        make([]Evaluation, 0, 1000),
		maxHistorySize: 1000,
		eval:           calc.New(),
		registry:       prometheus.NewRegistry(),
	}

	s.evalTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quantity_evaluations_total",
		Help: "Expressions submitted to the calculator.",
	})
	s.evalErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quantity_evaluation_errors_total",
		Help: "Failed evaluations by error kind.",
	}, []string{"kind"})
	s.evalLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "quantity_evaluation_duration_seconds",
		Help:    "Wall time of a single evaluation.",
		Buckets: prometheus.ExponentialBuckets(1e-6, 10, 8),
	})
	s.registry.MustRegister(s.evalTotal, s.evalErrors, s.evalLatency)

	return s
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.Handler(),
	}

	// Start broadcast goroutine
	go s.broadcast()

	log.Printf("Starting quantity dashboard on :%d", s.port)
	return s.server.ListenAndServe()
}

func (s *Server) Stop() error {
	s.stopOnce.Do(func() { close(s.stop) })
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Handler builds the route table. Exposed so tests and embedding hosts
// can serve the dashboard on their own listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Static page
	mux.HandleFunc("/", s.handleIndex)

	// API endpoints
	mux.HandleFunc("/api/eval", s.handleEval)
	mux.HandleFunc("/api/catalog", s.handleCatalog)
	mux.HandleFunc("/api/history", s.handleHistory)

	// WebSocket endpoint
	mux.HandleFunc("/ws", s.handleWebSocket)

	// Prometheus endpoint
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return mux
}

// Evaluate runs one expression through the calculator, records it in the
// history buffer and queues it for broadcast.
func (s *Server) Evaluate(expression string) Evaluation {
	start := time.Now()
	q, err := s.eval.Evaluate(expression)
	s.evalLatency.Observe(time.Since(start).Seconds())
	s.evalTotal.Inc()

	ev := Evaluation{
		Timestamp:  time.Now(),
		Expression: expression,
	}
	if err != nil {
		ev.Error = err.Error()
		s.evalErrors.WithLabelValues(errorKind(err)).Inc()
	} else {
		ev.Result = q.String()
		for _, e := range q.Unit().Exponents() {
			ev.Exponents = append(ev.Exponents, e.String())
		}
	}

	s.mutex.Lock()
	s.history = append(s.history, ev)
	if len(s.history) > s.maxHistorySize {
		s.history = s.history[len(s.history)-s.maxHistorySize:]
	}
	s.mutex.Unlock()

	select {
	case s.results <- ev:
	default:
		// Drop if channel is full
	}

	return ev
}

// errorKind maps an evaluation error onto a bounded metric label set.
func errorKind(err error) string {
	switch {
	case errors.Is(err, quantity.ErrDimensionMismatch):
		return "dimension_mismatch"
	case errors.Is(err, quantity.ErrNonIntegerRoot):
		return "non_integer_root"
	case errors.Is(err, quantity.ErrUnknownSymbol):
		return "unknown_symbol"
	case errors.Is(err, quantity.ErrMalformedUnitString):
		return "malformed_unit_string"
	case errors.Is(err, quantity.ErrAffineUnitMisuse):
		return "affine_unit_misuse"
	case errors.Is(err, calc.ErrSyntax):
		return "syntax"
	case errors.Is(err, calc.ErrTooComplex):
		return "too_complex"
	default:
		return "other"
	}
}

func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Expression string `json:"expression"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Expression == "" {
		http.Error(w, "expected JSON body with an expression field", http.StatusBadRequest)
		return
	}

	ev := s.Evaluate(req.Expression)

	w.Header().Set("Content-Type", "application/json")
	if ev.Error != "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	json.NewEncoder(w).Encode(ev)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	type unitEntry struct {
		Symbol    string   `json:"symbol"`
		Exponents []string `json:"exponents"`
		Factor    float64  `json:"factor"`
		Offset    float64  `json:"offset,omitempty"`
	}
	type constEntry struct {
		Name      string   `json:"name"`
		Value     float64  `json:"value"`
		Exponents []string `json:"exponents"`
	}
	type prefixEntry struct {
		Symbol   string `json:"symbol"`
		Exponent int    `json:"exponent"`
	}

	var resp struct {
		Units     []unitEntry   `json:"units"`
		Prefixes  []prefixEntry `json:"prefixes"`
		Constants []constEntry  `json:"constants"`
	}
	for _, e := range catalog.Entries() {
		resp.Units = append(resp.Units, unitEntry{
			Symbol:    e.Symbol,
			Exponents: exponentStrings(e.Vector.Exponents()),
			Factor:    e.Factor,
			Offset:    e.Offset,
		})
	}
	for _, p := range catalog.Prefixes() {
		resp.Prefixes = append(resp.Prefixes, prefixEntry{Symbol: p.Symbol, Exponent: p.Exponent})
	}
	for _, c := range catalog.Constants() {
		resp.Constants = append(resp.Constants, constEntry{
			Name:      c.Name,
			Value:     c.Value,
			Exponents: exponentStrings(c.Vector.Exponents()),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	s.mutex.RLock()
	out := make([]Evaluation, len(s.history))
	copy(out, s.history)
	s.mutex.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.clientsMutex.RLock()
	count := len(s.clients)
	s.clientsMutex.RUnlock()
	if count >= s.maxClients {
		http.Error(w, "too many clients", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	s.clientsMutex.Lock()
	s.clients[conn] = true
	s.clientsMutex.Unlock()

	go s.readLoop(conn)
}

// readLoop drains the client. Incoming text messages are treated as
// expressions, so websocket clients can evaluate without the JSON API.
func (s *Server) readLoop(conn *websocket.Conn) {
	defer func() {
		s.clientsMutex.Lock()
		delete(s.clients, conn)
		s.clientsMutex.Unlock()
		conn.Close()
	}()

	conn.SetReadLimit(4096)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		mt, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if mt == websocket.TextMessage && len(msg) > 0 {
			s.Evaluate(string(msg))
		}
	}
}

func (s *Server) broadcast() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case ev := <-s.results:
			s.send(ev)
		case <-ticker.C:
			s.ping()
		case <-s.stop:
			return
		}
	}
}

func (s *Server) send(ev Evaluation) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}

	s.clientsMutex.RLock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for c := range s.clients {
		conns = append(conns, c)
	}
	s.clientsMutex.RUnlock()

	for _, c := range conns {
		c.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
			s.clientsMutex.Lock()
			delete(s.clients, c)
			s.clientsMutex.Unlock()
			c.Close()
		}
	}
}

func (s *Server) ping() {
	s.clientsMutex.RLock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for c := range s.clients {
		conns = append(conns, c)
	}
	s.clientsMutex.RUnlock()

	for _, c := range conns {
		c.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := c.WriteMessage(websocket.PingMessage, nil); err != nil {
			s.clientsMutex.Lock()
			delete(s.clients, c)
			s.clientsMutex.Unlock()
			c.Close()
		}
	}
}

func exponentStrings(exps [unit.Dims]unit.Ratio) []string {
	out := make([]string, len(exps))
	for i, e := range exps {
		out[i] = e.String()
	}
	return out
}

// Package server exposes poker tables over WebSockets. Each table runs as a
// Session wrapping the core engine; HTTP endpoints cover the lobby (list and
// create tables) and health, and /ws upgrades into a per-table connection.
//
// Client identity rides on a cookie so a player keeps the same ID across
// reconnects, following the original browser-facing design.
package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const playerCookie = "player_id"

// Server is the HTTP/WebSocket front end.
type Server struct {
	cfg      *Config
	registry *Registry
	upgrader websocket.Upgrader
	logger   *log.Logger
	httpSrv  *http.Server
}

// NewServer builds the front end and opens every table named in the
// configuration.
func NewServer(cfg *Config, registry *Registry, logger *log.Logger) (*Server, error) {
	s := &Server{
		cfg:      cfg,
		registry: registry,
		upgrader: websocket.Upgrader{
			// Browser clients connect from arbitrary dev origins.
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger.WithPrefix("server"),
	}

	for _, tc := range cfg.Tables {
		if _, err := registry.Create(tc.Name, tc.TableSettings()); err != nil {
			return nil, err
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/tables", s.handleTables)
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	s.httpSrv = &http.Server{Addr: cfg.Addr(), Handler: mux}
	return s, nil
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", s.cfg.Addr())
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.writeJSON(w, http.StatusOK, s.registry.List())
	case http.MethodPost:
		s.handleCreateTable(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

type createTableRequest struct {
	Name          string `json:"name"`
	SmallBlind    int    `json:"smallBlind"`
	BigBlind      int    `json:"bigBlind"`
	MinPlayers    int    `json:"minPlayers"`
	MaxPlayers    int    `json:"maxPlayers"`
	BuyInMin      int    `json:"buyInMin"`
	BuyInMax      int    `json:"buyInMax"`
	StraddleLimit int    `json:"straddleLimit"`
}

func (s *Server) handleCreateTable(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.Server.AllowOpenTable {
		http.Error(w, "table creation disabled", http.StatusForbidden)
		return
	}

	var req createTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.SmallBlind <= 0 || req.BigBlind <= req.SmallBlind {
		http.Error(w, "name and valid blinds required", http.StatusBadRequest)
		return
	}

	tc := TableConfig{
		Name:          req.Name,
		SmallBlind:    req.SmallBlind,
		BigBlind:      req.BigBlind,
		MinPlayers:    req.MinPlayers,
		MaxPlayers:    req.MaxPlayers,
		BuyInMin:      req.BuyInMin,
		BuyInMax:      req.BuyInMax,
		StraddleLimit: req.StraddleLimit,
	}
	applyTableDefaults(&tc)

	session, err := s.registry.Create(tc.Name, tc.TableSettings())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.writeJSON(w, http.StatusCreated, session.Summary())
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	session := s.registry.Get(r.URL.Query().Get("table"))
	if session == nil {
		http.Error(w, "unknown table", http.StatusNotFound)
		return
	}

	playerID, setCookie := s.playerIdentity(r)
	var header http.Header
	if setCookie != "" {
		header = http.Header{"Set-Cookie": []string{setCookie}}
	}

	conn, err := s.upgrader.Upgrade(w, r, header)
	if err != nil {
		s.logger.Error("failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, session, playerID, s.logger)
	client.Start()
}

// playerIdentity reads the identity cookie, minting a fresh ID when the
// client has none. The returned Set-Cookie value is empty when the cookie
// already existed.
func (s *Server) playerIdentity(r *http.Request) (id, setCookie string) {
	if c, err := r.Cookie(playerCookie); err == nil && c.Value != "" {
		return c.Value, ""
	}
	id = uuid.NewString()
	cookie := &http.Cookie{
		Name:     playerCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	}
	return id, cookie.String()
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

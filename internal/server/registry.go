package server

import (
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/wkantaros/poker-ftb/internal/table"
)

// Registry owns the live sessions, keyed by generated table ID.
type Registry struct {
	ranker        table.Ranker
	clock         quartz.Clock
	actionTimeout time.Duration
	handDelay     time.Duration
	logger        *log.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates an empty registry. Every session it creates shares
// the given ranker, clock and timeouts.
func NewRegistry(ranker table.Ranker, clock quartz.Clock, actionTimeout, handDelay time.Duration, logger *log.Logger) *Registry {
	return &Registry{
		ranker:        ranker,
		clock:         clock,
		actionTimeout: actionTimeout,
		handDelay:     handDelay,
		logger:        logger.WithPrefix("registry"),
		sessions:      make(map[string]*Session),
	}
}

// Create opens a new table under a fresh ID.
func (r *Registry) Create(name string, cfg table.Config) (*Session, error) {
	id := uuid.NewString()
	s, err := NewSession(id, name, cfg, r.ranker, r.clock, r.actionTimeout, r.handDelay, r.logger)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()

	r.logger.Info("table created", "table", name, "id", id,
		"smallBlind", cfg.SmallBlind, "bigBlind", cfg.BigBlind)
	return s, nil
}

// Get returns the session for an ID, nil if unknown.
func (r *Registry) Get(id string) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[id]
}

// List summarizes every table, ordered by name for stable output.
func (r *Registry) List() []TableSummary {
	r.mu.RLock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.RUnlock()

	summaries := make([]TableSummary, len(sessions))
	for i, s := range sessions {
		summaries[i] = s.Summary()
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Name != summaries[j].Name {
			return summaries[i].Name < summaries[j].Name
		}
		return summaries[i].ID < summaries[j].ID
	})
	return summaries
}

// Remove drops a session from the registry.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

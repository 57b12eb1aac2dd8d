package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ctwg/ditagen/internal/ditaml"
)

// Manager hands out per-owner workspaces under a root directory and
// sweeps idle ones past the retention TTL.
type Manager struct {
	mu         sync.Mutex
	root       string
	ttl        time.Duration
	log        *slog.Logger
	workspaces map[string]*Workspace
}

func NewManager(root string, ttl time.Duration, log *slog.Logger) *Manager {
	return &Manager{
		root:       root,
		ttl:        ttl,
		log:        log,
		workspaces: make(map[string]*Workspace),
	}
}

// Get returns the workspace for owner, creating its directory and
// session on first use. Owner ids are normalized to a filesystem-safe
// slug; ids that normalize to nothing are rejected.
func (m *Manager) Get(owner string) (*Workspace, error) {
	slug := ditaml.KebabCase(owner)
	if slug == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOwner, owner)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if w, ok := m.workspaces[slug]; ok {
		w.touch()
		return w, nil
	}

	dir := filepath.Join(m.root, slug)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace dir: %w", err)
	}

	w := &Workspace{
		SessionID: NewSessionID(),
		Owner:     slug,
		Dir:       dir,
		topics:    make(map[string]*ditaml.Topic),
		lastUsed:  time.Now(),
	}
	m.workspaces[slug] = w
	m.log.Info("workspace created", "owner", slug, "session_id", w.SessionID)
	return w, nil
}

// Sweep removes workspaces idle past the TTL, directory included, and
// returns how many were removed.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	removed := 0
	for slug, w := range m.workspaces {
		if w.idle(now) <= m.ttl {
			continue
		}
		if err := os.RemoveAll(w.Dir); err != nil {
			m.log.Error("workspace sweep failed", "owner", slug, "error", err)
			continue
		}
		delete(m.workspaces, slug)
		removed++
		m.log.Info("workspace expired", "owner", slug)
	}
	return removed
}

// StartSweeper runs Sweep on the given interval until ctx is done.
func (m *Manager) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Sweep()
			}
		}
	}()
}

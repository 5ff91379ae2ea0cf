// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package audit

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	"github.com/pdiddy/policy-engine/pkg/types"
)

// ErrUnknownBackend is returned by Open for an unsupported backend.
var ErrUnknownBackend = errors.New("unknown audit backend")

const (
	defaultDir = "data/audit_logs"
	dbFile     = "audit.db"
)

// Sink persists audit entries. Entries returns a session's entries in
// write order, or an empty slice for an unknown session.
type Sink interface {
	Write(ctx context.Context, e Entry) error
	Entries(ctx context.Context, sessionID string) ([]Entry, error)
	Sessions(ctx context.Context) ([]string, error)
	Close() error
}

// Open returns the sink selected by cfg. The default backend is jsonl and
// the default directory is data/audit_logs.
func Open(cfg types.AuditConfig) (Sink, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = defaultDir
	}
	switch cfg.Backend {
	case types.AuditMemory:
		return NewMemorySink(), nil
	case types.AuditJSONL, "":
		return NewJSONLSink(dir)
	case types.AuditSQLite:
		return NewSQLiteSink(filepath.Join(dir, dbFile))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// MemorySink keeps entries in memory. It is safe for concurrent use.
type MemorySink struct {
	mu       sync.Mutex
	sessions []string
	entries  map[string][]Entry
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{entries: map[string][]Entry{}}
}

func (m *MemorySink) Write(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[e.SessionID]; !ok {
		m.sessions = append(m.sessions, e.SessionID)
	}
	m.entries[e.SessionID] = append(m.entries[e.SessionID], e)
	return nil
}

func (m *MemorySink) Entries(_ context.Context, sessionID string) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := slices.Clone(m.entries[sessionID])
	if out == nil {
		out = []Entry{}
	}
	return out, nil
}

func (m *MemorySink) Sessions(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := slices.Clone(m.sessions)
	slices.Sort(out)
	return out, nil
}

func (m *MemorySink) Close() error { return nil }

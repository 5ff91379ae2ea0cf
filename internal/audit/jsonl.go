// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package audit

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

const jsonlExt = ".jsonl"

// JSONLSink appends entries to <dir>/<session_id>.jsonl, one JSON object
// per line.
type JSONLSink struct {
	mu  sync.Mutex
	dir string
}

// NewJSONLSink creates dir if needed and returns a sink writing into it.
func NewJSONLSink(dir string) (*JSONLSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating audit directory: %w", err)
	}
	return &JSONLSink{dir: dir}, nil
}

func (s *JSONLSink) path(sessionID string) string {
	return filepath.Join(s.dir, sessionID+jsonlExt)
}

func (s *JSONLSink) Write(_ context.Context, e Entry) error {
	line, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshaling audit entry: %w", err)
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.path(e.SessionID), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	if _, err := f.Write(line); err != nil {
		f.Close()
		return fmt.Errorf("writing audit entry: %w", err)
	}
	return f.Close()
}

func (s *JSONLSink) Entries(_ context.Context, sessionID string) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path(sessionID))
	if errors.Is(err, fs.ErrNotExist) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	entries := []Entry{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			return nil, fmt.Errorf("parsing audit log line %d: %w", n, err)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}
	return entries, nil
}

func (s *JSONLSink) Sessions(_ context.Context) ([]string, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading audit directory: %w", err)
	}
	var sessions []string
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), jsonlExt) {
			continue
		}
		sessions = append(sessions, strings.TrimSuffix(de.Name(), jsonlExt))
	}
	sort.Strings(sessions)
	return sessions, nil
}

func (s *JSONLSink) Close() error { return nil }

package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/procflow/pkg/errors"
	"github.com/matzehuels/procflow/pkg/graph"
	pio "github.com/matzehuels/procflow/pkg/io"
)

// FileStore keeps each procedure as <dir>/<id>.json.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

// NewFileStore creates a file store in dir, creating the directory if
// needed. If dir is empty, defaults to ~/.config/procflow/procedures/.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		dir = filepath.Join(home, ".config", "procflow", "procedures")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the store directory.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Fetch reads the procedure document for id.
func (s *FileStore) Fetch(ctx context.Context, id string) (*graph.Procedure, error) {
	if err := errors.ValidateProcedureID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(id)
}

func (s *FileStore) read(id string) (*graph.Procedure, error) {
	f, err := os.Open(s.path(id))
	if os.IsNotExist(err) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("open procedure %s: %w", id, err)
	}
	defer f.Close()

	p, err := pio.ReadProcedure(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "procedure %s", id)
	}
	if p.ID == "" {
		p.ID = id
	}
	return p, nil
}

// Persist records g as the edited graph of id.
func (s *FileStore) Persist(ctx context.Context, id string, g *graph.Graph, commit graph.Commit) (*graph.Procedure, error) {
	if err := errors.ValidateProcedureID(id); err != nil {
		return nil, err
	}
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidGraph, "nil graph")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.read(id)
	if err != nil && !errors.Is(err, errors.ErrCodeProcedureNotFound) {
		return nil, err
	}
	p = applyCommit(p, id, g, commit)
	if err := s.write(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Put writes p, replacing any existing document with the same ID.
func (s *FileStore) Put(ctx context.Context, p *graph.Procedure) error {
	if err := errors.ValidateProcedureID(p.ID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(p)
}

// write replaces the document atomically through a temporary file.
func (s *FileStore) write(p *graph.Procedure) error {
	tmp, err := os.CreateTemp(s.dir, p.ID+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := pio.WriteProcedure(p, tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("write procedure %s: %w", p.ID, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write procedure %s: %w", p.ID, err)
	}
	if err := os.Rename(tmp.Name(), s.path(p.ID)); err != nil {
		return fmt.Errorf("write procedure %s: %w", p.ID, err)
	}
	return nil
}

// List reads every procedure document in the directory. Files that are not
// valid procedure documents are skipped.
func (s *FileStore) List(ctx context.Context) ([]*graph.Procedure, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read store dir: %w", err)
	}
	var out []*graph.Procedure
	for _, e := range entries {
		id, ok := strings.CutSuffix(e.Name(), ".json")
		if e.IsDir() || !ok || errors.ValidateProcedureID(id) != nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := s.read(id)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b *graph.Procedure) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}

var _ Store = (*FileStore)(nil)

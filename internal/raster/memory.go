package raster

import (
	"fmt"
	"io/fs"
	"sync"
)

// MemorySource is an in-memory Source. Bands keep insertion order.
type MemorySource struct {
	path  string
	names []string
	bands map[string]Band

	mu     sync.Mutex
	closed bool
}

// NewMemorySource returns an empty source for path.
func NewMemorySource(path string) *MemorySource {
	return &MemorySource{path: path, bands: make(map[string]Band)}
}

// Add registers a band under its Name. A repeated name replaces the band.
func (s *MemorySource) Add(b Band) *MemorySource {
	if _, ok := s.bands[b.Name]; !ok {
		s.names = append(s.names, b.Name)
	}
	s.bands[b.Name] = b
	return s
}

func (s *MemorySource) Path() string { return s.path }

func (s *MemorySource) Subdatasets() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

func (s *MemorySource) Lookup(suffix string) (Band, error) {
	if s.Closed() {
		return Band{}, fmt.Errorf("%s: %w", s.path, fs.ErrClosed)
	}
	name, err := FindBySuffix(s.names, suffix)
	if err != nil {
		return Band{}, fmt.Errorf("%s: %w", s.path, err)
	}
	return s.bands[name], nil
}

func (s *MemorySource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (s *MemorySource) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// MemoryOpener serves MemorySources keyed by path.
type MemoryOpener struct {
	Sources map[string]*MemorySource
}

func (o MemoryOpener) Open(path string) (Source, error) {
	s, ok := o.Sources[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return s, nil
}

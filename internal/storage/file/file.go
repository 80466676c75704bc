// Package file persists budget records as one JSON object on local disk,
// the closest analogue of browser local storage.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// errUndecodable marks a document that exists but is not a JSON string map.
var errUndecodable = errors.New("undecodable document")

// Store reads and rewrites the whole document on every call; the document
// holds two small records.
type Store struct {
	mu   sync.Mutex
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Load(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := doc[key]
	return v, ok, nil
}

func (s *Store) Save(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, _, err := s.readOrReplace()
	if err != nil {
		return err
	}
	doc[key] = value
	return s.write(doc)
}

func (s *Store) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, replaced, err := s.readOrReplace()
	if err != nil {
		return err
	}
	if _, ok := doc[key]; !ok && !replaced {
		return nil
	}
	delete(doc, key)
	return s.write(doc)
}

func (s *Store) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file: read: %w", err)
	}
	doc := map[string]string{}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("file: decode %s: %w: %v", s.path, errUndecodable, err)
	}
	return doc, nil
}

// readOrReplace starts a fresh document when the current one cannot be
// decoded. Any other read failure is returned so the other records survive.
func (s *Store) readOrReplace() (map[string]string, bool, error) {
	doc, err := s.read()
	if errors.Is(err, errUndecodable) {
		return map[string]string{}, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	return doc, false, nil
}

// write replaces the file atomically via rename.
func (s *Store) write(doc map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("file: mkdir: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("file: encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("file: create temp: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("file: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("file: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("file: rename: %w", err)
	}
	return nil
}

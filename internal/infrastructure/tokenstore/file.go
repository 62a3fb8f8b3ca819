package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jhoicas/invorya-dashboard/internal/application/ports"
)

var _ ports.TokenStore = (*FileStore)(nil)

// FileStore persiste los tokens en un archivo JSON (0600).
// Cada operación relee el archivo, así que dos procesos que comparten ruta ven
// los cambios del otro; la última escritura gana.
type FileStore struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// NewFileStore construye el store. No toca disco hasta la primera operación.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

// DefaultFilePath ruta por defecto: <config dir>/invorya/tokens.json.
func DefaultFilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "invorya", "tokens.json")
}

// Path ruta del archivo.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Set(_ context.Context, kind ports.TokenKind, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.load()
	if err != nil {
		return err
	}
	entries[kind] = newEntry(value, ttl, s.now())
	return s.save(entries)
}

func (s *FileStore) Get(_ context.Context, kind ports.TokenKind) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.load()
	if err != nil {
		return "", false, err
	}
	e, ok := entries[kind]
	if !ok || e.expired(s.now()) {
		return "", false, nil
	}
	return e.Value, true, nil
}

func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("tokenstore: eliminar %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) load() (map[ports.TokenKind]entry, error) {
	entries := make(map[ports.TokenKind]entry)
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return entries, nil
	}
	if err != nil {
		return nil, fmt.Errorf("tokenstore: leer %s: %w", s.path, err)
	}
	if len(raw) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("tokenstore: archivo corrupto %s: %w", s.path, err)
	}
	return entries, nil
}

// save escribe en un temporal y renombra para no dejar el archivo a medias.
func (s *FileStore) save(entries map[ports.TokenKind]entry) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("tokenstore: crear directorio: %w", err)
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("tokenstore: serializar: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".tokens-*")
	if err != nil {
		return fmt.Errorf("tokenstore: crear temporal: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("tokenstore: escribir temporal: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("tokenstore: permisos: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("tokenstore: cerrar temporal: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("tokenstore: renombrar: %w", err)
	}
	return nil
}

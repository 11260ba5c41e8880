package admin

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// StorageKey names the persisted credentials.
const StorageKey = "visus-admin-auth"

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CredentialStore persists credentials between console runs.
type CredentialStore interface {
	// Load returns nil, nil when nothing is stored.
	Load() (*Credentials, error)
	Save(c Credentials) error
	Clear() error
}

// FileStore keeps credentials as JSON in <dir>/visus-admin-auth.json.
type FileStore struct {
	path string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, StorageKey+".json")}
}

// DefaultFileStore stores credentials under the user config directory.
func DefaultFileStore() (*FileStore, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("user config dir: %w", err)
	}
	return NewFileStore(filepath.Join(dir, "visus")), nil
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load() (*Credentials, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var c Credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("decode credentials: %w", err)
	}
	if c.Username == "" {
		return nil, nil
	}
	return &c, nil
}

func (s *FileStore) Save(c Credentials) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	b, err := json.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}

// MemoryStore keeps credentials for the lifetime of the process.
type MemoryStore struct {
	mu    sync.Mutex
	creds *Credentials
}

func (s *MemoryStore) Load() (*Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.creds == nil {
		return nil, nil
	}
	c := *s.creds
	return &c, nil
}

func (s *MemoryStore) Save(c Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = &c
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = nil
	return nil
}

// BasicHeader returns the Authorization header value for the pair.
func BasicHeader(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

// Session holds the administrator credentials of the console. The header is
// computed once on login and attached to every admin request.
type Session struct {
	mu     sync.RWMutex
	store  CredentialStore
	user   string
	header string
}

// NewSession restores saved credentials from store, if any.
func NewSession(store CredentialStore) (*Session, error) {
	s := &Session{store: store}
	c, err := store.Load()
	if err != nil {
		return s, err
	}
	if c != nil {
		s.user = c.Username
		s.header = BasicHeader(c.Username, c.Password)
	}
	return s, nil
}

func (s *Session) Login(username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", ErrValidation)
	}
	if err := s.store.Save(Credentials{Username: username, Password: password}); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = username
	s.header = BasicHeader(username, password)
	return nil
}

func (s *Session) Logout() error {
	s.mu.Lock()
	s.user = ""
	s.header = ""
	s.mu.Unlock()
	return s.store.Clear()
}

// Header returns the Authorization value; ok is false without credentials.
func (s *Session) Header() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.header, s.header != ""
}

func (s *Session) Authenticated() bool {
	_, ok := s.Header()
	return ok
}

func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/zalando/go-keyring"
)

// ErrNoSession is returned when no session has been saved.
var ErrNoSession = errors.New("api: no saved session")

// SessionStore keeps the serialized session cookies between runs.
type SessionStore interface {
	Load() (string, error)
	Save(data string) error
	Delete() error
}

// KeyringStore keeps the session in the OS keyring, one entry per server.
type KeyringStore struct {
	Service string
	User    string
}

const keyringService = "eureka-tui"

// NewKeyringStore returns a store for the session with the given server.
func NewKeyringStore(server string) *KeyringStore {
	return &KeyringStore{Service: keyringService, User: server}
}

// Load implements SessionStore.
func (k *KeyringStore) Load() (string, error) {
	data, err := keyring.Get(k.Service, k.User)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("read keyring: %w", err)
	}
	return data, nil
}

// Save implements SessionStore.
func (k *KeyringStore) Save(data string) error {
	if err := keyring.Set(k.Service, k.User, data); err != nil {
		return fmt.Errorf("write keyring: %w", err)
	}
	return nil
}

// Delete implements SessionStore.
func (k *KeyringStore) Delete() error {
	err := keyring.Delete(k.Service, k.User)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNoSession
	}
	if err != nil {
		return fmt.Errorf("delete keyring entry: %w", err)
	}
	return nil
}

// MemorySessionStore keeps the session for the life of the process.
type MemorySessionStore struct {
	mu   sync.Mutex
	data string
	set  bool
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

func (m *MemorySessionStore) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return "", ErrNoSession
	}
	return m.data, nil
}

func (m *MemorySessionStore) Save(data string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data, m.set = data, true
	return nil
}

func (m *MemorySessionStore) Delete() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return ErrNoSession
	}
	m.data, m.set = "", false
	return nil
}

type savedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Restore loads the saved session cookies into the client. A missing
// session is not an error.
func (c *Client) Restore() error {
	data, err := c.sessions.Load()
	if errors.Is(err, ErrNoSession) {
		return nil
	}
	if err != nil {
		return err
	}
	var saved []savedCookie
	if err := json.Unmarshal([]byte(data), &saved); err != nil {
		return fmt.Errorf("decode saved session: %w", err)
	}
	cookies := make([]*http.Cookie, 0, len(saved))
	for _, s := range saved {
		cookies = append(cookies, &http.Cookie{Name: s.Name, Value: s.Value, Path: "/"})
	}
	_, jar := c.session()
	jar.SetCookies(c.base, cookies)
	c.mu.Lock()
	c.savedSession = data
	c.mu.Unlock()
	c.logger.Debug("session restored", "cookies", len(cookies))
	return nil
}

// HasSession reports whether the client holds any cookie for the server.
func (c *Client) HasSession() bool {
	_, jar := c.session()
	return len(jar.Cookies(c.base)) > 0
}

// session returns the current transport and cookie jar.
func (c *Client) session() (*http.Client, http.CookieJar) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.http, c.jar
}

// persistSession saves the cookie set when it changed since the last save.
func (c *Client) persistSession() {
	c.mu.Lock()
	defer c.mu.Unlock()

	cookies := c.jar.Cookies(c.base)
	if len(cookies) == 0 {
		return
	}
	saved := make([]savedCookie, 0, len(cookies))
	for _, ck := range cookies {
		saved = append(saved, savedCookie{Name: ck.Name, Value: ck.Value})
	}
	sort.Slice(saved, func(i, j int) bool { return saved[i].Name < saved[j].Name })

	data, err := json.Marshal(saved)
	if err != nil {
		c.logger.Warn("encoding session", "error", err)
		return
	}
	if string(data) == c.savedSession {
		return
	}
	if err := c.sessions.Save(string(data)); err != nil {
		c.logger.Warn("saving session", "error", err)
		return
	}
	c.savedSession = string(data)
}

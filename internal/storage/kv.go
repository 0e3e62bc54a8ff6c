package storage

import (
	"sync"
)

// KV is the string key-value capability the history store persists through.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

var (
	_ KV = (*Store)(nil)
	_ KV = (*Memory)(nil)
	_ KV = Nop{}
	_ KV = (*Namespaced)(nil)
)

// Memory is an in-process KV. The zero value is ready to use.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory returns an empty in-memory KV.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = make(map[string]string)
	}
	m.data[key] = value
	return nil
}

func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Len returns the number of stored keys.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Nop stores nothing. Reads are always absent and writes succeed.
// Used when the database cannot be opened.
type Nop struct{}

func (Nop) Get(string) (string, bool, error) { return "", false, nil }
func (Nop) Set(string, string) error         { return nil }
func (Nop) Remove(string) error              { return nil }

// Namespaced prefixes every key of an underlying KV.
type Namespaced struct {
	kv     KV
	prefix string
}

// Namespace returns a view of kv where every key is stored as prefix+key.
func Namespace(kv KV, prefix string) *Namespaced {
	return &Namespaced{kv: kv, prefix: prefix}
}

func (n *Namespaced) Get(key string) (string, bool, error) { return n.kv.Get(n.prefix + key) }
func (n *Namespaced) Set(key, value string) error          { return n.kv.Set(n.prefix+key, value) }
func (n *Namespaced) Remove(key string) error              { return n.kv.Remove(n.prefix + key) }

// UserPrefix is the namespace prefix for an SSH user's data.
func UserPrefix(user string) string {
	if user == "" {
		user = "anonymous"
	}
	return "user:" + user + "/"
}

package session

import "sync"

// MemoryKeyValue est un support de stockage en mémoire
// (équivalent du localStorage du navigateur)
type MemoryKeyValue struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryKeyValue crée un support vide
func NewMemoryKeyValue() *MemoryKeyValue {
	return &MemoryKeyValue{values: make(map[string]string)}
}

// Get retourne la valeur de la clé, et false si elle est absente
func (m *MemoryKeyValue) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[key]
	return value, ok
}

// Set enregistre la valeur de la clé
func (m *MemoryKeyValue) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Delete supprime la clé (absente = pas une erreur)
func (m *MemoryKeyValue) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}

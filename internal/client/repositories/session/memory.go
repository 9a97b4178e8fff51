package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/eventdesk/internal/client/models"
)

// MemoryRepository keeps the session entries in a map. The zero value is
// not usable; call NewMemoryRepository.
type MemoryRepository struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{entries: make(map[string][]byte)}
}

func (r *MemoryRepository) Save(ctx context.Context, s models.Session) error {
	token, user, err := encode(s)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[KeyToken] = token
	r.entries[KeyUser] = user
	return nil
}

func (r *MemoryRepository) Load(ctx context.Context) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return decode(r.entries[KeyToken], r.entries[KeyUser]), nil
}

func (r *MemoryRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.entries)
	return nil
}

// Put writes one raw entry. Tests use it to simulate partial or corrupt
// state left behind by other writers.
func (r *MemoryRepository) Put(key string, value []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key] = value
}

// Len reports how many raw entries are stored.
func (r *MemoryRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

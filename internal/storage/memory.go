package storage

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/factkeeper/internal/models"
)

// MemoryManager keeps everything in process with the local backend's
// semantics. A transaction works on a copy that replaces the live values
// only when fn succeeds.
type MemoryManager struct {
	txMu   sync.Mutex
	kv     *memKV
	prefix string
	seed   []models.Fact
	now    func() time.Time
}

func NewMemoryManager(prefix string, seed []models.Fact) *MemoryManager {
	return &MemoryManager{kv: newMemKV(), prefix: prefix, seed: seed, now: time.Now}
}

func (m *MemoryManager) bind(kv *memKV) (Adapter, KV) {
	values := withPrefix(kv, m.prefix)
	return newLocalAdapter(values, m.seed, m.now), values
}

func (m *MemoryManager) Store() Adapter {
	a, _ := m.bind(m.kv)
	return a
}

func (m *MemoryManager) Values() KV {
	_, kv := m.bind(m.kv)
	return kv
}

func (m *MemoryManager) WithinTx(ctx context.Context, fn TxFunc) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	staged := m.kv.snapshot()
	a, kv := m.bind(staged)
	if err := fn(ctx, a, kv); err != nil {
		return err
	}
	m.kv.restore(staged)
	return nil
}

func (m *MemoryManager) Close() error { return nil }

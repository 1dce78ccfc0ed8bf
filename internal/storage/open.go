package storage

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/factkeeper/internal/models"
)

// Backend names accepted by Open.
const (
	BackendLocal  = "local"
	BackendRemote = "remote"
	BackendMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend     string
	LocalDSN    string
	DatabaseDSN string
	KeyPrefix   string
	// Seed is the initial facts collection for the local and memory backends.
	Seed []models.Fact
}

// Open builds the Manager named by opts.Backend.
func Open(ctx context.Context, opts Options) (Manager, error) {
	switch opts.Backend {
	case BackendLocal:
		m, err := NewLocalManager(ctx, opts.LocalDSN, opts.KeyPrefix, opts.Seed)
		if err != nil {
			return nil, err
		}
		return m, nil
	case BackendRemote:
		m, err := NewRemoteManager(ctx, opts.DatabaseDSN, opts.KeyPrefix)
		if err != nil {
			return nil, err
		}
		return m, nil
	case BackendMemory:
		return NewMemoryManager(opts.KeyPrefix, opts.Seed), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
}

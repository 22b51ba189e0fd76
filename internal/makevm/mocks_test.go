package makevm

import (
	"context"
	"sync"

	"github.com/jbweber/zdir/internal/directory"
)

// mockSubmitter is a mock implementation of the submitter interface for testing.
type mockSubmitter struct {
	mu sync.Mutex

	submitFunc  func(ctx context.Context, entry *directory.Entry) error
	submitCalls []*directory.Entry
}

func newMockSubmitter() *mockSubmitter {
	return &mockSubmitter{
		// Default: submission succeeds
		submitFunc: func(ctx context.Context, entry *directory.Entry) error {
			return nil
		},
	}
}

func (m *mockSubmitter) Submit(ctx context.Context, entry *directory.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submitCalls = append(m.submitCalls, entry)
	return m.submitFunc(ctx, entry)
}

package smapi

import (
	"context"
	"os"
	"sync"
)

// invokeCall records one Invoke call along with the staged file contents
// observed at call time.
type invokeCall struct {
	api    string
	args   []string
	staged string
}

// mockInvoker is a mock implementation of the Invoker interface for testing.
type mockInvoker struct {
	mu sync.Mutex

	invokeFunc  func(ctx context.Context, api string, args []string) (Result, error)
	invokeCalls []invokeCall
}

func newMockInvoker() *mockInvoker {
	return &mockInvoker{
		// Default: SMAPI accepts the request
		invokeFunc: func(ctx context.Context, api string, args []string) (Result, error) {
			return Result{}, nil
		},
	}
}

func (m *mockInvoker) Invoke(ctx context.Context, api string, args []string) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	call := invokeCall{api: api, args: append([]string(nil), args...)}
	if path := argAfter(args, "-f"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			call.staged = string(data)
		}
	}
	m.invokeCalls = append(m.invokeCalls, call)
	return m.invokeFunc(ctx, api, args)
}

func argAfter(args []string, flag string) string {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}

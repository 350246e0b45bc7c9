package backend

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// ParameterCall records a call to FetchParameter.
type ParameterCall struct {
	ID      string
	Decrypt bool
}

// MockStore is an in-memory implementation of both fetcher interfaces
// for testing. One store can back both halves of a Pair.
type MockStore struct {
	mu             sync.Mutex
	Secrets        map[string]string
	Parameters     map[string]string
	Errors         map[string]error // per-identifier injected failures
	Delay          time.Duration    // simulated call latency
	SecretCalls    []string
	ParameterCalls []ParameterCall
}

// NewMockStore creates an empty MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		Secrets:    make(map[string]string),
		Parameters: make(map[string]string),
		Errors:     make(map[string]error),
	}
}

// Pair returns a client pair backed by this store.
func (m *MockStore) Pair() *Pair {
	return &Pair{Secrets: m, Parameters: m}
}

// FetchSecret returns the configured secret value or injected error.
func (m *MockStore) FetchSecret(ctx context.Context, id string) (string, error) {
	m.mu.Lock()
	m.SecretCalls = append(m.SecretCalls, id)
	err := m.Errors[id]
	val, ok := m.Secrets[id]
	delay := m.Delay
	m.mu.Unlock()

	if err := m.wait(ctx, delay); err != nil {
		return "", err
	}
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &Error{Kind: ErrNotFound, Store: "secretsmanager", ID: id, Err: fmt.Errorf("secret not found")}
	}
	return val, nil
}

// FetchParameter returns the configured parameter value or injected error.
func (m *MockStore) FetchParameter(ctx context.Context, id string, decrypt bool) (string, error) {
	m.mu.Lock()
	m.ParameterCalls = append(m.ParameterCalls, ParameterCall{ID: id, Decrypt: decrypt})
	err := m.Errors[id]
	val, ok := m.Parameters[id]
	delay := m.Delay
	m.mu.Unlock()

	if err := m.wait(ctx, delay); err != nil {
		return "", err
	}
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &Error{Kind: ErrNotFound, Store: "ssm", ID: id, Err: fmt.Errorf("parameter not found")}
	}
	return val, nil
}

func (m *MockStore) wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

package client

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/adamwoolhether/httpq/errs"
)

// Registry holds Clients by key. Clients are never removed.
// The zero value is ready to use.
type Registry struct {
	mu      sync.Mutex
	clients map[string]*Client
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]*Client)}
}

// Register builds a Client with [New] and stores it under key.
// It fails with kind registry if key is taken, leaving the existing Client
// untouched, and with kind config if an option is invalid.
func (r *Registry) Register(key, baseURL string, opts ...Option) (*Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[key]; ok {
		return nil, errs.New(errs.KindRegistry, fmt.Sprintf("Client with key %s already exists", key), errs.WithCause(errs.ErrClientExists))
	}

	c, err := New(key, baseURL, opts...)
	if err != nil {
		return nil, err
	}

	if r.clients == nil {
		r.clients = make(map[string]*Client)
	}
	r.clients[key] = c

	return c, nil
}

// Use returns the Client registered under key.
func (r *Registry) Use(key string) (*Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.clients[key]
	if !ok {
		return nil, errs.New(errs.KindRegistry, fmt.Sprintf("Client with key %s does not exist", key), errs.WithCause(errs.ErrClientNotFound))
	}

	return c, nil
}

// Keys returns the registered keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Sorted(maps.Keys(r.clients))
}

package checker

import (
	"context"
	"reviewd/pkg/domain"
	"reviewd/pkg/serrors"
	"sync"

	"github.com/google/uuid"
)

// Hub is the registry of live checker sessions. It owns controller
// construction and teardown; everything else goes through the controller.
type Hub struct {
	deps    Deps
	options Options

	mu       sync.Mutex
	sessions map[uuid.UUID]*Controller
}

// NewHub creates an empty session registry.
func NewHub(deps Deps, options Options) *Hub {
	return &Hub{
		deps:     deps,
		options:  options,
		sessions: map[uuid.UUID]*Controller{},
	}
}

// Open validates the product, creates a controller for it, starts the
// initial fetch, and returns the new session ID.
func (h *Hub) Open(ctx context.Context, product domain.ProductID) (uuid.UUID, *Controller, error) {
	if err := product.Validate(); err != nil {
		return uuid.Nil, nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid product id")
	}

	c := New(product, h.deps, h.options)
	id := uuid.New()

	h.mu.Lock()
	h.sessions[id] = c
	h.mu.Unlock()

	c.Fetch(ctx)

	return id, c, nil
}

// Get returns the controller for a session ID.
func (h *Hub) Get(id uuid.UUID) (*Controller, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.sessions[id]
	if !ok {
		return nil, serrors.With(serrors.ErrNotFound, "session not found")
	}

	return c, nil
}

// Dismiss closes the session's controller and drops it from the registry.
func (h *Hub) Dismiss(id uuid.UUID) error {
	h.mu.Lock()
	c, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()

	if !ok {
		return serrors.With(serrors.ErrNotFound, "session not found")
	}

	c.Close()

	return nil
}

// CloseAll tears down every live session. Used on shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	sessions := h.sessions
	h.sessions = map[uuid.UUID]*Controller{}
	h.mu.Unlock()

	for _, c := range sessions {
		c.Close()
	}
}

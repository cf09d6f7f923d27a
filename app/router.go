package app

import (
	"regexp"

	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/errors"
)

// isPath defines valid characters that can be used as a routing path.
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router allows us to register many handlers with different paths and then
// direct each message to the appropriate handler.
type Router struct {
	handlers map[string]recpm.Handler
}

var _ recpm.Registry = (*Router)(nil)
var _ recpm.Handler = (*Router)(nil)

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		handlers: make(map[string]recpm.Handler),
	}
}

// Handle implements Registry interface. Handle adds a new handler for
// processing messages of the same type as given message. Requesting a
// handler registration for the same message type more than once is invalid
// and panics.
func (r *Router) Handle(m recpm.Msg, h recpm.Handler) {
	path := m.Path()
	if !isPath(path) {
		panic("invalid path: " + path)
	}
	if _, ok := r.handlers[path]; ok {
		panic("re-registering a handler for the path: " + path)
	}
	r.handlers[path] = h
}

// handler returns the registered Handler for this message type. If no
// handler is registered, returns a noSuchPathHandler that always fails.
func (r *Router) handler(m recpm.Msg) recpm.Handler {
	path := m.Path()
	if h, ok := r.handlers[path]; ok {
		return h
	}
	return &noSuchPathHandler{path: path}
}

// Check dispatches to the proper handler based on message type.
func (r *Router) Check(ctx recpm.Context, store recpm.KVStore, tx recpm.Tx) (*recpm.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.handler(msg).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on message type.
func (r *Router) Deliver(ctx recpm.Context, store recpm.KVStore, tx recpm.Tx) (*recpm.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.handler(msg).Deliver(ctx, store, tx)
}

type noSuchPathHandler struct {
	path string
}

var _ recpm.Handler = (*noSuchPathHandler)(nil)

func (h *noSuchPathHandler) Check(recpm.Context, recpm.KVStore, recpm.Tx) (*recpm.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}

func (h *noSuchPathHandler) Deliver(recpm.Context, recpm.KVStore, recpm.Tx) (*recpm.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}

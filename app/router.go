package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// isPath matches the "extension/operation" message routing paths.
var isPath = regexp.MustCompile(`^[a-z0-9_]+/[a-z0-9_]+$`).MatchString

// Router is a bazaar.Handler that dispatches messages to the handler
// registered for their path.
type Router struct {
	handlers map[string]bazaar.Handler
}

var (
	_ bazaar.Registry = (*Router)(nil)
	_ bazaar.Handler  = (*Router)(nil)
)

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		handlers: make(map[string]bazaar.Handler),
	}
}

// Handle assigns the given handler to handle processing of every message
// of the same type as the given message.
// Handle panics on an invalid path or a duplicate registration.
func (r *Router) Handle(m bazaar.Msg, h bazaar.Handler) {
	path := m.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.handlers[path]; ok {
		panic(fmt.Sprintf("double registration of path %q", path))
	}
	r.handlers[path] = h
}

// handler returns the registered handler for this message, or an error.
func (r *Router) handler(tx bazaar.Tx) (bazaar.Handler, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot get message")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrState, "transaction without a message")
	}
	if h, ok := r.handlers[msg.Path()]; ok {
		return h, nil
	}
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", msg.Path())
}

// Check dispatches to the proper handler based on the message path.
func (r *Router) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, db, tx)
}

// Deliver dispatches to the proper handler based on the message path.
func (r *Router) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, db, tx)
}

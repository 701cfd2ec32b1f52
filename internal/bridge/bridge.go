// Package bridge exposes storage operations as named commands a desktop
// shell can invoke, either in-process or as newline-delimited JSON over a
// pipe.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/sahilm/fuzzy"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"

	"github.com/infohazards/indranet-explorer/model"
)

// Handler runs one command. args is the raw "args" member of the request and
// may be nil.
type Handler func(ctx context.Context, args json.RawMessage) (any, error)

// Request is one host invocation.
type Request struct {
	ID   json.RawMessage `json:"id,omitempty"`
	Cmd  string          `json:"cmd"`
	Args json.RawMessage `json:"args,omitempty"`
}

// Response answers a Request. Fatal marks failures the host must treat as
// unrecoverable, such as a failed save.
type Response struct {
	ID     json.RawMessage `json:"id"`
	Result any             `json:"result"`
	Error  string          `json:"error,omitempty"`
	Fatal  bool            `json:"fatal,omitempty"`
}

// ErrClosed is returned for commands called after Close.
var ErrClosed = errors.New("bridge: closed")

// Bridge dispatches requests to registered handlers, one at a time.
type Bridge struct {
	handlers map[string]Handler
	log      logrus.FieldLogger

	mu     sync.Mutex
	closed bool
}

// New creates an empty Bridge.
func New(log logrus.FieldLogger) *Bridge {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Bridge{
		handlers: make(map[string]Handler),
		log:      log,
	}
}

// Register adds a command. Registering a name twice panics.
func (b *Bridge) Register(name string, h Handler) {
	if _, exists := b.handlers[name]; exists {
		panic(fmt.Sprintf("bridge: command %q registered twice", name))
	}
	b.handlers[name] = h
}

// Commands returns the registered command names, sorted.
func (b *Bridge) Commands() []string {
	names := maps.Keys(b.handlers)
	sort.Strings(names)
	return names
}

// Call runs the named command and returns its raw result.
func (b *Bridge) Call(ctx context.Context, name string, args json.RawMessage) (any, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, errors.Wrapf(ErrClosed, "command %q", name)
	}
	h, ok := b.handlers[name]
	if !ok {
		return nil, b.unknownCommand(name)
	}
	return h(ctx, args)
}

// Close waits for a running command to finish and makes later calls fail
// with ErrClosed. It is safe to call more than once.
func (b *Bridge) Close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
}

// Invoke runs req and converts the outcome into a Response.
func (b *Bridge) Invoke(ctx context.Context, req Request) Response {
	resp := Response{ID: req.ID}
	result, err := b.Call(ctx, req.Cmd, req.Args)
	if err != nil {
		resp.Error = err.Error()
		resp.Fatal = model.IsStorageFault(err)
		entry := b.log.WithError(err).WithField("cmd", req.Cmd)
		if resp.Fatal {
			entry.Error("command failed")
		} else {
			entry.Warn("command rejected")
		}
		return resp
	}
	resp.Result = result
	return resp
}

func (b *Bridge) unknownCommand(name string) error {
	if matches := fuzzy.Find(name, b.Commands()); len(matches) > 0 && matches[0].Score > 0 {
		return fmt.Errorf("unknown command %q, did you mean %q?", name, matches[0].Str)
	}
	return fmt.Errorf("unknown command %q", name)
}

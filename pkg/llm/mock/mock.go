// Package mock provides a scriptable ModelClient for tests and dry runs.
package mock

import (
	"context"
	"sync"

	"github.com/Ingenimax/multimodal-go/pkg/interfaces"
)

// Call records one Generate invocation
type Call struct {
	Model   string
	Message interfaces.Message
}

// Client is an in-memory ModelClient
type Client struct {
	// GenerateFunc produces the response; when nil, Generate echoes the model name
	GenerateFunc func(ctx context.Context, model string, msg interfaces.Message) (*interfaces.Response, error)

	mu    sync.Mutex
	calls []Call
}

// NewClient creates a Client backed by fn
func NewClient(fn func(ctx context.Context, model string, msg interfaces.Message) (*interfaces.Response, error)) *Client {
	return &Client{GenerateFunc: fn}
}

// Generate records the call and delegates to GenerateFunc
func (c *Client) Generate(ctx context.Context, model string, msg interfaces.Message, _ ...interfaces.GenerateOption) (*interfaces.Response, error) {
	c.mu.Lock()
	c.calls = append(c.calls, Call{Model: model, Message: msg})
	c.mu.Unlock()

	if c.GenerateFunc == nil {
		return &interfaces.Response{Content: "response from " + model, Model: model}, nil
	}
	return c.GenerateFunc(ctx, model, msg)
}

// Name implements interfaces.ModelClient.Name
func (c *Client) Name() string {
	return "mock"
}

// Calls returns a copy of the recorded calls
func (c *Client) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.calls...)
}

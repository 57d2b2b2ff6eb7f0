// Package requestertest provides an in-memory Requester for tests.
package requestertest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Domenick1991/flightgateway/internal/requester"
)

var ErrNoRoute = errors.New("no canned response")

type reply struct {
	resp *requester.Response
	err  error
}

// Fake answers requests from canned responses keyed by method and URL and
// records every call it receives.
type Fake struct {
	mu     sync.Mutex
	routes map[string]reply
	calls  []requester.Request
}

func NewFake() *Fake {
	return &Fake{routes: make(map[string]reply)}
}

func key(method, url string) string {
	return method + " " + url
}

// Respond registers a raw response.
func (f *Fake) Respond(method, url string, status int, body string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[key(method, url)] = reply{resp: &requester.Response{StatusCode: status, Body: []byte(body)}}
	return f
}

// Fail registers a transport error.
func (f *Fake) Fail(method, url string, err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[key(method, url)] = reply{err: err}
	return f
}

func (f *Fake) Send(_ context.Context, req requester.Request) (*requester.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	r, ok := f.routes[key(req.Method, req.URL)]
	if !ok {
		return nil, fmt.Errorf("%w for %s", ErrNoRoute, key(req.Method, req.URL))
	}
	return r.resp, r.err
}

func (f *Fake) SendTyped(ctx context.Context, req requester.Request, out any) error {
	resp, err := f.Send(ctx, req)
	return requester.Decode(resp, err, out)
}

// Calls returns a copy of the recorded requests in arrival order.
func (f *Fake) Calls() []requester.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]requester.Request, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallsTo returns the recorded requests matching method and url.
func (f *Fake) CallsTo(method, url string) []requester.Request {
	var out []requester.Request
	for _, c := range f.Calls() {
		if c.Method == method && c.URL == url {
			out = append(out, c)
		}
	}
	return out
}

// CountMethod counts recorded requests with the given method.
func (f *Fake) CountMethod(method string) int {
	n := 0
	for _, c := range f.Calls() {
		if c.Method == method {
			n++
		}
	}
	return n
}

var _ requester.Requester = (*Fake)(nil)

package services

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"

	"github.com/dmitrijs2005/insider/internal/client/client"
)

// call is one request seen by fakeClient.
type call struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
}

// fakeClient answers requests from canned JSON keyed by "METHOD path".
type fakeClient struct {
	mu        sync.Mutex
	responses map[string]string
	errs      map[string]error
	calls     []call
	token     string
}

var _ client.Client = (*fakeClient)(nil)

func newFakeClient() *fakeClient {
	return &fakeClient{responses: map[string]string{}, errs: map[string]error{}}
}

func (f *fakeClient) respond(method, path, body string)   { f.responses[method+" "+path] = body }
func (f *fakeClient) fail(method, path string, err error) { f.errs[method+" "+path] = err }

func (f *fakeClient) lastCall() call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func (f *fakeClient) do(method, path string, query url.Values, body, out any) error {
	var raw []byte
	if body != nil {
		raw, _ = json.Marshal(body)
	}

	f.mu.Lock()
	f.calls = append(f.calls, call{Method: method, Path: path, Query: query, Body: raw})
	err := f.errs[method+" "+path]
	resp, ok := f.responses[method+" "+path]
	f.mu.Unlock()

	if err != nil {
		return err
	}
	if out == nil || !ok || resp == "" {
		return nil
	}
	return json.Unmarshal([]byte(resp), out)
}

func (f *fakeClient) Get(_ context.Context, path string, query url.Values, out any) error {
	return f.do("GET", path, query, nil, out)
}

func (f *fakeClient) Post(_ context.Context, path string, body, out any) error {
	return f.do("POST", path, nil, body, out)
}

func (f *fakeClient) Put(_ context.Context, path string, body, out any) error {
	return f.do("PUT", path, nil, body, out)
}

func (f *fakeClient) Delete(_ context.Context, path string, out any) error {
	return f.do("DELETE", path, nil, nil, out)
}

func (f *fakeClient) SetAuthToken(token string) { f.token = token }
func (f *fakeClient) AuthToken() string         { return f.token }

// Package backendtest: Client untuk test, mencatat setiap panggilan dan bisa
// dipaksa gagal per method/resource.
package backendtest

import (
	"context"
	"sync"

	"sekolahku_dashboard/internals/backend"
	"sekolahku_dashboard/internals/storage"
)

const (
	MethodList   = "LIST"
	MethodCreate = "CREATE"
	MethodUpdate = "UPDATE"
	MethodDelete = "DELETE"
)

type Call struct {
	Method   string
	Resource string
	ID       string
	Query    backend.Query
	Payload  map[string]any
}

type Recorder struct {
	mu    sync.Mutex
	next  backend.Client
	calls []Call
	fail  map[string]error
}

func New(next backend.Client) *Recorder {
	return &Recorder{next: next, fail: map[string]error{}}
}

// Seeded: LocalClient di atas memory store, diisi resource → list mentah.
func Seeded(data map[string]any) (*Recorder, error) {
	local := backend.NewLocalClient(storage.NewMemoryStore())
	for res, raw := range data {
		if _, err := local.Seed(context.Background(), res, raw); err != nil {
			return nil, err
		}
	}
	return New(local), nil
}

func (r *Recorder) FailOn(method, resource string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail[method+" "+resource] = err
}

func (r *Recorder) Heal(method, resource string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.fail, method+" "+resource)
}

func (r *Recorder) record(c Call) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
	return r.fail[c.Method+" "+c.Resource]
}

// Calls: jumlah panggilan; resource "" = semua resource.
func (r *Recorder) Calls(method, resource string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c.Method == method && (resource == "" || c.Resource == resource) {
			n++
		}
	}
	return n
}

func (r *Recorder) Last(method, resource string) (Call, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.calls) - 1; i >= 0; i-- {
		if c := r.calls[i]; c.Method == method && c.Resource == resource {
			return c, true
		}
	}
	return Call{}, false
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

func (r *Recorder) List(ctx context.Context, resource string, q backend.Query) (any, error) {
	if err := r.record(Call{Method: MethodList, Resource: resource, Query: q}); err != nil {
		return nil, err
	}
	return r.next.List(ctx, resource, q)
}

func (r *Recorder) Create(ctx context.Context, resource string, payload map[string]any) (*backend.Result, error) {
	if err := r.record(Call{Method: MethodCreate, Resource: resource, Payload: payload}); err != nil {
		return nil, err
	}
	return r.next.Create(ctx, resource, payload)
}

func (r *Recorder) Update(ctx context.Context, resource, id string, payload map[string]any) (*backend.Result, error) {
	if err := r.record(Call{Method: MethodUpdate, Resource: resource, ID: id, Payload: payload}); err != nil {
		return nil, err
	}
	return r.next.Update(ctx, resource, id, payload)
}

func (r *Recorder) Delete(ctx context.Context, resource, id string) (*backend.Result, error) {
	if err := r.record(Call{Method: MethodDelete, Resource: resource, ID: id}); err != nil {
		return nil, err
	}
	return r.next.Delete(ctx, resource, id)
}

// file: internals/backend/client.go
package backend

import (
	"context"
	"net/url"
	"sort"
)

// Query: filter list sederhana (field = nilai).
type Query map[string]string

func (q Query) Encode() string {
	if len(q) == 0 {
		return ""
	}
	v := url.Values{}
	for k, val := range q {
		if val != "" {
			v.Set(k, val)
		}
	}
	return v.Encode()
}

func (q Query) keys() []string {
	out := make([]string, 0, len(q))
	for k := range q {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Result: envelope mutasi {success, message, data, errors}.
type Result struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    any                 `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Client: kolaborator REST. List mengembalikan data mentah (array, map
// berkunci atau objek tunggal); pemanggil yang menormalkan.
type Client interface {
	List(ctx context.Context, resource string, q Query) (any, error)
	Create(ctx context.Context, resource string, payload map[string]any) (*Result, error)
	Update(ctx context.Context, resource, id string, payload map[string]any) (*Result, error)
	Delete(ctx context.Context, resource, id string) (*Result, error)
}

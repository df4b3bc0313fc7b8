// file: internals/storage/store.go
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
)

// ErrNotFound dikembalikan Get saat key belum pernah disimpan.
var ErrNotFound = errors.New("storage: key tidak ditemukan")

// Store: key → dokumen JSON mentah. Dipakai backend lokal (mode fallback)
// sebagai pengganti localStorage.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// GetJSON membaca dan decode dokumen; key kosong → (nil, nil).
func GetJSON(ctx context.Context, s Store, key string) (any, error) {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var v any
	if err := sonic.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return v, nil
}

func PutJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := sonic.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Put(ctx, key, raw)
}

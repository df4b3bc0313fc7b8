// file: internals/features/dashboard/session/run.go
package session

import "context"

// Loader: orchestrator yang punya load awal (setara mount di UI).
type Loader interface {
	Load(ctx context.Context) error
}

type loaded[T Loader] struct {
	value  T
	loaded bool
}

// Run menjalankan fn pada orchestrator sesi key. Sesi baru di-load dulu;
// reload=true memaksa load ulang (GET dashboard). loadErr hanya terisi kalau
// load dijalankan pada panggilan ini; load yang gagal diulang di panggilan berikutnya.
func Run[T Loader](ctx context.Context, r *Registry, key Key, create func() T, reload bool, fn func(v T, loadErr error) error) error {
	return With(r, key,
		func() *loaded[T] { return &loaded[T]{value: create()} },
		func(s *loaded[T]) error {
			var loadErr error
			if reload || !s.loaded {
				loadErr = s.value.Load(ctx)
				s.loaded = loadErr == nil
			}
			return fn(s.value, loadErr)
		})
}

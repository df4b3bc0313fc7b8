// file: internals/features/dashboard/session/registry.go
package session

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Key: satu sesi dashboard per role per user.
type Key struct {
	Role   string
	UserID string
}

type entry struct {
	mu       sync.Mutex
	value    any
	lastUsed time.Time
}

// Registry menyimpan orchestrator per user selama proses hidup.
// Operasi pada sesi yang sama berjalan bergantian (lock per sesi);
// sesi yang idle lebih lama dari ttl dibuang saat registry diakses.
type Registry struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[Key]*entry
	log     *zap.Logger
}

// NewRegistry: ttl <= 0 berarti sesi tidak pernah kedaluwarsa.
func NewRegistry(ttl time.Duration, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		ttl:     ttl,
		now:     time.Now,
		entries: map[Key]*entry{},
		log:     log,
	}
}

func (r *Registry) acquire(key Key) *entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweep(now, key)
	e, ok := r.entries[key]
	if !ok || r.idle(e, now) {
		e = &entry{}
		r.entries[key] = e
	}
	e.lastUsed = now
	return e
}

func (r *Registry) idle(e *entry, now time.Time) bool {
	return r.ttl > 0 && now.Sub(e.lastUsed) > r.ttl
}

// sweep dipanggil dengan r.mu terkunci.
func (r *Registry) sweep(now time.Time, keep Key) {
	if r.ttl <= 0 {
		return
	}
	for k, e := range r.entries {
		if k == keep {
			continue
		}
		if r.idle(e, now) {
			delete(r.entries, k)
			r.log.Debug("sesi dashboard kedaluwarsa", zap.String("role", k.Role), zap.String("user_id", k.UserID))
		}
	}
}

// With mengambil (atau membuat) orchestrator sesi lalu menjalankan fn di bawah
// lock sesi tersebut. Sesi yang sudah kedaluwarsa untuk key ini dibuat ulang.
func With[T any](r *Registry, key Key, create func() T, fn func(T) error) error {
	e := r.acquire(key)
	e.mu.Lock()
	defer e.mu.Unlock()

	v, ok := e.value.(T)
	if !ok {
		v = create()
		e.value = v
		r.log.Debug("sesi dashboard baru", zap.String("role", key.Role), zap.String("user_id", key.UserID))
	}
	return fn(v)
}

// Expired: sesi key ini idle lebih lama dari ttl (dipakai sebelum With untuk memaksa load ulang).
func (r *Registry) Expired(key Key) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[key]
	if !ok {
		return true
	}
	return r.idle(e, r.now())
}

func (r *Registry) Remove(key Key) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, key)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

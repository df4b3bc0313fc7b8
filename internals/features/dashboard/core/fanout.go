// file: internals/features/dashboard/core/fanout.go
package core

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"sekolahku_dashboard/internals/backend"
	"sekolahku_dashboard/internals/helpers/pick"
)

// Loader: satu list referensi yang dimuat paralel.
// Required = kalau gagal, load utama tidak dijalankan.
type Loader struct {
	Name     string
	Required bool
	Load     func(ctx context.Context) error
}

// FanOut menjalankan semua loader bersamaan lalu menunggu semuanya selesai.
// Error loader dicatat per nama dan di-log; loader lain tetap jalan.
// Error yang dikembalikan: context batal, atau kegagalan loader Required pertama.
func FanOut(ctx context.Context, log *zap.Logger, loaders ...Loader) (map[string]error, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var (
		mu     sync.Mutex
		failed = map[string]error{}
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, l := range loaders {
		g.Go(func() error {
			err := l.Load(gctx)
			if err == nil {
				return nil
			}
			log.Warn("load gagal", zap.String("resource", l.Name), zap.Bool("required", l.Required), zap.Error(err))
			mu.Lock()
			failed[l.Name] = err
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return failed, err
	}
	for _, l := range loaders {
		if err, ok := failed[l.Name]; ok && l.Required {
			return failed, fmt.Errorf("load %s: %w", l.Name, err)
		}
	}
	return failed, nil
}

// Fetch: List + Normalize. idPaths opsional, lihat pick.Normalize.
func Fetch(ctx context.Context, c backend.Client, resource string, q backend.Query, idPaths ...string) ([]pick.Record, error) {
	raw, err := c.List(ctx, resource, q)
	if err != nil {
		return nil, err
	}
	return pick.Normalize(raw, idPaths...), nil
}

// Sections: pesan error per bagian view. Bagian lain tidak terpengaruh.
type Sections map[string]string

func (s Sections) Set(section string, err error) {
	if err == nil {
		delete(s, section)
		return
	}
	s[section] = Classify(err).Message
}

func (s Sections) Clear(sections ...string) {
	for _, k := range sections {
		delete(s, k)
	}
}

func (s Sections) Copy() map[string]string {
	if len(s) == 0 {
		return nil
	}
	out := make(map[string]string, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

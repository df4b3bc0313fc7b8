package backend

import (
	"go.uber.org/zap"

	"sekolahku_dashboard/internals/configs"
	"sekolahku_dashboard/internals/storage"
)

// New memilih client sesuai BACKEND_MODE. Mode lokal memakai store yang diberikan.
func New(cfg configs.Config, store storage.Store, log *zap.Logger) Client {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.BackendMode == configs.BackendModeHTTP && cfg.BackendBaseURL != "" {
		return NewHTTPClient(cfg.BackendBaseURL,
			WithTimeout(cfg.BackendTimeout),
			WithLogger(log.Named("backend")),
		)
	}
	if store == nil {
		store = storage.NewMemoryStore()
	}
	return NewLocalClient(store)
}

// ForUser: client HTTP diberi token user agar backend melihat identitas yang sama.
// Client lain dikembalikan apa adanya.
func ForUser(c Client, token string) Client {
	if hc, ok := c.(*HTTPClient); ok && token != "" {
		return hc.WithBearer(token)
	}
	return c
}

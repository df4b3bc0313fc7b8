package seeds

import (
	"context"

	"go.uber.org/zap"

	"sekolahku_dashboard/internals/backend"
	dashboard "sekolahku_dashboard/internals/seeds/dashboard"
)

const DefaultSeedFile = "internals/seeds/dashboard/data_dashboard.json"

func RunAllSeeds(ctx context.Context, client *backend.LocalClient, filePath string, log *zap.Logger) error {
	if filePath == "" {
		filePath = DefaultSeedFile
	}

	//* Dashboard sekolah
	_, err := dashboard.SeedDashboardFromJSON(ctx, client, filePath, log)
	return err
}

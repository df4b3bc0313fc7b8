package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sekolahku_dashboard/internals/backend"
	"sekolahku_dashboard/internals/configs"
	database "sekolahku_dashboard/internals/databases"
	"sekolahku_dashboard/internals/features/dashboard/core"
	"sekolahku_dashboard/internals/features/dashboard/session"
	reportservice "sekolahku_dashboard/internals/features/school/reports/service"
	routes "sekolahku_dashboard/internals/route"
	"sekolahku_dashboard/internals/seeds"
)

func main() {
	root := &cobra.Command{
		Use:           "sekolahku-dashboard",
		Short:         "Dashboard akademik sekolah (siswa, guru, wali kelas, admin)",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd(), seedCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}

// bootstrap: env + config + logger.
func bootstrap() (configs.Config, *zap.Logger) {
	configs.LoadEnv(nil)
	cfg := configs.Load()
	log := configs.NewLogger(cfg.AppEnv)
	return cfg, log
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Jalankan HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log := bootstrap()
			defer func() { _ = log.Sync() }()

			// 🔌 penyimpanan lokal (dipakai saat BACKEND_MODE=local)
			store, closeStore, err := database.OpenStore(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			client := backend.New(cfg, store, log)
			deps := core.Deps{
				Client:   client,
				Sessions: session.NewRegistry(cfg.SessionTTL, log.Named("session")),
				Printer:  reportservice.NewPDFPrinter(),
				School:   cfg.SchoolName,
				Log:      log,
			}
			app := routes.NewApp(cfg, deps, log)

			// 🔒 Keep-Alive & timeout koneksi server
			app.Server().ReadTimeout = 15 * time.Second
			app.Server().WriteTimeout = 30 * time.Second
			app.Server().IdleTimeout = 90 * time.Second

			errCh := make(chan error, 1)
			go func() {
				log.Info("✅ Listening",
					zap.String("port", cfg.Port),
					zap.String("backend", backend.ModeLabel(client)),
					zap.String("store", cfg.StoreDriver))
				errCh <- app.Listen("0.0.0.0:" + cfg.Port)
			}()

			// graceful shutdown
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			select {
			case err := <-errCh:
				return err
			case <-quit:
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return app.ShutdownWithContext(ctx)
		},
	}
}

func seedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Isi penyimpanan lokal dari file JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log := bootstrap()
			defer func() { _ = log.Sync() }()

			store, closeStore, err := database.OpenStore(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			return seeds.RunAllSeeds(cmd.Context(), backend.NewLocalClient(store), file, log)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", seeds.DefaultSeedFile, "file JSON seed")
	return cmd
}

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sekolahku_dashboard/internals/configs"
	"sekolahku_dashboard/internals/storage"
)

// DSN postgres dengan statement_timeout pendek; cocok juga untuk PgBouncer.
func DSN(cfg configs.Config) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=%s&options=-c statement_timeout=3000",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBSSLMode, cfg.AppName,
	)
}

func ConnectDB(cfg configs.Config, log *zap.Logger) (*gorm.DB, error) {
	log.Info("🔌 Koneksi ke PostgreSQL...")
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  DSN(cfg),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: configs.NewGormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("gagal konek DB: %w", err)
	}
	TunePool(db, log)
	log.Info("✅ DB connected.")
	return db, nil
}

func TunePool(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("pool tune err", zap.Error(err))
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func ConnectRedis(ctx context.Context, cfg configs.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("gagal konek redis: %w", err)
	}
	return client, nil
}

// OpenStore memilih penyimpanan lokal sesuai STORE_DRIVER.
// Fungsi close yang dikembalikan selalu aman dipanggil.
func OpenStore(ctx context.Context, cfg configs.Config, log *zap.Logger) (storage.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StoreDriver {
	case configs.StorePostgres:
		db, err := ConnectDB(cfg, log)
		if err != nil {
			return nil, noop, err
		}
		s := storage.NewGormStore(db)
		if err := s.Migrate(); err != nil {
			return nil, noop, fmt.Errorf("migrasi dashboard_local_store: %w", err)
		}
		closer := func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		}
		return s, closer, nil

	case configs.StoreRedis:
		client, err := ConnectRedis(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		log.Info("✅ Redis connected.", zap.String("addr", cfg.RedisAddr))
		return storage.NewRedisStore(client, cfg.RedisPrefix, cfg.RedisTTL), client.Close, nil

	case configs.StoreMemory, "":
		return storage.NewMemoryStore(), noop, nil

	default:
		return nil, noop, fmt.Errorf("STORE_DRIVER tidak dikenal: %q", cfg.StoreDriver)
	}
}

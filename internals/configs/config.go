package configs

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config: seluruh konfigurasi service dari ENV.
type Config struct {
	Port      string
	AppEnv    string
	AppName   string
	JWTSecret string

	// backend REST ("http") atau penyimpanan lokal ("local")
	BackendMode    string
	BackendBaseURL string
	BackendTimeout time.Duration

	// memory | postgres | redis
	StoreDriver string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBSSLMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
	RedisTTL      time.Duration

	SessionTTL time.Duration
	SchoolName string

	CorsOrigins     []string
	RateLimitPerMin int
}

const (
	BackendModeHTTP  = "http"
	BackendModeLocal = "local"

	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

func (c Config) IsDevelopment() bool {
	return c.AppEnv == "development" || c.AppEnv == "dev"
}

// =======================
// ENV LOADER
// =======================

// LoadEnv membaca .env kecuali saat jalan di Railway (ENV sudah dari sistem).
func LoadEnv(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	if os.Getenv("RAILWAY_ENVIRONMENT") != "" {
		log.Info("🚀 Running in Railway, menggunakan ENV dari sistem")
		return
	}
	if err := godotenv.Load(); err != nil {
		log.Warn("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		return
	}
	log.Info("✅ .env file berhasil dimuat!")
}

// GetEnv: nilai kosong dianggap belum diset, jadi default yang dipakai.
func GetEnv(key string, defaultValue ...string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func getInt(key string, def int) int {
	v, err := strconv.Atoi(GetEnv(key))
	if err != nil {
		return def
	}
	return v
}

// getDuration menerima "15s"/"2m" atau angka detik.
func getDuration(key string, def time.Duration) time.Duration {
	raw := GetEnv(key)
	if raw == "" {
		return def
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Load membangun Config dari ENV (panggil LoadEnv dulu bila perlu .env).
func Load() Config {
	cfg := Config{
		Port:      GetEnv("PORT", "3000"),
		AppEnv:    strings.ToLower(GetEnv("APP_ENV", "production")),
		AppName:   GetEnv("APP_NAME", "sekolahku-dashboard"),
		JWTSecret: GetEnv("JWT_SECRET", ""),

		BackendMode:    strings.ToLower(GetEnv("BACKEND_MODE", BackendModeLocal)),
		BackendBaseURL: GetEnv("BACKEND_BASE_URL", ""),
		BackendTimeout: getDuration("BACKEND_TIMEOUT", 15*time.Second),

		StoreDriver: strings.ToLower(GetEnv("STORE_DRIVER", StoreMemory)),

		DBUser:     GetEnv("DB_USER", ""),
		DBPassword: GetEnv("DB_PASSWORD", ""),
		DBHost:     GetEnv("DB_HOST", ""),
		DBPort:     GetEnv("DB_PORT", "5432"),
		DBName:     GetEnv("DB_NAME", ""),
		DBSSLMode:  GetEnv("DB_SSLMODE", "require"),

		RedisAddr:     GetEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
		RedisDB:       getInt("REDIS_DB", 0),
		RedisPrefix:   GetEnv("REDIS_PREFIX", "sekolahku:store:"),
		RedisTTL:      getDuration("REDIS_TTL", 0),

		SessionTTL: getDuration("SESSION_TTL", 30*time.Minute),
		SchoolName: GetEnv("SCHOOL_NAME", ""),

		CorsOrigins:     splitList(GetEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:5177")),
		RateLimitPerMin: getInt("RATE_LIMIT_PER_MINUTE", 100),
	}
	if cfg.BackendMode == BackendModeHTTP && cfg.BackendBaseURL == "" {
		// tanpa base URL, mode http tidak bisa jalan
		cfg.BackendMode = BackendModeLocal
	}
	return cfg
}

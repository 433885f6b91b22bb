package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServicePort      string
	MetricsPort      string
	Environment      string
	PostgreSQLConfig PostgreSQLConfig
	JWTConfig        JWTConfig
	KafkaConfig      KafkaConfig
	TracingConfig    TracingConfig
	FileStoreConfig  FileStoreConfig
	SeedSampleData   bool
}

type PostgreSQLConfig struct {
	DBHost        string
	DBPort        string
	DBName        string
	DBUsername    string
	DBPassword    string
	RunMigrations bool
}

type JWTConfig struct {
	JWTSecret string
	JWTKid    string
}

// KafkaConfig leaves product events disabled when BrokerAddress is empty.
type KafkaConfig struct {
	BrokerAddress string
	BrokerTopic   string
}

type TracingConfig struct {
	CollectorHost string
}

type FileStoreConfig struct {
	UploadDir           string
	MaxUploadSize       int64
	OrphanSweepInterval time.Duration
}

const (
	defaultServicePort         = "8080"
	defaultMetricsPort         = "8081"
	defaultUploadDir           = "uploads"
	defaultMaxUploadSize       = 10 << 20
	defaultBrokerTopic         = "products"
	defaultOrphanSweepInterval = time.Hour
)

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		ServicePort: getEnv("SERVICE_PORT", defaultServicePort),
		MetricsPort: getEnv("METRICS_PORT", defaultMetricsPort),
		Environment: getEnv("ENVIRONMENT", "development"),
		PostgreSQLConfig: PostgreSQLConfig{
			DBHost:        os.Getenv("DB_HOST"),
			DBPort:        os.Getenv("DB_PORT"),
			DBName:        os.Getenv("DB_NAME"),
			DBUsername:    os.Getenv("DB_USERNAME"),
			DBPassword:    os.Getenv("DB_PASSWORD"),
			RunMigrations: getEnvBool("RUN_MIGRATIONS", true),
		},
		JWTConfig: JWTConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
			JWTKid:    os.Getenv("JWT_KID"),
		},
		KafkaConfig: KafkaConfig{
			BrokerAddress: os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:   getEnv("BROKER_TOPIC", defaultBrokerTopic),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
		FileStoreConfig: FileStoreConfig{
			UploadDir:           getEnv("UPLOAD_DIR", defaultUploadDir),
			MaxUploadSize:       getEnvInt64("MAX_UPLOAD_SIZE", defaultMaxUploadSize),
			OrphanSweepInterval: getEnvDuration("ORPHAN_SWEEP_INTERVAL", defaultOrphanSweepInterval),
		},
		SeedSampleData: getEnvBool("SEED_SAMPLE_DATA", false),
	}

	return &conf
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvInt64(key string, fallback int64) int64 {
	v, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

// getEnvDuration accepts Go durations ("30m"); "0" disables the job it configures.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	if raw == "0" {
		return 0
	}

	v, err := time.ParseDuration(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server         ServerConfig
	Database       DatabaseConfig
	Redis          RedisConfig
	Cache          CacheConfig
	Log            LogConfig
	Worker         WorkerConfig
	Dataset        DatasetConfig
	Prioritization PrioritizationConfig
	Metrics        MetricsConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	CORSOrigins string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

type CacheConfig struct {
	SessionTTL   time.Duration
	ReferenceTTL time.Duration
	ResultTTL    time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	MaxRetries        int
	BatchSize         int
}

// DatasetConfig описывает источник индикаторных таблиц и границ
type DatasetConfig struct {
	Driver        string // postgres | sqlite
	SQLitePath    string
	ExcludedTable string // вариант без уже охраняемых земель
	IncludedTable string // вариант с охраняемыми землями
	BoundaryTable string
	Jurisdiction  string // STATEFP домена
}

// PrioritizationConfig - параметры движка приоритизации
type PrioritizationConfig struct {
	RegionCeiling int
	BasinCeiling  int
	WeightMin     float64
	WeightMax     float64
	DefaultLimit  int
}

type MetricsConfig struct {
	Enabled   bool
	Namespace string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// .env необязателен: в контейнере всё приходит из окружения
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        viper.GetString("API_HOST"),
			Port:        viper.GetInt("API_PORT"),
			Env:         viper.GetString("API_ENV"),
			CORSOrigins: viper.GetString("API_CORS_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			PoolSize: viper.GetInt("REDIS_POOL_SIZE"),
		},
		Cache: CacheConfig{
			SessionTTL:   time.Duration(viper.GetInt("SESSION_TTL")) * time.Second,
			ReferenceTTL: time.Duration(viper.GetInt("REFERENCE_CACHE_TTL")) * time.Second,
			ResultTTL:    time.Duration(viper.GetInt("RESULT_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        viper.GetInt("WORKER_MAX_RETRIES"),
			BatchSize:         viper.GetInt("WORKER_BATCH_SIZE"),
		},
		Dataset: DatasetConfig{
			Driver:        strings.ToLower(viper.GetString("DATASET_DRIVER")),
			SQLitePath:    viper.GetString("DATASET_SQLITE_PATH"),
			ExcludedTable: viper.GetString("DATASET_EXCLUDED_TABLE"),
			IncludedTable: viper.GetString("DATASET_INCLUDED_TABLE"),
			BoundaryTable: viper.GetString("DATASET_BOUNDARY_TABLE"),
			Jurisdiction:  viper.GetString("DATASET_JURISDICTION"),
		},
		Prioritization: PrioritizationConfig{
			RegionCeiling: viper.GetInt("PRIORITY_REGION_CEILING"),
			BasinCeiling:  viper.GetInt("PRIORITY_BASIN_CEILING"),
			WeightMin:     viper.GetFloat64("PRIORITY_WEIGHT_MIN"),
			WeightMax:     viper.GetFloat64("PRIORITY_WEIGHT_MAX"),
			DefaultLimit:  viper.GetInt("PRIORITY_DEFAULT_LIMIT"),
		},
		Metrics: MetricsConfig{
			Enabled:   viper.GetBool("METRICS_ENABLED"),
			Namespace: viper.GetString("METRICS_NAMESPACE"),
		},
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Set default values if not provided
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.CORSOrigins == "" {
		c.Server.CORSOrigins = "http://localhost:3000,http://localhost:5173"
	}
	if c.Redis.PoolSize == 0 {
		c.Redis.PoolSize = 10
	}
	if c.Cache.SessionTTL == 0 {
		c.Cache.SessionTTL = 24 * time.Hour
	}
	if c.Cache.ReferenceTTL == 0 {
		c.Cache.ReferenceTTL = 6 * time.Hour
	}
	if c.Cache.ResultTTL == 0 {
		c.Cache.ResultTTL = 2 * time.Hour
	}
	if c.Worker.ConsumerGroup == "" {
		c.Worker.ConsumerGroup = "scenario-workers"
	}
	if c.Worker.StreamReadTimeout == 0 {
		c.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if c.Worker.MaxRetries == 0 {
		c.Worker.MaxRetries = 3
	}
	if c.Worker.BatchSize == 0 {
		c.Worker.BatchSize = 10
	}
	if c.Dataset.Driver == "" {
		c.Dataset.Driver = "postgres"
	}
	if c.Dataset.SQLitePath == "" {
		c.Dataset.SQLitePath = "data/huc12.db"
	}
	if c.Dataset.ExcludedTable == "" {
		c.Dataset.ExcludedTable = "huc12_scores_protected_excluded"
	}
	if c.Dataset.IncludedTable == "" {
		c.Dataset.IncludedTable = "huc12_scores_protected_included"
	}
	if c.Dataset.BoundaryTable == "" {
		c.Dataset.BoundaryTable = "admin_boundaries"
	}
	if c.Dataset.Jurisdiction == "" {
		c.Dataset.Jurisdiction = "37"
	}
	if c.Prioritization.RegionCeiling == 0 {
		c.Prioritization.RegionCeiling = 100
	}
	if c.Prioritization.BasinCeiling == 0 {
		c.Prioritization.BasinCeiling = 17
	}
	if c.Prioritization.WeightMax == 0 {
		c.Prioritization.WeightMax = 10
	}
	if c.Prioritization.DefaultLimit == 0 {
		c.Prioritization.DefaultLimit = 3
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "huc_prioritizer"
	}
}

// Validate проверяет согласованность параметров
func (c *Config) Validate() error {
	switch c.Dataset.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DATASET_DRIVER %q", c.Dataset.Driver)
	}
	if c.Prioritization.WeightMin > c.Prioritization.WeightMax {
		return fmt.Errorf("PRIORITY_WEIGHT_MIN (%v) exceeds PRIORITY_WEIGHT_MAX (%v)",
			c.Prioritization.WeightMin, c.Prioritization.WeightMax)
	}
	if c.Prioritization.RegionCeiling < 1 || c.Prioritization.BasinCeiling < 1 {
		return fmt.Errorf("picker ceilings must be positive")
	}
	if c.Prioritization.DefaultLimit < 1 {
		return fmt.Errorf("PRIORITY_DEFAULT_LIMIT must be positive")
	}
	if err := validateOrigins(c.Server.CORSOrigins); err != nil {
		return err
	}
	return nil
}

// validateOrigins: "*" допустим только один; в списке - явные источники или шаблон поддоменов
func validateOrigins(origins string) error {
	origins = strings.TrimSpace(origins)
	if origins == "*" {
		return nil
	}
	for _, o := range strings.Split(origins, ",") {
		o = strings.TrimSpace(o)
		if strings.Contains(strings.Replace(o, "://*.", "://", 1), "*") {
			return fmt.Errorf("API_CORS_ORIGINS: wildcard %q must be the only entry", o)
		}
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

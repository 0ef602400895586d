package cfg

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
)

type Config struct {
	App   *AppCfg
	Http  *HTTPConfig
	Grpc  *GRPCConfig
	Store *StoreCfg
	Db    *PGDBCfg
	Redis *RedisCfg
	Kafka *KafkaCfg
}

type AppCfg struct {
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

type HTTPConfig struct {
	Port         string        `envconfig:"HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"10s"`
	IdleTimeout  time.Duration `envconfig:"KEEP_ALIVE" default:"60s"`
	SwaggerHost  string        `envconfig:"SWAGGER_HOST" default:"localhost:8080"`
}

type GRPCConfig struct {
	Port        string `envconfig:"GRPC_PORT" default:"8091"`
	NetworkMode string `envconfig:"GRPC_NETWORK_MODE" default:"tcp"`
}

type StoreCfg struct {
	Driver string `envconfig:"STORE_DRIVER" default:"memory"` // memory | postgres
}

type PGDBCfg struct {
	Host           string `envconfig:"POSTGRES_HOST" default:"localhost"`
	Port           string `envconfig:"POSTGRES_PORT" default:"5432"`
	User           string `envconfig:"POSTGRES_USER"`
	Password       string `envconfig:"POSTGRES_PASSWORD"`
	DBName         string `envconfig:"POSTGRES_DB"`
	SSLMode        string `envconfig:"SSL_MODE" default:"disable"`
	MigrationsPath string `envconfig:"MIGRATIONS_PATH" default:"file://db/migrations"`

	// Повторы подключения при старте.
	ConnectRetries     int           `envconfig:"POSTGRES_CONNECT_RETRIES" default:"5"`
	ConnectBackoffBase time.Duration `envconfig:"POSTGRES_CONNECT_BACKOFF_BASE" default:"500ms"`
	ConnectBackoffMax  time.Duration `envconfig:"POSTGRES_CONNECT_BACKOFF_MAX" default:"10s"`
}

type RedisCfg struct {
	Addr        string        `envconfig:"REDIS_ADDR"` // пустой адрес отключает кэш
	Password    string        `envconfig:"REDIS_PASSWORD"`
	User        string        `envconfig:"REDIS_USER"`
	DB          int           `envconfig:"REDIS_DB_ID" default:"0"`
	MaxRetries  int           `envconfig:"MAX_RETRIES" default:"3"`
	DialTimeout time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	Timeout     time.Duration `envconfig:"REDIS_TIMEOUT" default:"3s"`
	ProductTTL  time.Duration `envconfig:"PRODUCT_TTL" default:"3m"`
}

type KafkaCfg struct {
	Brokers           []string `envconfig:"KAFKA_BROKERS"` // пустой список отключает публикацию событий
	Topic             string   `envconfig:"KAFKA_TOPIC" default:"product-events"`
	NetworkMode       string   `envconfig:"KAFKA_NETWORK_MODE" default:"tcp"`
	Partitions        int      `envconfig:"KAFKA_PARTITIONS" default:"3"`
	ReplicationFactor int      `envconfig:"REPLICATION_FACTOR" default:"1"`
}

func (r *RedisCfg) Enabled() bool {
	return r.Addr != ""
}

func (k *KafkaCfg) Enabled() bool {
	return len(k.Brokers) > 0
}

// Load безопасно загружает конфигурацию из окружения (и .env, если он есть) и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Errorf(err, "failed to read .env")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var c Config
	c.App = &AppCfg{}
	c.Http = &HTTPConfig{}
	c.Grpc = &GRPCConfig{}
	c.Store = &StoreCfg{}
	c.Db = &PGDBCfg{}
	c.Redis = &RedisCfg{}
	c.Kafka = &KafkaCfg{}

	sections := []struct {
		name   string
		target any
	}{
		{"app", c.App},
		{"http", c.Http},
		{"grpc", c.Grpc},
		{"store", c.Store},
		{"postgres", c.Db},
		{"redis", c.Redis},
		{"kafka", c.Kafka},
	}

	for _, s := range sections {
		if err := envconfig.Process("", s.target); err != nil {
			log.Errorf(err, "invalid %s config", s.name)
			return nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("%w: %v", e.ErrIncorrectEnvVariable, err))
		}
	}

	if err := validate(&c); err != nil {
		log.Errorf(err, "invalid config")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &c, nil
}

func validate(c *Config) error {
	switch c.Store.Driver {
	case StoreDriverMemory:
		return nil
	case StoreDriverPostgres:
		return validatePGDBCfg(c.Db)
	default:
		return fmt.Errorf("%w: %q", e.ErrUnknownStoreDriver, c.Store.Driver)
	}
}

func validatePGDBCfg(db *PGDBCfg) error {
	required := []struct{ key, value string }{
		{"POSTGRES_USER", db.User},
		{"POSTGRES_PASSWORD", db.Password},
		{"POSTGRES_DB", db.DBName},
	}

	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%w: %s is required", e.ErrIncorrectEnvVariable, r.key)
		}
	}

	if db.ConnectBackoffBase <= 0 || db.ConnectBackoffMax < db.ConnectBackoffBase {
		return fmt.Errorf("%w: POSTGRES_CONNECT_BACKOFF_BASE must be positive and not exceed POSTGRES_CONNECT_BACKOFF_MAX",
			e.ErrIncorrectEnvVariable)
	}

	return nil
}

// DSN собирает строку подключения к PostgreSQL.
func (db *PGDBCfg) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		db.Host,
		db.Port,
		db.User,
		db.Password,
		db.DBName,
		db.SSLMode,
	)
}

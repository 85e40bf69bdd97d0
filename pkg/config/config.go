package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	Scheduler    SchedulerConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if _, err := cfg.Scheduler.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"GASLINE_APP_ENV" required:"true"`
	Port         string `envconfig:"GASLINE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"GASLINE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GASLINE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"GASLINE_SERVICE_KIND" default:"cron-worker"`
}

type DBConfig struct {
	DSN    string `envconfig:"GASLINE_DB_DSN"`
	Driver string `envconfig:"GASLINE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"GASLINE_DB_HOST"`
	LegacyPort     int    `envconfig:"GASLINE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"GASLINE_DB_USER"`
	LegacyPassword string `envconfig:"GASLINE_DB_PASSWORD"`
	LegacyName     string `envconfig:"GASLINE_DB_NAME"`
	LegacySSLMode  string `envconfig:"GASLINE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"GASLINE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GASLINE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GASLINE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GASLINE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GASLINE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"GASLINE_REDIS_ADDR"`
	Password     string        `envconfig:"GASLINE_REDIS_PASSWORD"`
	DB           int           `envconfig:"GASLINE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GASLINE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GASLINE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GASLINE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GASLINE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GASLINE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SchedulerConfig controls the daily driver-assignment run: the business
// time zone the "today" window is computed in and the local hour the batch
// fires at.
type SchedulerConfig struct {
	TimeZone    string `envconfig:"GASLINE_SCHEDULER_TIMEZONE" default:"America/Chicago"`
	RunHour     int    `envconfig:"GASLINE_SCHEDULER_RUN_HOUR" default:"1"`
	MetricsPort string `envconfig:"GASLINE_SCHEDULER_METRICS_PORT" default:"9090"`
}

// Location resolves the configured business time zone.
func (s SchedulerConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduler timezone %q: %w", s.TimeZone, err)
	}
	return loc, nil
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"GASLINE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}

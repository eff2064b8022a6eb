package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Firebase      FirebaseConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MERCATO_APP_ENV" required:"true"`
	Port         string `envconfig:"MERCATO_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MERCATO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MERCATO_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"MERCATO_CORS_ORIGINS" default:"http://localhost:3000,https://app.mercato.example"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"MERCATO_DB_DSN"`
	Driver string `envconfig:"MERCATO_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MERCATO_DB_HOST"`
	LegacyPort     int    `envconfig:"MERCATO_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MERCATO_DB_USER"`
	LegacyPassword string `envconfig:"MERCATO_DB_PASSWORD"`
	LegacyName     string `envconfig:"MERCATO_DB_NAME"`
	LegacySSLMode  string `envconfig:"MERCATO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MERCATO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MERCATO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MERCATO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MERCATO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the configured driver is sqlite (dev/test only).
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"MERCATO_REDIS_URL" required:"true"`
	Address      string        `envconfig:"MERCATO_REDIS_ADDR"`
	Password     string        `envconfig:"MERCATO_REDIS_PASSWORD"`
	DB           int           `envconfig:"MERCATO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MERCATO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MERCATO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MERCATO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MERCATO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MERCATO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"MERCATO_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"MERCATO_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"MERCATO_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"MERCATO_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"MERCATO_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"MERCATO_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"MERCATO_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"MERCATO_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"MERCATO_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"MERCATO_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"MERCATO_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"MERCATO_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"MERCATO_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"MERCATO_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"MERCATO_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

// FirebaseConfig drives the best-effort profile sync to Firebase Realtime
// Database. When DatabaseURL is empty the sync is disabled entirely.
type FirebaseConfig struct {
	DatabaseURL    string        `envconfig:"MERCATO_FIREBASE_DATABASE_URL"`
	DatabaseSecret string        `envconfig:"MERCATO_FIREBASE_DATABASE_SECRET"`
	Timeout        time.Duration `envconfig:"MERCATO_FIREBASE_TIMEOUT" default:"10s"`
}

func (f FirebaseConfig) Enabled() bool {
	return strings.TrimSpace(f.DatabaseURL) != ""
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"MERCATO_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" || db.IsSQLite() {
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

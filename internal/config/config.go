package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Push       PushConfig       `yaml:"push"`
	Storage    StorageConfig    `yaml:"storage"`
	Public     PublicConfig     `yaml:"public"`
	Recipients RecipientsConfig `yaml:"recipients"`
	Activity   ActivityConfig   `yaml:"activity"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
	RateLimit  RateLimitConfig  `yaml:"ratelimit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Request-Id"`
	ExposedHeaders   string `yaml:"exposed_headers"   env:"CORS_EXPOSED_HEADERS"   env-default:"Content-Disposition,Content-Length,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	APIPrefix       string        `yaml:"api_prefix"       env:"SERVER_API_PREFIX"       env-default:"/api/v1"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
// When Embedded is true a local PostgreSQL is started and DSN is ignored.
//
// Bool settings in this package all default to false: cleanenv applies
// env-default to any field still zero after the YAML pass, so a YAML false
// could never override a true default.
type DatabaseConfig struct {
	DSN              string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns         int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns         int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime  time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime  time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	SkipMigrations   bool          `yaml:"skip_migrations"    env:"DATABASE_SKIP_MIGRATIONS"`
	Embedded         bool          `yaml:"embedded"           env:"DATABASE_EMBEDDED"`
	EmbeddedPort     uint32        `yaml:"embedded_port"      env:"DATABASE_EMBEDDED_PORT"      env-default:"5433"`
	EmbeddedDataPath string        `yaml:"embedded_data_path" env:"DATABASE_EMBEDDED_DATA_PATH" env-default:"./data/pg"`
}

// AuthConfig holds token and password settings.
type AuthConfig struct {
	JWTSecret           string        `yaml:"jwt_secret"           env:"AUTH_JWT_SECRET"           env-required:"true"`
	JWTIssuer           string        `yaml:"jwt_issuer"           env:"AUTH_JWT_ISSUER"           env-default:"doctrkr"`
	TokenTTL            time.Duration `yaml:"token_ttl"            env:"AUTH_TOKEN_TTL"            env-default:"24h"`
	BcryptCost          int           `yaml:"bcrypt_cost"          env:"AUTH_BCRYPT_COST"          env-default:"11"`
	DisableRegistration bool          `yaml:"disable_registration" env:"AUTH_DISABLE_REGISTRATION"`
}

// RegistrationEnabled reports whether POST /auth/register is served.
func (c AuthConfig) RegistrationEnabled() bool { return !c.DisableRegistration }

// PushConfig holds VAPID web push settings. Push is disabled when the keys are empty.
type PushConfig struct {
	VAPIDPublicKey  string        `yaml:"vapid_public_key"  env:"PUSH_VAPID_PUBLIC_KEY"`
	VAPIDPrivateKey string        `yaml:"vapid_private_key" env:"PUSH_VAPID_PRIVATE_KEY"`
	Subject         string        `yaml:"subject"           env:"PUSH_SUBJECT"           env-default:"mailto:admin@localhost"`
	TTL             time.Duration `yaml:"ttl"               env:"PUSH_TTL"               env-default:"24h"`
}

// Enabled reports whether both VAPID keys are configured.
func (c PushConfig) Enabled() bool {
	return c.VAPIDPublicKey != "" && c.VAPIDPrivateKey != ""
}

// StorageConfig selects and configures the attachment storage backend.
type StorageConfig struct {
	Driver         string `yaml:"driver"           env:"STORAGE_DRIVER"           env-default:"local"`
	LocalDir       string `yaml:"local_dir"        env:"STORAGE_LOCAL_DIR"        env-default:"./uploads"`
	PublicBaseURL  string `yaml:"public_base_url"  env:"STORAGE_PUBLIC_BASE_URL"  env-default:"/uploads"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes" env:"STORAGE_MAX_UPLOAD_BYTES" env-default:"20971520"`

	S3Endpoint       string `yaml:"s3_endpoint"         env:"S3_ENDPOINT"`
	S3Region         string `yaml:"s3_region"           env:"S3_REGION"           env-default:"us-east-1"`
	S3Bucket         string `yaml:"s3_bucket"           env:"S3_BUCKET"`
	S3AccessKey      string `yaml:"s3_access_key"       env:"S3_ACCESS_KEY"`
	S3SecretKey      string `yaml:"s3_secret_key"       env:"S3_SECRET_KEY"`
	S3ForcePathStyle bool   `yaml:"s3_force_path_style" env:"S3_FORCE_PATH_STYLE"`
}

// PublicConfig holds settings for the unauthenticated tracking pages.
type PublicConfig struct {
	BaseURL       string `yaml:"base_url"        env:"PUBLIC_BASE_URL"        env-default:"http://localhost:5173"`
	RatePerMinute int    `yaml:"rate_per_minute" env:"PUBLIC_RATE_PER_MINUTE" env-default:"60"`
}

// RecipientsConfig holds recipient listing settings.
type RecipientsConfig struct {
	MaxListingNo int `yaml:"max_listing_no" env:"RECIPIENTS_MAX_LISTING_NO" env-default:"1000"`
}

// ActivityConfig holds activity log retention.
type ActivityConfig struct {
	RetentionDays int `yaml:"retention_days" env:"ACTIVITY_RETENTION_DAYS" env-default:"90"`
}

// RateLimitConfig limits auth endpoints per client IP.
type RateLimitConfig struct {
	AuthPerMinute   int           `yaml:"auth_per_minute"  env:"RATELIMIT_AUTH_PER_MINUTE" env-default:"20"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATELIMIT_CLEANUP"         env-default:"5m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

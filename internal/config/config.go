// Package config builds the runtime configuration from defaults, an
// optional JSON file, the environment (including a .env file) and
// command-line flags, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	CachePolicyCache  = "cache"
	CachePolicyAlways = "always"

	EngineLexical = "lexical"
	EngineOpenAI  = "openai"
	EngineGemini  = "gemini"

	ArchiveNone  = "none"
	ArchiveLocal = "local"
	ArchiveS3    = "s3"
)

// Config holds runtime settings for docqa.
type Config struct {
	DatabaseDriver string
	DatabaseDSN    string

	SecretPolicy      string
	EncryptionKeyEnv  string
	EncryptionKeyFile string

	CachePolicy string

	QAEngine      string
	OpenAIBaseURL string
	OpenAIAPIKey  string
	OpenAIModel   string
	GeminiAPIKey  string
	GeminiModel   string

	HTTPAddr       string
	MaxUploadBytes int64

	LogFormat string
	LogLevel  string

	ArchiveBackend string
	ArchiveDir     string
	S3AccessKey    string
	S3SecretKey    string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
}

// LoadDefaults populates Config with local development defaults: an sqlite
// file next to the binary, encrypted secrets and the offline engine.
func (c *Config) LoadDefaults() {
	c.DatabaseDriver = DriverSQLite
	c.DatabaseDSN = "users.db"
	c.SecretPolicy = "encrypted"
	c.EncryptionKeyEnv = "ENCRYPTION_KEY"
	c.EncryptionKeyFile = "encryption_key.key"
	c.CachePolicy = CachePolicyCache
	c.QAEngine = EngineLexical
	c.OpenAIBaseURL = ""
	c.OpenAIAPIKey = ""
	c.OpenAIModel = "gpt-4o-mini"
	c.GeminiAPIKey = ""
	c.GeminiModel = "gemini-1.5-flash"
	c.HTTPAddr = ":8080"
	c.MaxUploadBytes = 20 << 20
	c.LogFormat = "json"
	c.LogLevel = "info"
	c.ArchiveBackend = ArchiveNone
	c.ArchiveDir = "uploads"
	c.S3AccessKey = ""
	c.S3SecretKey = ""
	c.S3Bucket = "docqa"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = ""
}

// Load returns the effective configuration. jsonPath may be empty; fs may
// be nil when no flags were registered.
func Load(jsonPath string, fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, jsonPath); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := applyFlags(cfg, fs); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects unknown enum values and incomplete backend settings.
func (c *Config) Validate() error {
	var errs []error

	oneOf := func(key, v string, allowed ...string) {
		if !slices.Contains(allowed, v) {
			errs = append(errs, fmt.Errorf("%s: %q is not one of %s", key, v, strings.Join(allowed, ", ")))
		}
	}

	oneOf("database_driver", c.DatabaseDriver, DriverSQLite, DriverPostgres)
	oneOf("secret_policy", c.SecretPolicy, "plaintext", "encrypted", "hashed")
	oneOf("cache_policy", c.CachePolicy, CachePolicyCache, CachePolicyAlways)
	oneOf("qa_engine", c.QAEngine, EngineLexical, EngineOpenAI, EngineGemini)
	oneOf("log_format", c.LogFormat, "json", "text", "zap")
	oneOf("log_level", strings.ToLower(c.LogLevel), "debug", "info", "warn", "error")
	oneOf("archive_backend", c.ArchiveBackend, ArchiveNone, ArchiveLocal, ArchiveS3)

	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database_dsn must not be empty"))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("max_upload_bytes must be positive"))
	}
	if c.SecretPolicy == "encrypted" && c.EncryptionKeyEnv == "" && c.EncryptionKeyFile == "" {
		errs = append(errs, errors.New("encrypted secret policy needs encryption_key_env or encryption_key_file"))
	}
	if c.QAEngine == EngineGemini && c.GeminiAPIKey == "" {
		errs = append(errs, errors.New("gemini_api_key is required for the gemini engine"))
	}
	if c.ArchiveBackend == ArchiveS3 && c.S3Bucket == "" {
		errs = append(errs, errors.New("s3_bucket is required for the s3 archive"))
	}
	if c.ArchiveBackend == ArchiveLocal && c.ArchiveDir == "" {
		errs = append(errs, errors.New("archive_dir is required for the local archive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// setting binds one configuration key to its field. The key is the JSON
// name; flags use it with dashes and the environment as DOCQA_<UPPER>.
type setting struct {
	key   string
	usage string
	str   *string
	i64   *int64
}

func (c *Config) settings() []setting {
	return []setting{
		{key: "database_driver", usage: "database driver (sqlite, postgres)", str: &c.DatabaseDriver},
		{key: "database_dsn", usage: "database DSN or sqlite file path", str: &c.DatabaseDSN},
		{key: "secret_policy", usage: "password storage (plaintext, encrypted, hashed)", str: &c.SecretPolicy},
		{key: "encryption_key_env", usage: "environment variable holding the encryption key", str: &c.EncryptionKeyEnv},
		{key: "encryption_key_file", usage: "encryption key file, created if missing", str: &c.EncryptionKeyFile},
		{key: "cache_policy", usage: "document cache policy (cache, always)", str: &c.CachePolicy},
		{key: "qa_engine", usage: "question answering engine (lexical, openai, gemini)", str: &c.QAEngine},
		{key: "openai_base_url", usage: "OpenAI-compatible API base URL", str: &c.OpenAIBaseURL},
		{key: "openai_api_key", usage: "OpenAI API key", str: &c.OpenAIAPIKey},
		{key: "openai_model", usage: "OpenAI model", str: &c.OpenAIModel},
		{key: "gemini_api_key", usage: "Gemini API key", str: &c.GeminiAPIKey},
		{key: "gemini_model", usage: "Gemini model", str: &c.GeminiModel},
		{key: "http_addr", usage: "HTTP listen address", str: &c.HTTPAddr},
		{key: "max_upload_bytes", usage: "maximum accepted upload size", i64: &c.MaxUploadBytes},
		{key: "log_format", usage: "log format (json, text, zap)", str: &c.LogFormat},
		{key: "log_level", usage: "log level (debug, info, warn, error)", str: &c.LogLevel},
		{key: "archive_backend", usage: "upload archive (none, local, s3)", str: &c.ArchiveBackend},
		{key: "archive_dir", usage: "local archive directory", str: &c.ArchiveDir},
		{key: "s3_access_key", usage: "S3 access key", str: &c.S3AccessKey},
		{key: "s3_secret_key", usage: "S3 secret key", str: &c.S3SecretKey},
		{key: "s3_bucket", usage: "S3 bucket", str: &c.S3Bucket},
		{key: "s3_region", usage: "S3 region", str: &c.S3Region},
		{key: "s3_base_endpoint", usage: "S3 base endpoint for compatible stores", str: &c.S3BaseEndpoint},
	}
}

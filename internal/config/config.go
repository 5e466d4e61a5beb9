package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	envPort                  = "PORT"
	envServerReadTimeout     = "SERVER_READ_TIMEOUT"
	envServerWriteTimeout    = "SERVER_WRITE_TIMEOUT"
	envServerShutdownTimeout = "SERVER_SHUTDOWN_TIMEOUT"
	envCORSAllowedOrigins    = "CORS_ALLOWED_ORIGINS"
	envRateLimitRPS          = "RATE_LIMIT_RPS"
	envRateLimitBurst        = "RATE_LIMIT_BURST"
	envEnableProfiling       = "ENABLE_PROFILING"
	envDatabaseURL           = "DATABASE_URL"
	envMongoDBURI            = "MONGODB_URI"
	envDatabaseName          = "DATABASE_NAME"
	envDBConnectTimeout      = "DB_CONNECT_TIMEOUT"
	envEnvironment           = "ENVIRONMENT"
	envLogLevel              = "LOG_LEVEL"
	envLogFormat             = "LOG_FORMAT"
	envProjectListLimit      = "PROJECT_LIST_LIMIT"
	envAPIURL                = "CIPHERSTUDIO_API_URL"
	envLocalStore            = "CIPHERSTUDIO_LOCAL_STORE"
	envAutoSave              = "CIPHERSTUDIO_AUTOSAVE"
	envAutoSaveDelay         = "CIPHERSTUDIO_AUTOSAVE_DELAY"
	envHTTPTimeout           = "CIPHERSTUDIO_HTTP_TIMEOUT"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"

	defaultServerPort         = "8080"
	defaultServerReadTimeout  = 10 * time.Second
	defaultServerWriteTimeout = 10 * time.Second
	defaultServerShutdown     = 10 * time.Second
	defaultCORSAllowedOrigins = "*"
	defaultRateLimitRPS       = 100
	defaultRateLimitBurst     = 200
	defaultDatabaseName       = "cipherstudio"
	defaultDBConnectTimeout   = 10 * time.Second
	defaultEnvironment        = EnvDevelopment
	defaultLogLevel           = "info"
	defaultLogFormat          = "json"
	defaultProjectListLimit   = 50
	defaultAPIURL             = "http://localhost:8080"
	defaultLocalStoreFmt      = "sqlite://%s"
	defaultLocalStoreFile     = ".cipherstudio/projects.db"
	defaultAutoSave           = true
	defaultAutoSaveDelay      = 2 * time.Second
	defaultHTTPTimeout        = 10 * time.Second

	configFileName = "cipherstudio"
	configFileType = "yaml"

	errPortRequiredFmt         = "PORT must be set"
	errPositiveValueFmt        = "%s must be positive"
	errUnknownEnvironmentFmt   = "ENVIRONMENT must be one of development, production, test; got %q"
	errUnknownLogLevelFmt      = "LOG_LEVEL must be one of debug, info, warn, error; got %q"
	errUnknownLogFormatFmt     = "LOG_FORMAT must be json or console; got %q"
	errAPIURLRequiredFmt       = "CIPHERSTUDIO_API_URL must be set"
	errLocalStoreRequiredFmt   = "CIPHERSTUDIO_LOCAL_STORE must be set"
	errReadConfigFileFmt       = "error reading config file: %w"
	errInvalidConfigurationFmt = "invalid configuration: %w"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	App      AppConfig
	Client   ClientConfig
}

type ServerConfig struct {
	Port               string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	ShutdownTimeout    time.Duration
	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
	// EnableProfiling mounts /debug/pprof and /debug/memory.
	EnableProfiling    bool
}

type DatabaseConfig struct {
	URL            string
	Name           string
	ConnectTimeout time.Duration
}

type AppConfig struct {
	Environment      string
	LogLevel         string
	LogFormat        string
	ProjectListLimit int
}

type ClientConfig struct {
	APIURL        string
	LocalStore    string
	AutoSave      bool
	AutoSaveDelay time.Duration
	HTTPTimeout   time.Duration
}

func (c *AppConfig) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Load reads defaults, then an optional cipherstudio.yaml, then the environment.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := v.BindEnv(envDatabaseURL, envDatabaseURL, envMongoDBURI); err != nil {
		log.Warn().Err(err).Msg(messages.bindEnvFailed(envDatabaseURL))
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.cipherstudio")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf(errReadConfigFileFmt, err)
		}
		log.Debug().Msg(messages.configFileNotFound())
	} else {
		log.Debug().Str("file", v.ConfigFileUsed()).Msg(messages.usingConfigFile())
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               v.GetString(envPort),
			ReadTimeout:        v.GetDuration(envServerReadTimeout),
			WriteTimeout:       v.GetDuration(envServerWriteTimeout),
			ShutdownTimeout:    v.GetDuration(envServerShutdownTimeout),
			CORSAllowedOrigins: splitList(v.GetString(envCORSAllowedOrigins)),
			RateLimitRPS:       v.GetFloat64(envRateLimitRPS),
			RateLimitBurst:     v.GetInt(envRateLimitBurst),
			EnableProfiling:    v.GetBool(envEnableProfiling),
		},
		Database: DatabaseConfig{
			URL:            v.GetString(envDatabaseURL),
			Name:           v.GetString(envDatabaseName),
			ConnectTimeout: v.GetDuration(envDBConnectTimeout),
		},
		App: AppConfig{
			Environment:      strings.ToLower(v.GetString(envEnvironment)),
			LogLevel:         strings.ToLower(v.GetString(envLogLevel)),
			LogFormat:        strings.ToLower(v.GetString(envLogFormat)),
			ProjectListLimit: v.GetInt(envProjectListLimit),
		},
		Client: ClientConfig{
			APIURL:        strings.TrimRight(v.GetString(envAPIURL), "/"),
			LocalStore:    os.ExpandEnv(v.GetString(envLocalStore)),
			AutoSave:      v.GetBool(envAutoSave),
			AutoSaveDelay: v.GetDuration(envAutoSaveDelay),
			HTTPTimeout:   v.GetDuration(envHTTPTimeout),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf(errInvalidConfigurationFmt, err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(envPort, defaultServerPort)
	v.SetDefault(envServerReadTimeout, defaultServerReadTimeout)
	v.SetDefault(envServerWriteTimeout, defaultServerWriteTimeout)
	v.SetDefault(envServerShutdownTimeout, defaultServerShutdown)
	v.SetDefault(envCORSAllowedOrigins, defaultCORSAllowedOrigins)
	v.SetDefault(envRateLimitRPS, defaultRateLimitRPS)
	v.SetDefault(envRateLimitBurst, defaultRateLimitBurst)
	v.SetDefault(envDatabaseName, defaultDatabaseName)
	v.SetDefault(envDBConnectTimeout, defaultDBConnectTimeout)
	v.SetDefault(envEnvironment, defaultEnvironment)
	v.SetDefault(envLogLevel, defaultLogLevel)
	v.SetDefault(envLogFormat, defaultLogFormat)
	v.SetDefault(envProjectListLimit, defaultProjectListLimit)
	v.SetDefault(envAPIURL, defaultAPIURL)
	v.SetDefault(envLocalStore, defaultLocalStore())
	v.SetDefault(envAutoSave, defaultAutoSave)
	v.SetDefault(envAutoSaveDelay, defaultAutoSaveDelay)
	v.SetDefault(envHTTPTimeout, defaultHTTPTimeout)
}

func defaultLocalStore() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return fmt.Sprintf(defaultLocalStoreFmt, filepath.Join(home, defaultLocalStoreFile))
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf(errPortRequiredFmt)
	}

	positives := []struct {
		name  string
		value float64
	}{
		{envRateLimitRPS, c.Server.RateLimitRPS},
		{envRateLimitBurst, float64(c.Server.RateLimitBurst)},
		{envProjectListLimit, float64(c.App.ProjectListLimit)},
		{envServerReadTimeout, float64(c.Server.ReadTimeout)},
		{envServerWriteTimeout, float64(c.Server.WriteTimeout)},
		{envServerShutdownTimeout, float64(c.Server.ShutdownTimeout)},
		{envDBConnectTimeout, float64(c.Database.ConnectTimeout)},
		{envAutoSaveDelay, float64(c.Client.AutoSaveDelay)},
		{envHTTPTimeout, float64(c.Client.HTTPTimeout)},
	}
	for _, p := range positives {
		if p.value <= 0 {
			return fmt.Errorf(errPositiveValueFmt, p.name)
		}
	}

	switch c.App.Environment {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		return fmt.Errorf(errUnknownEnvironmentFmt, c.App.Environment)
	}

	switch c.App.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf(errUnknownLogLevelFmt, c.App.LogLevel)
	}

	switch c.App.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf(errUnknownLogFormatFmt, c.App.LogFormat)
	}

	if c.Client.APIURL == "" {
		return fmt.Errorf(errAPIURLRequiredFmt)
	}

	if c.Client.LocalStore == "" {
		return fmt.Errorf(errLocalStoreRequiredFmt)
	}

	return nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

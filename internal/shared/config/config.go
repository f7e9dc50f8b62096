package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"starforge/internal/shared/utils"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Auth       AuthConfig
	Frontend   FrontendConfig
	Logging    LoggingConfig
	RateLimit  RateLimitConfig
	Galaxy     GalaxyConfig
	System     SystemConfig
	Generation GenerationConfig
}

type ServerConfig struct {
	Port         string
	URL          string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Enabled         bool
	Driver          string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	MigrationsPath  string
}

type RedisConfig struct {
	Enabled     bool
	URL         string
	Host        string
	Port        string
	Password    string
	DB          int
	SnapshotTTL time.Duration
}

type AuthConfig struct {
	JWTSecret       string
	TokenExpiration time.Duration
}

type FrontendConfig struct {
	URL       string
	CORSDebug bool
}

type LoggingConfig struct {
	Level      string
	Format     string
	JSONFormat bool
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
	TrustProxy        bool
}

// GalaxyConfig holds the spiral placement parameters
type GalaxyConfig struct {
	Seed         int64   `yaml:"seed"`
	NumStars     int     `yaml:"num_stars"`
	GalaxyRadius float64 `yaml:"galaxy_radius"`
	ArmStrength  float64 `yaml:"arm_strength"`
	ArmCount     int     `yaml:"arm_count"`
	NoiseScale   float64 `yaml:"noise_scale"`
}

// SystemConfig holds the planetary system sampling parameters
type SystemConfig struct {
	MinBodies        int     `yaml:"min_bodies"`
	MaxBodies        int     `yaml:"max_bodies"`
	LogMeanMass      float64 `yaml:"log_mean_mass"`
	LogStdMass       float64 `yaml:"log_std_mass"`
	RocheLimitFactor float64 `yaml:"roche_limit_factor"`
}

type GenerationConfig struct {
	Workers    int
	Sectors    int
	PresetPath string
	StarNames  []string
}

// preset is the on-disk shape of GENERATION_PRESET_PATH
type preset struct {
	Galaxy *GalaxyConfig `yaml:"galaxy"`
	System *SystemConfig `yaml:"system"`
}

var GlobalConfig *Config

func Init() error {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	config, err := load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := config.validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	GlobalConfig = config
	return nil
}

func load() (*Config, error) {
	config := &Config{
		Server:     loadServerConfig(),
		Database:   loadDatabaseConfig(),
		Redis:      loadRedisConfig(),
		Auth:       loadAuthConfig(),
		Frontend:   loadFrontendConfig(),
		Logging:    loadLoggingConfig(),
		RateLimit:  loadRateLimitConfig(),
		Galaxy:     loadGalaxyConfig(),
		System:     loadSystemConfig(),
		Generation: loadGenerationConfig(),
	}

	if config.Generation.PresetPath != "" {
		if err := config.applyPreset(config.Generation.PresetPath); err != nil {
			return nil, err
		}
	}

	return config, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:         utils.GetEnv("SERVER_PORT", "8080"),
		URL:          utils.GetEnv("SERVER_URL", "http://localhost:8080"),
		Environment:  utils.GetEnv("ENVIRONMENT", "development"),
		ReadTimeout:  time.Duration(utils.GetEnvInt("SERVER_READ_TIMEOUT_SECONDS", 15)) * time.Second,
		WriteTimeout: time.Duration(utils.GetEnvInt("SERVER_WRITE_TIMEOUT_SECONDS", 60)) * time.Second,
		IdleTimeout:  time.Duration(utils.GetEnvInt("SERVER_IDLE_TIMEOUT_SECONDS", 60)) * time.Second,
	}
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Enabled:         utils.GetEnvBool("DB_ENABLED", false),
		Driver:          utils.GetEnv("DB_DRIVER", "postgres"),
		Host:            utils.GetEnv("DB_HOST", "localhost"),
		Port:            utils.GetEnv("DB_PORT", "5432"),
		User:            utils.GetEnv("DB_USER", "postgres"),
		Password:        utils.GetEnv("DB_PASSWORD", "postgres"),
		Name:            utils.GetEnv("DB_NAME", "starforge"),
		SSLMode:         utils.GetEnv("DB_SSLMODE", "disable"),
		Path:            utils.GetEnv("DB_PATH", "starforge.db"),
		MaxOpenConns:    utils.GetEnvInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    utils.GetEnvInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: time.Duration(utils.GetEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 5)) * time.Minute,
		MigrationsPath:  utils.GetEnv("DB_MIGRATIONS_PATH", "migrations"),
	}
}

func loadRedisConfig() RedisConfig {
	return RedisConfig{
		Enabled:     utils.GetEnvBool("REDIS_ENABLED", false),
		URL:         utils.GetEnv("REDIS_URL", ""),
		Host:        utils.GetEnv("REDIS_HOST", "localhost"),
		Port:        utils.GetEnv("REDIS_PORT", "6379"),
		Password:    utils.GetEnv("REDIS_PASSWORD", ""),
		DB:          utils.GetEnvInt("REDIS_DB", 0),
		SnapshotTTL: time.Duration(utils.GetEnvInt("REDIS_SNAPSHOT_TTL_HOURS", 24)) * time.Hour,
	}
}

func loadAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret:       utils.GetEnv("JWT_SECRET", ""),
		TokenExpiration: time.Duration(utils.GetEnvInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour,
	}
}

func loadFrontendConfig() FrontendConfig {
	return FrontendConfig{
		URL:       utils.GetEnv("FRONTEND_URL", "http://localhost:3000"),
		CORSDebug: utils.GetEnvBool("CORS_DEBUG", false),
	}
}

func loadLoggingConfig() LoggingConfig {
	environment := utils.GetEnv("ENVIRONMENT", "development")
	jsonFormat := environment == "production"

	return LoggingConfig{
		Level:      utils.GetEnv("LOG_LEVEL", "debug"),
		Format:     utils.GetEnv("LOG_FORMAT", "text"),
		JSONFormat: jsonFormat,
	}
}

func loadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:           utils.GetEnvBool("RATE_LIMIT_ENABLED", true),
		RequestsPerSecond: utils.GetEnvFloat("RATE_LIMIT_REQUESTS_PER_SECOND", 10),
		BurstSize:         utils.GetEnvInt("RATE_LIMIT_BURST_SIZE", 20),
		TrustProxy:        utils.GetEnvBool("RATE_LIMIT_TRUST_PROXY", false),
	}
}

func loadGalaxyConfig() GalaxyConfig {
	return GalaxyConfig{
		Seed:         int64(utils.GetEnvInt("GALAXY_SEED", 20250222)),
		NumStars:     utils.GetEnvInt("GALAXY_NUM_STARS", 1000),
		GalaxyRadius: utils.GetEnvFloat("GALAXY_RADIUS", 1500),
		ArmStrength:  utils.GetEnvFloat("GALAXY_ARM_STRENGTH", 1),
		ArmCount:     utils.GetEnvInt("GALAXY_ARM_COUNT", 5),
		NoiseScale:   utils.GetEnvFloat("GALAXY_NOISE_SCALE", 1),
	}
}

func loadSystemConfig() SystemConfig {
	return SystemConfig{
		MinBodies:        utils.GetEnvInt("SYSTEM_MIN_BODIES", 5),
		MaxBodies:        utils.GetEnvInt("SYSTEM_MAX_BODIES", 20),
		LogMeanMass:      utils.GetEnvFloat("SYSTEM_LOG_MEAN_MASS", 0.1),
		LogStdMass:       utils.GetEnvFloat("SYSTEM_LOG_STD_MASS", 0.5),
		RocheLimitFactor: utils.GetEnvFloat("SYSTEM_ROCHE_LIMIT_FACTOR", 1.2),
	}
}

func loadGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Workers:    utils.GetEnvInt("GENERATION_WORKERS", 8),
		Sectors:    utils.GetEnvInt("GENERATION_SECTORS", 16),
		PresetPath: utils.GetEnv("GENERATION_PRESET_PATH", ""),
		StarNames: utils.GetEnvList("GENERATION_STAR_NAMES", []string{
			"Altair", "Vega", "Sirius", "Arcturus", "Capella", "Rigel", "Procyon",
			"Betelgeuse", "Aldebaran", "Spica", "Antares", "Pollux", "Fomalhaut",
			"Deneb", "Regulus", "Adhara", "Castor", "Gacrux", "Bellatrix", "Elnath",
			"Miaplacidus", "Alnilam", "Alnair", "Alioth", "Dubhe", "Mirfak", "Wezen",
			"Sargas", "Kaus", "Avior", "Menkalinan", "Atria", "Alhena", "Peacock",
		}),
	}
}

// applyPreset overlays the galaxy and system sections of a YAML preset file.
// Keys missing from the file keep their environment values.
func (c *Config) applyPreset(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read generation preset %s: %w", path, err)
	}

	p := preset{Galaxy: &c.Galaxy, System: &c.System}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("failed to parse generation preset %s: %w", path, err)
	}

	return nil
}

func (c *Config) validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Auth.JWTSecret != "" && len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	if c.Database.Enabled {
		switch c.Database.Driver {
		case "postgres":
			if c.Database.Host == "" {
				return fmt.Errorf("DB_HOST is required")
			}
			if c.Database.Name == "" {
				return fmt.Errorf("DB_NAME is required")
			}
		case "sqlite3":
			if c.Database.Path == "" {
				return fmt.Errorf("DB_PATH is required")
			}
		default:
			return fmt.Errorf("DB_DRIVER must be postgres or sqlite3, got %q", c.Database.Driver)
		}
	}

	if c.Generation.Workers < 1 {
		return fmt.Errorf("GENERATION_WORKERS must be at least 1")
	}

	if c.Generation.Sectors < 1 {
		return fmt.Errorf("GENERATION_SECTORS must be at least 1")
	}

	if len(c.Generation.StarNames) == 0 {
		return fmt.Errorf("GENERATION_STAR_NAMES must not be empty")
	}

	if c.Galaxy.NumStars < 0 {
		return fmt.Errorf("GALAXY_NUM_STARS must not be negative")
	}

	if c.Galaxy.ArmCount < 1 {
		return fmt.Errorf("GALAXY_ARM_COUNT must be at least 1")
	}

	if c.System.MinBodies > c.System.MaxBodies {
		return fmt.Errorf("SYSTEM_MIN_BODIES (%d) must not exceed SYSTEM_MAX_BODIES (%d)", c.System.MinBodies, c.System.MaxBodies)
	}

	if !(c.System.LogStdMass > 0) || math.IsInf(c.System.LogStdMass, 0) {
		return fmt.Errorf("SYSTEM_LOG_STD_MASS must be positive")
	}

	return nil
}

func (c *Config) AdminConfigured() bool {
	return c.Auth.JWTSecret != ""
}

func (c *Config) ConnectionString() string {
	if c.Database.Driver == "sqlite3" {
		return fmt.Sprintf("file:%s?_foreign_keys=on", c.Database.Path)
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

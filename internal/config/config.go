package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/rpggio/stratdesk/internal/repository"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	Store     StoreConfig     `yaml:"store"`
	DB        DBConfig        `yaml:"db"`
	Redis     RedisConfig     `yaml:"redis"`
	Crypto    CryptoConfig    `yaml:"crypto"`
	Policy    PolicyConfig    `yaml:"policy"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// AllowedOrigins feeds CORS on the REST API. Empty allows any origin.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type TransportConfig struct {
	// Mode is "http" (REST + MCP over streamable HTTP) or "stdio" (MCP only).
	Mode string `yaml:"mode"`
}

type StoreConfig struct {
	// Backend is memory, sql or redis.
	Backend   string `yaml:"backend"`
	Namespace string `yaml:"namespace"`
	Seed      bool   `yaml:"seed"`
}

type DBConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type CryptoConfig struct {
	MasterKeyID  string `yaml:"master_key_id"`
	MasterKeyB64 string `yaml:"master_key_b64"`
}

type PolicyConfig struct {
	// ClientDelete is "forbid" or "orphan".
	ClientDelete string `yaml:"client_delete"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// DeletePolicy parses Policy.ClientDelete.
func (c Config) DeletePolicy() (repository.DeletePolicy, error) {
	return repository.ParseDeletePolicy(c.Policy.ClientDelete)
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		Store: StoreConfig{
			Backend: "sql",
			Seed:    true,
		},
		DB: DBConfig{
			Driver: "sqlite",
			DSN:    "stratdesk.db",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Crypto: CryptoConfig{
			MasterKeyID: "v1",
		},
		Policy: PolicyConfig{
			ClientDelete: string(repository.DeleteForbid),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("STRATDESK_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if host := os.Getenv("STRATDESK_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("STRATDESK_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid STRATDESK_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if mode := os.Getenv("STRATDESK_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if backend := os.Getenv("STRATDESK_STORE_BACKEND"); backend != "" {
		cfg.Store.Backend = backend
	}
	if ns := os.Getenv("STRATDESK_STORE_NAMESPACE"); ns != "" {
		cfg.Store.Namespace = ns
	}
	if seedStr := os.Getenv("STRATDESK_SEED"); seedStr != "" {
		seed, err := strconv.ParseBool(seedStr)
		if err != nil {
			return fmt.Errorf("invalid STRATDESK_SEED: %w", err)
		}
		cfg.Store.Seed = seed
	}
	if driver := os.Getenv("STRATDESK_DB_DRIVER"); driver != "" {
		cfg.DB.Driver = driver
	}
	if dsn := os.Getenv("STRATDESK_DB_DSN"); dsn != "" {
		cfg.DB.DSN = dsn
	}
	if addr := os.Getenv("STRATDESK_REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if password := os.Getenv("STRATDESK_REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}
	if dbStr := os.Getenv("STRATDESK_REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return fmt.Errorf("invalid STRATDESK_REDIS_DB: %w", err)
		}
		cfg.Redis.DB = db
	}
	if keyID := os.Getenv("STRATDESK_MASTER_KEY_ID"); keyID != "" {
		cfg.Crypto.MasterKeyID = keyID
	}
	if key := os.Getenv("STRATDESK_MASTER_KEY_B64"); key != "" {
		cfg.Crypto.MasterKeyB64 = key
	}
	if policy := os.Getenv("STRATDESK_CLIENT_DELETE"); policy != "" {
		cfg.Policy.ClientDelete = policy
	}
	if level := os.Getenv("STRATDESK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	return nil
}

// Validate rejects values the server cannot start with.
func (c Config) Validate() error {
	switch c.Transport.Mode {
	case "http", "stdio":
	default:
		return fmt.Errorf("unknown transport mode %q", c.Transport.Mode)
	}
	switch c.Store.Backend {
	case "memory", "redis":
	case "sql":
		if c.DB.DSN == "" {
			return fmt.Errorf("db.dsn is required for the sql backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if _, err := c.DeletePolicy(); err != nil {
		return err
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

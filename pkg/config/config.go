// Package config loads the mailer configuration: built-in defaults, an
// optional YAML file, then environment variables.
package config

import (
	"fmt"
	"os"

	"dario.cat/mergo"
	"github.com/Abraxas-365/mailer/pkg/validatex"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the YAML file when --config is not given.
const EnvConfigPath = "MAILER_CONFIG"

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Mail     MailConfig     `yaml:"mail"`
	Auth     AuthConfig     `yaml:"auth"`
	Store    StoreConfig    `yaml:"store"`
	AWS      AWSConfig      `yaml:"aws"`
	Redis    RedisConfig    `yaml:"redis"`
	Database DatabaseConfig `yaml:"database"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Port        string `yaml:"port" json:"port" validate:"required,numeric"`
	CORSOrigins string `yaml:"cors_origins" json:"cors_origins"`
	FrontendDir string `yaml:"frontend_dir" json:"frontend_dir"`
}

// SMTPConfig holds the process-wide default SMTP account.
type SMTPConfig struct {
	Host     string `yaml:"host" json:"smtp_host"`
	Port     int    `yaml:"port" json:"smtp_port" validate:"min=1,max=65535"`
	User     string `yaml:"user" json:"smtp_user"`
	Password string `yaml:"password" json:"-"`
}

type MailConfig struct {
	Transport string `yaml:"transport" json:"mail_transport" validate:"oneof=smtp console"`
}

// AuthConfig holds the static bearer token and the admin login.
type AuthConfig struct {
	Token         string `yaml:"token" json:"auth_token" validate:"required"`
	AdminUsername string `yaml:"admin_username" json:"admin_username" validate:"required"`
	AdminPassword string `yaml:"admin_password" json:"-"`
}

// StoreConfig selects the record store backend.
type StoreConfig struct {
	Driver  string `yaml:"driver" json:"store_driver" validate:"oneof=local s3 redis postgres"`
	DataDir string `yaml:"data_dir" json:"data_dir"`
}

type AWSConfig struct {
	Region string `yaml:"region" json:"aws_region"`
	Bucket string `yaml:"bucket" json:"aws_bucket"`
	Prefix string `yaml:"prefix" json:"aws_prefix"`
}

type RedisConfig struct {
	Host     string `yaml:"host" json:"redis_host"`
	Port     int    `yaml:"port" json:"redis_port" validate:"min=1,max=65535"`
	Password string `yaml:"password" json:"-"`
	DB       int    `yaml:"db" json:"redis_db" validate:"min=0"`
	Prefix   string `yaml:"prefix" json:"redis_prefix"`
}

// Addr returns host:port for the redis client.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type DatabaseConfig struct {
	Host     string `yaml:"host" json:"db_host"`
	Port     int    `yaml:"port" json:"db_port" validate:"min=1,max=65535"`
	User     string `yaml:"user" json:"db_user"`
	Password string `yaml:"password" json:"-"`
	Name     string `yaml:"name" json:"db_name"`
	SSLMode  string `yaml:"sslmode" json:"db_sslmode"`
}

// DSN returns the lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "5500",
			CORSOrigins: "*",
			FrontendDir: "./frontend",
		},
		SMTP: SMTPConfig{Port: 465},
		Mail: MailConfig{Transport: "smtp"},
		Auth: AuthConfig{
			Token:         "authenticated",
			AdminUsername: "admin",
			AdminPassword: "admin123",
		},
		Store: StoreConfig{Driver: "local", DataDir: "./data"},
		AWS:   AWSConfig{Region: "us-east-1", Prefix: "mailer"},
		Redis: RedisConfig{Host: "localhost", Port: 6379, Prefix: "mailer"},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			User:    "postgres",
			Name:    "mailer",
			SSLMode: "disable",
		},
	}
}

// Load builds the configuration. path may be empty, in which case
// MAILER_CONFIG is consulted; with neither, only defaults and env apply.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	cfg := Default()
	if path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		if err := mergo.Merge(fileCfg, cfg); err != nil {
			return nil, fmt.Errorf("failed to merge config defaults: %w", err)
		}
		cfg = fileCfg
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile parses a YAML config file. ${VAR} references are expanded.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

// Validate checks enums and port ranges.
func (c *Config) Validate() error {
	return validatex.StructWithMessage(c, "Invalid configuration")
}

package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server Server `mapstructure:"server"`
	Google Google `mapstructure:"google"`
	Cache  Cache  `mapstructure:"cache"`
}

type Server struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
	CORS CORS   `mapstructure:"cors"`
}

type CORS struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

type Google struct {
	ServiceAccountEmail string `mapstructure:"service_account_email"`
	PrivateKey          string `mapstructure:"private_key"`
	RootFolderID        string `mapstructure:"root_folder_id"`
}

type Cache struct {
	ListTTLSeconds     int `mapstructure:"list_ttl_seconds"`
	CategoryTTLMinutes int `mapstructure:"category_ttl_minutes"`
}

func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors.allow_all_origins", true)
	v.SetDefault("server.cors.allowed_origins", []string{})
	v.SetDefault("cache.list_ttl_seconds", 60)
	v.SetDefault("cache.category_ttl_minutes", 10)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Bind environment variables explicitly for credentials; names match the
	// deployment environment used by the site.
	v.BindEnv("google.service_account_email", "GOOGLE_SERVICE_ACCOUNT_EMAIL")
	v.BindEnv("google.private_key", "GOOGLE_PRIVATE_KEY")
	v.BindEnv("google.root_folder_id", "GOOGLE_DRIVE_FOLDER_ID")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

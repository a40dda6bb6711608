package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds everything the application needs at startup. It is built once
// in app.Run and passed into each component explicitly.
type Config struct {
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Zoho struct {
		ClientID     string `mapstructure:"client_id"`
		ClientSecret string `mapstructure:"client_secret"`
		AccountsURL  string `mapstructure:"accounts_url"`
		RedirectURI  string `mapstructure:"redirect_uri"`
	} `mapstructure:"zoho"`
	TokenFile string `mapstructure:"token_file"`
}

// Load reads configuration from an optional config.yml in path, layered under
// environment variables. The client credentials are expected to come from the
// environment (ZOHO_CLIENT_ID / ZOHO_CLIENT_SECRET, or the legacy CLIENT_ID /
// CLIENT_SECRET names); everything else has a sensible default.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetDefault("server.port", "8080")
	v.SetDefault("zoho.accounts_url", "https://accounts.zoho.in")
	v.SetDefault("zoho.redirect_uri", "http://localhost:8080/callback")
	v.SetDefault("token_file", "tokens.json")

	v.AutomaticEnv()
	_ = v.BindEnv("zoho.client_id", "ZOHO_CLIENT_ID", "CLIENT_ID")
	_ = v.BindEnv("zoho.client_secret", "ZOHO_CLIENT_SECRET", "CLIENT_SECRET")
	_ = v.BindEnv("server.port", "SERVER_PORT")
	_ = v.BindEnv("token_file", "TOKEN_FILE")

	if err := v.ReadInConfig(); err != nil {
		// A config file is optional; the environment can supply everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return cfg, nil
}

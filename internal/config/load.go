package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "TYPACE"

// Load resolves the configuration from cfgFile (or ./config.yaml when empty),
// a .env file in the working directory and TYPACE_* environment variables.
// A missing default config file is not an error; a missing explicit one is.
// The returned string is the config file actually used, if any.
func Load(cfgFile string) (Config, string, error) {
	var cfg Config

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, "", fmt.Errorf("failed to read .env file: %w", err)
	}

	v := viper.New()
	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	used := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && cfgFile == "":
		case errors.Is(err, os.ErrNotExist):
			return cfg, "", fmt.Errorf("config file %s not found: %w", cfgFile, err)
		default:
			return cfg, "", fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, used, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := cfg.Normalize(); err != nil {
		return cfg, used, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, used, nil
}

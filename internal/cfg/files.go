package cfg

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"vidpick/internal/domain/keys"
	"vidpick/internal/domain/paths"
	"vidpick/internal/utils/logging"
)

// loadConfig reads the config file named by --config-file, or the default
// one under the program directory when present. A missing default file is
// not an error.
func loadConfig() error {
	if f := viper.GetString(keys.ConfigFile); f != "" {
		viper.SetConfigFile(f)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed loading config file: %w", err)
		}
		return nil
	}

	viper.SetConfigName("config")
	viper.SetConfigType("toml")
	viper.AddConfigPath(paths.HomeVidpickDir)
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed loading config file: %w", err)
	}

	logging.D(1, "loaded config file %s", viper.ConfigFileUsed())
	return nil
}

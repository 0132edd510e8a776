package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Wait       int    `mapstructure:"wait"`
	Timeout    int    `mapstructure:"timeout"`
	ChromePath string `mapstructure:"chrome_path"`
	Quiet      bool   `mapstructure:"quiet"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper
func Init() error {
	viper.SetDefault("wait", 2)         // Seconds to wait for JS rendering
	viper.SetDefault("timeout", 60)     // Page load timeout in seconds
	viper.SetDefault("chrome_path", "") // Auto-detect by default
	viper.SetDefault("quiet", false)

	viper.SetConfigName("get-md")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "get-md"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("GETMD")
	viper.AutomaticEnv()

	// Try to read config, but don't fail if not found or malformed
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}

// GetWait returns the extra JS-rendering wait in seconds
func GetWait() int {
	return viper.GetInt("wait")
}

// GetTimeout returns the page load timeout in seconds
func GetTimeout() int {
	return viper.GetInt("timeout")
}

// GetChromePath returns the Chrome binary path with tilde expansion
func GetChromePath() string {
	return expandTilde(viper.GetString("chrome_path"))
}

// GetQuiet returns whether progress output is suppressed
func GetQuiet() bool {
	return viper.GetBool("quiet")
}

// expandTilde expands ~ to the user's home directory
func expandTilde(path string) string {
	if len(path) == 0 {
		return path
	}
	if path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

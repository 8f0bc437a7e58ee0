// Package app wires configuration, logging and adapters into the prune use case.
package app

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultStateDir returns the directory holding zprune's log file when no
// path is configured. Uses ~/.local/state/zprune for users and
// /var/log/zprune for root or when the home directory is unknown.
func DefaultStateDir() string {
	if os.Geteuid() == 0 {
		return "/var/log/zprune"
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".local", "state", "zprune")
	}
	return "/var/log/zprune"
}

// ConfigureViper sets up viper with standard config file search paths.
// Config file: zprune.yaml
// Search paths (in order): /etc/zprune, ~/.config/zprune, current directory
func ConfigureViper(v *viper.Viper, configPath string) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("zprune")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/zprune")
		v.AddConfigPath("$HOME/.config/zprune")
		v.AddConfigPath(".")
	}
}

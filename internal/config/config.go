package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/RyanLiu6/setup/internal/branding"
	"github.com/RyanLiu6/setup/internal/manifest"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys. Each can also be set through the environment, e.g.
// DEVSETUP_ROOT for KeyRoot.
const (
	KeyRoot    = "root"
	KeyHome    = "home"
	KeyShellRC = "shell_rc"
	KeyVerbose = "verbose"
)

// ErrRootNotFound is returned by ResolveRoot when no repository root is
// configured and none is found above the start directory.
var ErrRootNotFound = errors.New("repository root not found")

// Dir returns the path to the devsetup config directory (~/.devsetup/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.devsetup/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// BindFlags binds the global flags to their setting keys so a flag, when
// given, overrides the environment and the config file. Flags missing from
// the set are skipped.
func BindFlags(flags *pflag.FlagSet) error {
	for _, key := range []string{KeyRoot, KeyHome, KeyShellRC, KeyVerbose} {
		name := strings.ReplaceAll(key, "_", "-")
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// GetBool returns a boolean config value by key.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Home returns the home directory to install into: the configured home when
// set, otherwise the user's home directory.
func Home() (string, error) {
	if h := Get(KeyHome); h != "" {
		return filepath.Abs(h)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return home, nil
}

// ResolveRoot returns the repository root: the configured root when set,
// otherwise the nearest directory at or above start that holds the AI tool
// configuration.
func ResolveRoot(start string) (string, error) {
	if root := Get(KeyRoot); root != "" {
		return filepath.Abs(root)
	}
	return FindRoot(start)
}

// FindRoot walks up from start to the first directory containing
// <ai dir>/tools.json.
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", start, err)
	}
	for {
		if _, err := os.Stat(manifest.Path(filepath.Join(dir, branding.AIDir()))); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: no %s/%s above %s (set --root or %s)",
				ErrRootNotFound, branding.AIDir(), manifest.ConfigFile, start, branding.EnvVar(KeyRoot))
		}
		dir = parent
	}
}

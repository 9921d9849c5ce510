package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes environment overrides, e.g.
	// DATA_VAULT_STORAGEROOTS_DEFAULT_IMPORTAREA_FILEMODE.
	EnvPrefix = "DATA_VAULT"

	// EnvConfigFile names an explicit configuration file.
	EnvConfigFile = "DATA_VAULT_CONFIG"

	configName = "config"
	configType = "yaml"

	// DefaultTimeout applies when a storage root sets no service timeout.
	DefaultTimeout = 30 * time.Second
)

// Config holds all configuration for data-vault
type Config struct {
	StorageRoots map[string]StorageRootConfig `mapstructure:"storageroots" json:"storageRoots" yaml:"storageRoots"`

	// File is the configuration file the values were read from.
	File string `mapstructure:"-" json:"-" yaml:"-"`
}

// StorageRootConfig describes one storage root: the service that manages it
// and the local area batches are copied into before import.
type StorageRootConfig struct {
	DataVaultService DataVaultServiceConfig `mapstructure:"datavaultservice" json:"dataVaultService" yaml:"dataVaultService"`
	ImportArea       ImportAreaConfig       `mapstructure:"importarea" json:"importArea" yaml:"importArea"`
}

// DataVaultServiceConfig locates the data vault service of a storage root.
type DataVaultServiceConfig struct {
	URL     string        `mapstructure:"url" json:"url" yaml:"url"`
	Timeout time.Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout"`
}

// ImportAreaConfig holds the import area settings used by copy-batch.
type ImportAreaConfig struct {
	Path          string   `mapstructure:"path" json:"path" yaml:"path"`
	FileMode      string   `mapstructure:"filemode" json:"fileMode" yaml:"fileMode"`
	DirectoryMode string   `mapstructure:"directorymode" json:"directoryMode" yaml:"directoryMode"`
	Exclude       []string `mapstructure:"exclude" json:"exclude,omitempty" yaml:"exclude,omitempty"`
}

// SearchPaths returns the directories searched for config.yml when no file
// is named explicitly, in order.
func SearchPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".data-vault"))
	}
	return append(paths, "/etc/opt/dans.knaw.nl/data-vault")
}

// LoadConfig loads configuration from file. An empty file falls back to
// $DATA_VAULT_CONFIG and then to config.yml on the search path. Values may be
// overridden through DATA_VAULT_ environment variables. The file is checked
// against the embedded schema and the result is validated before returning.
func LoadConfig(file string) (*Config, error) {
	v := viper.New()

	if file == "" {
		file = os.Getenv(EnvConfigFile)
	}
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType(configType)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		for _, p := range SearchPaths() {
			v.AddConfigPath(p)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil, &Error{File: file, Err: fmt.Errorf("%w (searched %s)", ErrNoConfigFile, strings.Join(searched(file), ", "))}
		}
		return nil, &Error{File: file, Err: err}
	}
	used := v.ConfigFileUsed()

	raw, err := os.ReadFile(used)
	if err != nil {
		return nil, &Error{File: used, Err: err}
	}
	if err := ValidateDocument(raw); err != nil {
		return nil, &Error{File: used, Err: err}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &Error{File: used, Err: fmt.Errorf("error unmarshaling config: %v", err)}
	}
	cfg.File = used
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, &Error{File: used, Err: err}
	}
	return &cfg, nil
}

func searched(file string) []string {
	if file != "" {
		return []string{file}
	}
	var out []string
	for _, p := range SearchPaths() {
		out = append(out, filepath.Join(p, configName+".yml"))
	}
	return out
}

func (c *Config) applyDefaults() {
	for name, root := range c.StorageRoots {
		if root.DataVaultService.Timeout == 0 {
			root.DataVaultService.Timeout = DefaultTimeout
		}
		c.StorageRoots[name] = root
	}
}

// Names returns the configured storage root names, sorted.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.StorageRoots))
	for name := range c.StorageRoots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the storage root called name. Names are case-insensitive.
// An empty name selects the only storage root when exactly one is configured.
func (c *Config) Lookup(name string) (string, StorageRootConfig, error) {
	if name == "" {
		if len(c.StorageRoots) == 1 {
			for only, root := range c.StorageRoots {
				return only, root, nil
			}
		}
		return "", StorageRootConfig{}, fmt.Errorf("%w (configured: %s)", ErrStorageRootRequired, strings.Join(c.Names(), ", "))
	}
	key := strings.ToLower(name)
	root, ok := c.StorageRoots[key]
	if !ok {
		return "", StorageRootConfig{}, fmt.Errorf("%w %q (configured: %s)", ErrUnknownStorageRoot, name, strings.Join(c.Names(), ", "))
	}
	return key, root, nil
}

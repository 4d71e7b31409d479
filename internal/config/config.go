// Package config loads the tool's local configuration file, grounded on
// common/local_config.go's koanf-based loader, generalized to accept
// either YAML or TOML and to the settings this tool actually needs.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	homedir "github.com/mitchellh/go-homedir"
)

// FormatterOverride lets a user replace the default shell-out command for
// a language's formatter (e.g. a project-local rustfmt via rustup).
type FormatterOverride struct {
	Command string   `koanf:"command"`
	Args    []string `koanf:"args"`
}

// Config is this tool's local configuration file structure.
type Config struct {
	SessionStoragePath string                      `koanf:"session_storage_path"`
	CacheCapacity      int                         `koanf:"cache_capacity"`
	Formatters         map[string]FormatterOverride `koanf:"formatters"`
}

// Default returns the configuration used when no config file is present.
func Default() Config {
	home, err := homedir.Dir()
	storagePath := ""
	if err == nil {
		storagePath = filepath.Join(home, ".semantic-edit-mcp", "sessions.json")
	}
	return Config{
		SessionStoragePath: storagePath,
		CacheCapacity:      50,
	}
}

// DefaultPath returns ~/.semantic-edit-mcp/config.yaml, expanding the
// user's home directory the way the original implementation's
// shellexpand::tilde did.
func DefaultPath() (string, error) {
	expanded, err := homedir.Expand("~/.semantic-edit-mcp/config.yaml")
	if err != nil {
		return "", fmt.Errorf("expanding config path: %w", err)
	}
	return expanded, nil
}

// Load reads configPath (YAML or TOML, chosen by extension) over top of
// Default(), returning Default() unchanged if the file does not exist.
func Load(configPath string) (Config, error) {
	cfg := Default()

	if configPath == "" {
		return cfg, nil
	}

	expanded, err := homedir.Expand(configPath)
	if err != nil {
		return cfg, fmt.Errorf("expanding config path: %w", err)
	}

	if _, err := os.Stat(expanded); os.IsNotExist(err) {
		return cfg, nil
	}

	k := koanf.New(".")

	var parser koanf.Parser
	switch filepath.Ext(expanded) {
	case ".toml":
		parser = toml.Parser()
	default:
		parser = yaml.Parser()
	}

	if err := k.Load(file.Provider(expanded), parser); err != nil {
		return cfg, fmt.Errorf("loading config %s: %w", expanded, err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshaling config %s: %w", expanded, err)
	}

	return cfg, nil
}

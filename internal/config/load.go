package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/ini.v1"

	"github.com/conn-castle/stepup/internal/messages"
)

// ErrConfigValidation is a sentinel that wraps config validation failures
// (as opposed to syntax, filesystem, or other loading errors).
var ErrConfigValidation = errors.New("config validation failed")

const legacySection = "paths"

// Load reads, validates and resolves the configuration at path. Files ending
// in .ini use the legacy layout.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigMissingFileFmt, path, err)
	}
	var cfg *Config
	legacy := isLegacy(path)
	if legacy {
		cfg, err = ParseLegacy(data, path)
	} else {
		cfg, err = ParseConfig(data, path)
	}
	if err != nil {
		return nil, err
	}
	return cfg.Resolve(path, legacy)
}

func isLegacy(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".ini")
}

// ParseConfig parses and validates config TOML data from a source identifier.
func ParseConfig(data []byte, source string) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidConfigFmt, source, err)
	}
	if err := decodeStrict(data); err != nil {
		return nil, fmt.Errorf("%w: "+messages.ConfigUnrecognizedKeysFmt, ErrConfigValidation, source, err)
	}
	if err := cfg.Validate(source); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigValidation, err)
	}
	return &cfg, nil
}

// decodeStrict re-decodes the TOML data with strict unknown-field rejection.
func decodeStrict(data []byte) error {
	var cfg Config
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&cfg)
}

// ParseLegacy parses and validates an UpdaterConfig.ini file. Keys are read
// from the [Paths] section case-insensitively; unknown keys are ignored.
func ParseLegacy(data []byte, source string) (*Config, error) {
	file, err := ini.LoadSources(ini.LoadOptions{Insensitive: true}, data)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidConfigFmt, source, err)
	}
	section, err := file.GetSection(legacySection)
	if err != nil {
		return nil, fmt.Errorf("%w: "+messages.ConfigLegacySectionMissingFmt, ErrConfigValidation, source)
	}
	value := func(key string) string {
		return strings.TrimSpace(section.Key(key).String())
	}
	cfg := Config{
		Remote: RemoteConfig{
			LatestURL:          value("server_version_url"),
			ListURL:            value("version_list_url"),
			MinSupportedURL:    value("min_supported_filename"),
			PackageURLTemplate: value("update_package_url_template"),
		},
		Install: InstallConfig{
			Executable:     value("executable"),
			ChangelogFile:  value("changelog_filename"),
			DeleteListFile: value("delete_list_filename"),
			TextEncoding:   value("text_encoding"),
		},
	}
	if cfg.Install.Executable == "" {
		cfg.Install.Executable = DefaultLegacyExecutable
	}
	if err := cfg.Validate(source); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigValidation, err)
	}
	return &cfg, nil
}

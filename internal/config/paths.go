package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/stepup/internal/messages"
)

// Candidate config locations relative to the updater's directory, in lookup order.
var candidates = []string{
	"stepup.toml",
	filepath.Join("SCRIPTS", "stepup.toml"),
	filepath.Join("SCRIPTS", "UpdaterConfig.ini"),
}

// Settings is a validated configuration with every path made absolute.
type Settings struct {
	Source string

	LatestURL          string
	ListURL            string
	MinSupportedURL    string
	PackageURLTemplate string
	MetadataTimeout    time.Duration
	PackageTimeout     time.Duration

	Root           string
	VersionFile    string
	TempDir        string
	PackageDir     string
	Executable     string
	ChangelogFile  string
	DeleteListName string
	TextEncoding   string
}

// Find returns the config file to load. explicit wins when set; otherwise the
// candidates under dir are tried in order.
func Find(explicit string, dir string) (string, error) {
	if strings.TrimSpace(explicit) != "" {
		return expandHome(explicit)
	}
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf(messages.ConfigStatFmt, path, err)
		}
	}
	return "", fmt.Errorf(messages.ConfigNotFoundFmt, dir, strings.Join(candidates, ", "))
}

// Resolve applies defaults and makes every path absolute. The install root
// defaults to the config file's directory, or its parent for the legacy
// layout, which keeps the file under SCRIPTS/.
func (c *Config) Resolve(configPath string, legacy bool) (*Settings, error) {
	absConfig, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigResolvePathFmt, configPath, err)
	}
	root := filepath.Dir(absConfig)
	if legacy {
		root = filepath.Dir(root)
	}
	if c.Install.Root != "" {
		expanded, err := expandHome(c.Install.Root)
		if err != nil {
			return nil, err
		}
		if !filepath.IsAbs(expanded) {
			expanded = filepath.Join(filepath.Dir(absConfig), expanded)
		}
		root = filepath.Clean(expanded)
	}

	under := func(value string, fallback string) (string, error) {
		if strings.TrimSpace(value) == "" {
			value = fallback
		}
		if value == "" {
			return "", nil
		}
		expanded, err := expandHome(value)
		if err != nil {
			return "", err
		}
		if filepath.IsAbs(expanded) {
			return filepath.Clean(expanded), nil
		}
		return filepath.Join(root, filepath.FromSlash(expanded)), nil
	}

	s := &Settings{
		Source:             absConfig,
		LatestURL:          c.Remote.LatestURL,
		ListURL:            c.Remote.ListURL,
		MinSupportedURL:    c.Remote.MinSupportedURL,
		PackageURLTemplate: c.Remote.PackageURLTemplate,
		MetadataTimeout:    seconds(c.Remote.MetadataTimeoutSeconds, DefaultMetadataTimeoutSeconds),
		PackageTimeout:     seconds(c.Remote.PackageTimeoutSeconds, DefaultPackageTimeoutSeconds),
		Root:               root,
		DeleteListName:     c.Install.DeleteListFile,
		TextEncoding:       c.Install.TextEncoding,
	}
	if s.TextEncoding == "" {
		s.TextEncoding = DefaultTextEncoding
	}
	fields := []struct {
		dst      *string
		value    string
		fallback string
	}{
		{&s.VersionFile, c.Install.VersionFile, DefaultVersionFile},
		{&s.TempDir, c.Install.TempDir, DefaultTempDir},
		{&s.PackageDir, c.Install.PackageDir, "."},
		{&s.Executable, c.Install.Executable, ""},
		{&s.ChangelogFile, c.Install.ChangelogFile, ""},
	}
	for _, field := range fields {
		resolved, err := under(field.value, field.fallback)
		if err != nil {
			return nil, err
		}
		*field.dst = resolved
	}
	return s, nil
}

func seconds(value int, fallback int) time.Duration {
	if value <= 0 {
		value = fallback
	}
	return time.Duration(value) * time.Second
}

func expandHome(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf(messages.ConfigExpandHomeFmt, path, err)
	}
	return expanded, nil
}

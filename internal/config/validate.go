package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/conn-castle/stepup/internal/messages"
)

// VersionPlaceholder must appear in the package URL template.
const VersionPlaceholder = "{version}"

// Validate ensures the six required settings are present and well formed.
func (c *Config) Validate(source string) error {
	required := []struct {
		key   string
		value string
	}{
		{"remote.latest_url", c.Remote.LatestURL},
		{"remote.list_url", c.Remote.ListURL},
		{"remote.min_supported_url", c.Remote.MinSupportedURL},
		{"remote.package_url_template", c.Remote.PackageURLTemplate},
		{"install.changelog_file", c.Install.ChangelogFile},
		{"install.delete_list_file", c.Install.DeleteListFile},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf(messages.ConfigRequiredFmt, source, field.key)
		}
	}
	for _, field := range required[:4] {
		value := strings.ReplaceAll(field.value, VersionPlaceholder, "0")
		if err := validateURL(value); err != nil {
			return fmt.Errorf(messages.ConfigInvalidURLFmt, source, field.key, field.value, err)
		}
	}
	if !strings.Contains(c.Remote.PackageURLTemplate, VersionPlaceholder) {
		return fmt.Errorf(messages.ConfigTemplatePlaceholderFmt, source, c.Remote.PackageURLTemplate, VersionPlaceholder)
	}
	name := c.Install.DeleteListFile
	if filepath.Base(name) != name || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf(messages.ConfigDeleteListNameFmt, source, name)
	}
	if c.Remote.MetadataTimeoutSeconds < 0 {
		return fmt.Errorf(messages.ConfigTimeoutNegativeFmt, source, "remote.metadata_timeout_seconds")
	}
	if c.Remote.PackageTimeoutSeconds < 0 {
		return fmt.Errorf(messages.ConfigTimeoutNegativeFmt, source, "remote.package_timeout_seconds")
	}
	return nil
}

func validateURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf(messages.ConfigURLSchemeFmt, parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf(messages.ConfigURLHostMissing)
	}
	return nil
}

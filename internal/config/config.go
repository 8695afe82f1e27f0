// Package config loads the updater settings from stepup.toml or the legacy
// UpdaterConfig.ini layout.
package config

// Default values applied when a setting is omitted.
const (
	DefaultVersionFile            = "SCRIPTS/LOC_VER.txt"
	DefaultTempDir                = "TEMP_UPDATE"
	DefaultMetadataTimeoutSeconds = 10
	DefaultPackageTimeoutSeconds  = 300
	DefaultTextEncoding           = "utf-8"

	// DefaultLegacyExecutable is launched for legacy installs, whose INI file
	// names no executable.
	DefaultLegacyExecutable = "NFSC.exe"
)

// Config is the on-disk configuration.
type Config struct {
	Remote  RemoteConfig  `toml:"remote"`
	Install InstallConfig `toml:"install"`
}

// RemoteConfig holds the metadata and package locations.
type RemoteConfig struct {
	LatestURL          string `toml:"latest_url"`
	ListURL            string `toml:"list_url"`
	MinSupportedURL    string `toml:"min_supported_url"`
	PackageURLTemplate string `toml:"package_url_template"`
	// Timeouts in seconds; zero selects the default.
	MetadataTimeoutSeconds int `toml:"metadata_timeout_seconds"`
	PackageTimeoutSeconds  int `toml:"package_timeout_seconds"`
}

// InstallConfig describes the local install. Relative paths resolve under Root.
type InstallConfig struct {
	Root           string `toml:"root"`
	VersionFile    string `toml:"version_file"`
	TempDir        string `toml:"temp_dir"`
	PackageDir     string `toml:"package_dir"`
	Executable     string `toml:"executable"`
	ChangelogFile  string `toml:"changelog_file"`
	DeleteListFile string `toml:"delete_list_file"`
	TextEncoding   string `toml:"text_encoding"`
}

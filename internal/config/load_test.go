package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validTOML = `
[remote]
latest_url = "https://updates.example.com/latest.txt"
list_url = "https://updates.example.com/versions.txt"
min_supported_url = "https://updates.example.com/min.txt"
package_url_template = "https://cdn.example.com/Update_{version}.zip"
package_timeout_seconds = 60

[install]
executable = "NFSC.exe"
changelog_file = "CHANGELOG.txt"
delete_list_file = "dellist.txt"
`

const validINI = `
[Paths]
server_version_url = https://updates.example.com/latest.txt
update_package_url_template = https://cdn.example.com/Update_{version}.zip
version_list_url = https://updates.example.com/versions.txt
changelog_filename = CHANGELOG.txt
delete_list_filename = dellist.txt
min_supported_filename = https://updates.example.com/min.txt
`

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadTOML(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "stepup.toml")
	writeFile(t, path, validTOML)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, root, s.Root)
	assert.Equal(t, filepath.Join(root, "SCRIPTS", "LOC_VER.txt"), s.VersionFile)
	assert.Equal(t, filepath.Join(root, "TEMP_UPDATE"), s.TempDir)
	assert.Equal(t, root, s.PackageDir)
	assert.Equal(t, filepath.Join(root, "NFSC.exe"), s.Executable)
	assert.Equal(t, filepath.Join(root, "CHANGELOG.txt"), s.ChangelogFile)
	assert.Equal(t, "dellist.txt", s.DeleteListName)
	assert.Equal(t, 10*time.Second, s.MetadataTimeout)
	assert.Equal(t, 60*time.Second, s.PackageTimeout)
	assert.Equal(t, "utf-8", s.TextEncoding)
}

func TestLoadLegacyINI(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "SCRIPTS", "UpdaterConfig.ini")
	writeFile(t, path, validINI)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, root, s.Root, "legacy config lives under SCRIPTS/")
	assert.Equal(t, "https://cdn.example.com/Update_{version}.zip", s.PackageURLTemplate)
	assert.Equal(t, "https://updates.example.com/min.txt", s.MinSupportedURL)
	assert.Equal(t, filepath.Join(root, "SCRIPTS", "LOC_VER.txt"), s.VersionFile)
	assert.Equal(t, filepath.Join(root, DefaultLegacyExecutable), s.Executable)
}

func TestParseLegacyExecutableOverride(t *testing.T) {
	cfg, err := ParseLegacy([]byte(validINI+"executable = bin/Game.exe\n"), "cfg.ini")
	require.NoError(t, err)
	assert.Equal(t, "bin/Game.exe", cfg.Install.Executable)

	cfg, err = ParseLegacy([]byte(validINI), "cfg.ini")
	require.NoError(t, err)
	assert.Equal(t, DefaultLegacyExecutable, cfg.Install.Executable)
}

func TestParseLegacyErrors(t *testing.T) {
	_, err := ParseLegacy([]byte("[Other]\nkey = value\n"), "cfg.ini")
	assert.ErrorIs(t, err, ErrConfigValidation)

	_, err = ParseLegacy([]byte("[Paths]\nserver_version_url = https://x/latest\n"), "cfg.ini")
	assert.ErrorIs(t, err, ErrConfigValidation)
	assert.Contains(t, err.Error(), "list_url")
}

func TestParseConfigRejectsUnknownKeys(t *testing.T) {
	_, err := ParseConfig([]byte(validTOML+"\n[extra]\nkey = 1\n"), "stepup.toml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigValidation))
}

func TestParseConfigSyntaxErrorIsNotValidation(t *testing.T) {
	_, err := ParseConfig([]byte("[remote\n"), "stepup.toml")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrConfigValidation))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrConfigValidation))
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Remote: RemoteConfig{
				LatestURL:          "https://x/latest",
				ListURL:            "https://x/list",
				MinSupportedURL:    "https://x/min",
				PackageURLTemplate: "https://x/{version}.zip",
			},
			Install: InstallConfig{ChangelogFile: "CHANGELOG.txt", DeleteListFile: "dellist.txt"},
		}
	}
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing latest", func(c *Config) { c.Remote.LatestURL = " " }, "remote.latest_url"},
		{"missing changelog", func(c *Config) { c.Install.ChangelogFile = "" }, "install.changelog_file"},
		{"relative url", func(c *Config) { c.Remote.ListURL = "versions.txt" }, "remote.list_url"},
		{"ftp url", func(c *Config) { c.Remote.MinSupportedURL = "ftp://x/min" }, "ftp"},
		{"no placeholder", func(c *Config) { c.Remote.PackageURLTemplate = "https://x/pkg.zip" }, "{version}"},
		{"nested delete list", func(c *Config) { c.Install.DeleteListFile = "a/dellist.txt" }, "delete"},
		{"negative timeout", func(c *Config) { c.Remote.PackageTimeoutSeconds = -1 }, "package_timeout_seconds"},
	}
	valid := base()
	require.NoError(t, valid.Validate("test"))
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(&cfg)
			err := cfg.Validate("test")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestResolveExpandsHomeAndAbsolutePaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	other := t.TempDir()
	cfg := Config{Install: InstallConfig{
		Root:        "~/game",
		VersionFile: "~/state/ver.txt",
		PackageDir:  other,
	}}
	s, err := cfg.Resolve(filepath.Join(t.TempDir(), "stepup.toml"), false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "game"), s.Root)
	assert.Equal(t, filepath.Join(home, "state", "ver.txt"), s.VersionFile)
	assert.Equal(t, other, s.PackageDir)
	assert.Equal(t, filepath.Join(home, "game", "TEMP_UPDATE"), s.TempDir)
}

func TestResolveRelativeRoot(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{Install: InstallConfig{Root: ".."}}
	s, err := cfg.Resolve(filepath.Join(dir, "conf", "stepup.toml"), false)
	require.NoError(t, err)
	assert.Equal(t, dir, s.Root)
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	_, err := Find("", dir)
	require.Error(t, err)

	legacy := filepath.Join(dir, "SCRIPTS", "UpdaterConfig.ini")
	writeFile(t, legacy, validINI)
	path, err := Find("", dir)
	require.NoError(t, err)
	assert.Equal(t, legacy, path)

	primary := filepath.Join(dir, "stepup.toml")
	writeFile(t, primary, validTOML)
	path, err = Find("", dir)
	require.NoError(t, err)
	assert.Equal(t, primary, path)

	path, err = Find("/etc/custom.toml", dir)
	require.NoError(t, err)
	assert.Equal(t, "/etc/custom.toml", path)
}

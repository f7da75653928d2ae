package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// envPrefix namespaces the environment overrides, e.g.
// COMIC_SEARCH_API_KEY, COMIC_SEARCH_VAULT_DIR.
const envPrefix = "COMIC_SEARCH_"

// minRateLimitMs is the enforced floor on request spacing. ComicVine's
// budget is one request per second; configuration can slow the client down
// but never below this.
const minRateLimitMs = 1000

type Config struct {
	APIKey   string `koanf:"api_key"`
	VaultDir string `koanf:"vault_dir" default:"." validate:"required"`

	IssuesFolder      string `koanf:"issues_folder" default:"Comics/Issues" validate:"required"`
	VolumesFolder     string `koanf:"volumes_folder" default:"Comics/Volumes" validate:"required"`
	CreatorsFolder    string `koanf:"creators_folder" default:"Comics/Creators" validate:"required"`
	RolesFolder       string `koanf:"roles_folder" default:"Comics/Roles" validate:"required"`
	AttachmentsFolder string `koanf:"attachments_folder" default:"Comics/attachments" validate:"required"`

	RateLimitMs int `koanf:"rate_limit_ms" default:"1000" validate:"min=0"`

	CreateCreatorNotes bool `koanf:"create_creator_notes"`
	CreateRoleNotes    bool `koanf:"create_role_notes"`
	CreateVolumeNotes  bool `koanf:"create_volume_notes"`
	DownloadImages     bool `koanf:"download_images"`
}

// FilePath returns the config file location: comic-search.yaml inside
// CONFIG_DIRECTORY, falling back to the working directory.
func FilePath() string {
	configDir := os.Getenv("CONFIG_DIRECTORY")
	if configDir == "" {
		configDir = "."
	}
	return filepath.Join(configDir, "comic-search.yaml")
}

// New loads configuration from the yaml config file (when present) with
// environment overrides on top.
func New() (*Config, error) {
	return Load(FilePath())
}

// Load reads configuration from an explicit file path plus environment
// overrides. A missing file is fine; the defaults and environment carry it.
func Load(configFilePath string) (*Config, error) {
	cfg := &Config{
		// The note-creation toggles default on; image downloading stays
		// opt-in since it doubles the request volume.
		CreateCreatorNotes: true,
		CreateRoleNotes:    true,
		CreateVolumeNotes:  true,
	}
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.WithStack(err)
	}

	k := koanf.New(".")
	if _, err := os.Stat(configFilePath); err == nil {
		if err := k.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "config: %s", configFilePath)
		}
	}
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.WithStack(err)
	}

	if cfg.RateLimitMs < minRateLimitMs {
		cfg.RateLimitMs = minRateLimitMs
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.WithStack(err)
	}

	return cfg, nil
}

// RateLimitInterval returns the request spacing as a duration.
func (cfg *Config) RateLimitInterval() time.Duration {
	return time.Duration(cfg.RateLimitMs) * time.Millisecond
}

// starterConfig is written by `comic-search config init`.
const starterConfig = `# ComicVine API key (https://comicvine.gamespot.com/api/).
api_key: ""

# Root directory of the note vault.
vault_dir: "."

# Vault-relative folders notes are written into.
issues_folder: "Comics/Issues"
volumes_folder: "Comics/Volumes"
creators_folder: "Comics/Creators"
roles_folder: "Comics/Roles"
attachments_folder: "Comics/attachments"

# Minimum milliseconds between API requests (floor 1000).
rate_limit_ms: 1000

# Auxiliary note creation.
create_creator_notes: true
create_role_notes: true
create_volume_notes: true

# Download cover art into the attachments folder.
download_images: false
`

// WriteStarter writes a commented starter config file. It refuses to
// clobber an existing one.
func WriteStarter(configFilePath string) error {
	if _, err := os.Stat(configFilePath); err == nil {
		return errors.Errorf("config: %s already exists", configFilePath)
	}
	if err := os.MkdirAll(filepath.Dir(configFilePath), 0755); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(os.WriteFile(configFilePath, []byte(starterConfig), 0644))
}

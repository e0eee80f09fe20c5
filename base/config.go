package base

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"golang.org/x/exp/slices"

	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/skos"
)

// Config holds the configuration of the importer and its server.
// Values come from an optional YAML file (CONFIG_FILE, default config.yaml) and are
// overridden by environment variables.
type Config struct {
	// DefaultLang selects each keyword's alt_label and the thesaurus title.
	DefaultLang string `yaml:"default_lang" env:"THESAURUS_DEFAULT_LANG" env-default:"en" json:"defaultLang"`
	LogLevel    string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info" json:"-"`

	Database DatabaseConfig `yaml:"database" json:"-"`
	Server   ServerConfig   `yaml:"server" json:"-"`
	Auth     AuthConfig     `yaml:"auth" json:"auth"`
	Solr     SolrConfig     `yaml:"solr" json:"-"`
	Sync     SyncConfig     `yaml:"sync" json:"-"`
}

// DatabaseConfig sizes the connection pool. Zero values keep the pgx defaults.
type DatabaseConfig struct {
	URL             string        `yaml:"url" env:"DATABASE_URL"`
	MaxConnections  int32         `yaml:"max_connections" env:"DATABASE_MAX_CONNECTIONS" env-default:"10"`
	MinConnections  int32         `yaml:"min_connections" env:"DATABASE_MIN_CONNECTIONS" env-default:"0"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"DATABASE_MAX_CONN_LIFETIME" env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

type ServerConfig struct {
	Port       int    `yaml:"port" env:"PORT" env-default:"3000"`
	BackendURL string `yaml:"backend_url" env:"BACKEND_URL" env-default:"http://localhost:3000"`
	// AllowedOrigins always contains the origin of BackendURL.
	AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" env-separator:","`
}

// AuthConfig describes the header based authentication of a fronting proxy.
type AuthConfig struct {
	Enabled          bool   `yaml:"enabled" env:"AUTH_ENABLED" env-default:"false" json:"enabled"`
	UserHeader       string `yaml:"user_header" env:"AUTH_USER_HEADER" env-default:"X-User" json:"-"`
	EmailHeader      string `yaml:"email_header" env:"AUTH_EMAIL_HEADER" env-default:"X-Email" json:"-"`
	GroupsHeader     string `yaml:"groups_header" env:"AUTH_GROUPS_HEADER" env-default:"X-Groups" json:"-"`
	WriteAccessGroup string `yaml:"write_access_group" env:"WRITE_ACCESS_GROUP" json:"-"`
}

type SolrConfig struct {
	// Endpoint of the Solr server, indexing is disabled when empty.
	Endpoint   string `yaml:"endpoint" env:"SOLR_ENDPOINT"`
	Collection string `yaml:"collection" env:"SOLR_COLLECTION" env-default:"thesaurus"`
}

func (c SolrConfig) Enabled() bool {
	return c.Endpoint != ""
}

type SyncConfig struct {
	Dir string `yaml:"dir" env:"SYNC_DIR" env-default:"local/thesauri"`
	// Schedule is a cron expression, no scheduled sync when empty.
	Schedule  string `yaml:"schedule" env:"CRON"`
	Variant   string `yaml:"variant" env:"SYNC_VARIANT" env-default:"gemet"`
	Scheme    string `yaml:"scheme" env:"AGROVOC_SCHEME"`
	LowerCase bool   `yaml:"lower_case" env:"SYNC_LOWER_CASE" env-default:"false"`
}

// Load reads the configuration file named by CONFIG_FILE, or only the environment when
// that file does not exist.
func Load() (*Config, error) {
	return LoadFile(EnvVar("CONFIG_FILE", "config.yaml"))
}

// LoadFile reads the configuration from path with environment overrides.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{}
	var err error
	if _, statErr := os.Stat(path); errors.Is(statErr, fs.ErrNotExist) {
		err = cleanenv.ReadEnv(cfg)
	} else {
		err = cleanenv.ReadConfig(path, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration %s: %w", path, err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	c.DefaultLang = skos.NormalizeLanguage(c.DefaultLang)
	if c.DefaultLang == "" {
		return errors.New("default_lang must not be empty")
	}
	u, err := url.Parse(c.Server.BackendURL)
	if err != nil {
		return fmt.Errorf("backend_url: %w", err)
	}
	if u.Scheme != "" && u.Host != "" {
		origin := fmt.Sprintf("%s://%s", u.Scheme, u.Host)
		if !slices.Contains(c.Server.AllowedOrigins, origin) {
			c.Server.AllowedOrigins = append([]string{origin}, c.Server.AllowedOrigins...)
		}
	}
	return nil
}

// Usage describes the environment variables of Config.
func Usage() string {
	usage, err := cleanenv.GetDescription(&Config{}, nil)
	if err != nil {
		return err.Error()
	}
	return usage
}

package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
	Site    SiteConfig    `yaml:"site"`
	Store   StoreConfig   `yaml:"store"`
	Cache   CacheConfig   `yaml:"cache"`
	Static  StaticConfig  `yaml:"static"`
	Nav     []NavLink     `yaml:"nav"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Addr               string   `yaml:"addr"`
	CorsAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

// SiteConfig holds presentation-level defaults shared by the server and the
// static generator.
type SiteConfig struct {
	Name             string `yaml:"name"`
	BaseURL          string `yaml:"base_url"`
	DefaultThumbnail string `yaml:"default_thumbnail"`
}

// StoreConfig points at the remote article store REST endpoint.
// The store owns all durable article state; this service never persists locally.
type StoreConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// CacheConfig bounds staleness of the repository read caches.
// ListTTLSeconds covers the public listing path, SlugTTLSeconds the
// static-generation slug enumeration, which tolerates much older data.
type CacheConfig struct {
	ListTTLSeconds int `yaml:"list_ttl_seconds"`
	SlugTTLSeconds int `yaml:"slug_ttl_seconds"`
}

type StaticConfig struct {
	OutDir       string `yaml:"out_dir"`
	TemplatesDir string `yaml:"templates_dir"`
}

// NavLink is one entry of the site navigation menu. A link is either a leaf
// (Href set, no Children) or a submenu (Children set); Href is optional on a
// submenu whose parent entry only expands.
type NavLink struct {
	Label    string    `yaml:"label"`
	Href     string    `yaml:"href,omitempty"`
	Children []NavLink `yaml:"children,omitempty"`
}

// IsLeaf reports whether the entry navigates directly instead of expanding.
func (l NavLink) IsLeaf() bool {
	return len(l.Children) == 0
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}
	applyDefaults(&c)
	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func applyDefaults(c *AppConfig) {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Store.TimeoutSeconds <= 0 {
		c.Store.TimeoutSeconds = 10
	}
	if c.Cache.ListTTLSeconds <= 0 {
		c.Cache.ListTTLSeconds = 60
	}
	if c.Cache.SlugTTLSeconds <= 0 {
		c.Cache.SlugTTLSeconds = 600
	}
	if c.Static.OutDir == "" {
		c.Static.OutDir = "public"
	}
	if c.Static.TemplatesDir == "" {
		c.Static.TemplatesDir = filepath.Join(GetBasePath(), "templates")
	}
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"subscription-storefront/internal/domain/model"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port       int    `yaml:"port"`
	BaseURL    string `yaml:"base_url"`    // used to build screenshot links in notifications
	StaticDir  string `yaml:"static_dir"`  // public pages (index/login/dashboard)
	TrustProxy bool   `yaml:"trust_proxy"` // honor X-Forwarded-For when behind a reverse proxy
}

type LogConfig struct {
	Level  string `yaml:"level"`  // trace|debug|info|warn|error
	Format string `yaml:"format"` // json|console
}

type AdminConfig struct {
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`      // plain comparison, dev setups
	PasswordHash string `yaml:"password_hash"` // bcrypt, preferred in prod
}

type AuthConfig struct {
	JWTSecret     string        `yaml:"jwt_secret"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	SecureCookies bool          `yaml:"secure_cookies"`
	CookieDomain  string        `yaml:"cookie_domain"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"` // empty means in-memory fallback
}

type RedisConfig struct {
	URL      string `yaml:"url"` // empty disables rate limiting
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type TelegramConfig struct {
	Token  string `yaml:"token"` // empty disables notifications
	ChatID int64  `yaml:"chat_id"`
}

type UploadsConfig struct {
	Dir               string `yaml:"dir"`
	RequireScreenshot bool   `yaml:"require_screenshot"`
}

type OrdersConfig struct {
	// AllowAnyTransition keeps the permissive historical behavior where an
	// admin may move an order between any of the three statuses. When false,
	// completed and cancelled are terminal.
	AllowAnyTransition bool `yaml:"allow_any_transition"`
}

type SubmissionsConfig struct {
	AllowAnonymous bool          `yaml:"allow_anonymous"` // suggestions/inquiries without name
	RateLimit      int           `yaml:"rate_limit"`      // per client IP per window, 0 disables
	RateWindow     time.Duration `yaml:"rate_window"`
	NotifyWorkers  int           `yaml:"notify_workers"`
}

type CatalogSubscription struct {
	ID        int          `yaml:"id"`
	Name      string       `yaml:"name"`
	BasePrice int64        `yaml:"base_price"`
	Plans     []model.Plan `yaml:"plans"`
}

type Config struct {
	Server      ServerConfig          `yaml:"server"`
	Log         LogConfig             `yaml:"log"`
	Admin       AdminConfig           `yaml:"admin"`
	Auth        AuthConfig            `yaml:"auth"`
	Database    DatabaseConfig        `yaml:"database"`
	Redis       RedisConfig           `yaml:"redis"`
	Telegram    TelegramConfig        `yaml:"telegram"`
	Uploads     UploadsConfig         `yaml:"uploads"`
	Orders      OrdersConfig          `yaml:"orders"`
	Submissions SubmissionsConfig     `yaml:"submissions"`
	Catalog     []CatalogSubscription `yaml:"catalog"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads the YAML file when present, then applies environment
// overrides (a .env file is honored), then defaults. Secrets are expected to
// come from the environment in production.
func LoadConfig(path string, dev bool) (*Config, error) {
	_ = godotenv.Load()

	cfg := Config{}
	cfg.Uploads.RequireScreenshot = true
	cfg.Orders.AllowAnyTransition = true
	cfg.Submissions.AllowAnonymous = true

	if b, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	applyEnv(&cfg)

	// defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}
	if cfg.Server.StaticDir == "" {
		cfg.Server.StaticDir = "public"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Auth.SessionTTL <= 0 {
		cfg.Auth.SessionTTL = 2 * time.Hour
	}
	if cfg.Uploads.Dir == "" {
		cfg.Uploads.Dir = "uploads"
	}
	if cfg.Submissions.RateLimit == 0 {
		cfg.Submissions.RateLimit = 10
	}
	if cfg.Submissions.RateWindow <= 0 {
		cfg.Submissions.RateWindow = time.Minute
	}
	if cfg.Submissions.NotifyWorkers <= 0 {
		cfg.Submissions.NotifyWorkers = 2
	}
	if len(cfg.Catalog) == 0 {
		cfg.Catalog = defaultCatalog()
	}

	// Minimal validation
	if cfg.Admin.Username == "" {
		return nil, errors.New("admin.username is required")
	}
	if cfg.Admin.Password == "" && cfg.Admin.PasswordHash == "" {
		return nil, errors.New("admin.password or admin.password_hash is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("auth.jwt_secret is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

// BuildCatalog turns the config table into the immutable in-memory catalog.
func (c *Config) BuildCatalog() (*model.Catalog, error) {
	subs := make([]model.Subscription, 0, len(c.Catalog))
	plans := make(map[int][]model.Plan, len(c.Catalog))
	for _, entry := range c.Catalog {
		subs = append(subs, model.Subscription{ID: entry.ID, Name: entry.Name, BasePrice: entry.BasePrice})
		if len(entry.Plans) > 0 {
			plans[entry.ID] = entry.Plans
		}
	}
	return model.NewCatalog(subs, plans)
}

func applyEnv(cfg *Config) {
	envStr("PORT", func(v string) {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	})
	envStr("BASE_URL", func(v string) { cfg.Server.BaseURL = v })
	envStr("TRUST_PROXY", func(v string) {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Server.TrustProxy = b
		}
	})
	envStr("ADMIN_USERNAME", func(v string) { cfg.Admin.Username = v })
	envStr("ADMIN_PASSWORD", func(v string) { cfg.Admin.Password = v })
	envStr("ADMIN_PASSWORD_HASH", func(v string) { cfg.Admin.PasswordHash = v })
	envStr("JWT_SECRET", func(v string) { cfg.Auth.JWTSecret = v })
	envStr("JWT_EXPIRES_IN", func(v string) {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Auth.SessionTTL = d
		}
	})
	envStr("DATABASE_URL", func(v string) { cfg.Database.URL = v })
	envStr("REDIS_URL", func(v string) { cfg.Redis.URL = v })
	envStr("REDIS_PASSWORD", func(v string) { cfg.Redis.Password = v })
	envStr("TELEGRAM_BOT_TOKEN", func(v string) { cfg.Telegram.Token = v })
	envStr("TELEGRAM_CHAT_ID", func(v string) {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Telegram.ChatID = id
		}
	})
	envStr("UPLOADS_DIR", func(v string) { cfg.Uploads.Dir = v })
}

func envStr(key string, set func(string)) {
	if v := os.Getenv(key); v != "" {
		set(v)
	}
}

// defaultCatalog mirrors the storefront's historical hard-coded offering.
// Deployments override it from the config file.
func defaultCatalog() []CatalogSubscription {
	return []CatalogSubscription{
		{
			ID: 1, Name: "Netflix", BasePrice: 125,
			Plans: []model.Plan{
				{Key: "monthly", Name: "Netflix شهري", Duration: model.DurationMonthly, Price: 125},
				{Key: "yearly", Name: "Netflix سنوي", Duration: model.DurationYearly, Price: 1200},
			},
		},
		{
			ID: 2, Name: "Shahid VIP", BasePrice: 65,
			Plans: []model.Plan{
				{Key: "monthly", Name: "Shahid VIP شهري", Duration: model.DurationMonthly, Price: 65},
				{Key: "yearly", Name: "Shahid VIP سنوي", Duration: model.DurationYearly, Price: 650},
			},
		},
		{
			ID: 3, Name: "Watch IT", BasePrice: 100,
			Plans: []model.Plan{
				{Key: "monthly", Name: "Watch IT شهري", Duration: model.DurationMonthly, Price: 100},
				{Key: "yearly", Name: "Watch IT سنوي", Duration: model.DurationYearly, Price: 960},
			},
		},
	}
}

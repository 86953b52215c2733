package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App struct {
		Name     string `koanf:"name"`
		HTTPAddr string `koanf:"http_addr"`
		LogFile  string `koanf:"log_file"`
	} `koanf:"app"`

	MySQL struct {
		DSN             string        `koanf:"dsn"`
		MaxOpenConns    int           `koanf:"max_open_conns"`
		MaxIdleConns    int           `koanf:"max_idle_conns"`
		ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	} `koanf:"mysql"`

	Redis struct {
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
	} `koanf:"redis"`

	Idempotency struct {
		TTL time.Duration `koanf:"ttl"`
	} `koanf:"idempotency"`

	Cache struct {
		TTL time.Duration `koanf:"ttl"`
	} `koanf:"cache"`

	Rabbit struct {
		URL string `koanf:"url"`
	} `koanf:"rabbitmq"`

	Kafka struct {
		Brokers         []string `koanf:"brokers"`
		SettlementTopic string   `koanf:"settlement_topic"`
		GroupID         string   `koanf:"group_id"`
	} `koanf:"kafka"`

	Gateway struct {
		Mode     string        `koanf:"mode"` // http | mock
		BaseURL  string        `koanf:"base_url"`
		KeyID    string        `koanf:"key_id"`
		Secret   string        `koanf:"secret"`
		Currency string        `koanf:"currency"`
		Timeout  time.Duration `koanf:"timeout"`
	} `koanf:"gateway"`

	// Policy holds the commercial knobs that are configuration, not code:
	// tax rate, advance-payment portion, and the expiring-soon window.
	Policy struct {
		TaxRateBps       int64 `koanf:"tax_rate_bps"`
		AdvanceBps       int64 `koanf:"advance_bps"`
		ExpiringSoonDays int   `koanf:"expiring_soon_days"`
	} `koanf:"policy"`

	Security struct {
		JWTSecret string        `koanf:"jwt_secret"`
		Issuer    string        `koanf:"issuer"`
		Audience  string        `koanf:"audience"`
		TTL       time.Duration `koanf:"ttl"`
	} `koanf:"security"`
}

func Load(pathDir, envName string) (Config, error) {
	k := koanf.New(".")
	// 1) base
	if err := k.Load(file.Provider(fmt.Sprintf("%s/base.yaml", pathDir)), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load base: %w", err)
	}

	// 2) env overlay (dev/staging/prod). Optional for local runs.
	_ = k.Load(file.Provider(fmt.Sprintf("%s/%s.yaml", pathDir, envName)), yaml.Parser())

	// 3) environment variables override (prefix ANAMICO_, nested with __)
	// e.g. ANAMICO_MYSQL__DSN, ANAMICO_GATEWAY__SECRET
	if err := k.Load(env.Provider("ANAMICO_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "ANAMICO_")
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.App.HTTPAddr == "" {
		return fmt.Errorf("app.http_addr required")
	}
	if c.MySQL.DSN == "" {
		return fmt.Errorf("mysql.dsn required")
	}
	if c.Gateway.Mode != "http" && c.Gateway.Mode != "mock" {
		return fmt.Errorf("gateway.mode must be http or mock")
	}
	if c.Gateway.Mode == "http" && (c.Gateway.BaseURL == "" || c.Gateway.Secret == "") {
		return fmt.Errorf("gateway.base_url and gateway.secret required in http mode")
	}
	if c.Policy.TaxRateBps < 0 || c.Policy.TaxRateBps > 10000 {
		return fmt.Errorf("policy.tax_rate_bps out of range")
	}
	return nil
}

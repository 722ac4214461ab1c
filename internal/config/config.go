package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"time"

	infisical "github.com/infisical/go-sdk"
	"gopkg.in/yaml.v3"
)

const defaultConfigFile = "config.yaml"

// Targets selects which groups a scrape collects. An empty field disables
// the group that needs it.
type Targets struct {
	UserAddress  string
	VaultAddress string
	CoinGeckoKey string
	AlchemyKey   string
}

type Config struct {
	Port            string
	LogLevel        string
	LogFile         string
	UpstreamTimeout time.Duration
	InfoAPIURL      string
	CoinGeckoAPIURL string
	AlchemyAPIURL   string
	Targets         Targets
}

// fileConfig mirrors config.yaml.
type fileConfig struct {
	UserAddress  string `yaml:"user_address"`
	VaultAddress string `yaml:"vault_address"`
	CoinGeckoKey string `yaml:"coingecko_key"`
	AlchemyKey   string `yaml:"alchemy_key"`
}

// ErrNoConfig means neither a config file nor any target setting was found.
var ErrNoConfig = errors.New("no configuration")

var addressRe = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// Load builds the configuration from config.yaml, the environment and,
// when credentials are present, Infisical. Any error is fatal to startup.
func Load() (Config, error) {
	cfg := Config{
		Port:            envOr("PORT", "3000"),
		LogLevel:        envOr("LOG_LEVEL", "info"),
		LogFile:         os.Getenv("LOG_FILE"),
		InfoAPIURL:      envOr("INFO_API_URL", "https://api.hyperliquid.xyz/info"),
		CoinGeckoAPIURL: envOr("COINGECKO_API_URL", "https://api.coingecko.com/api/v3/coins/hyperliquid"),
		AlchemyAPIURL:   envOr("ALCHEMY_API_URL", "https://hyperliquid-mainnet.g.alchemy.com/v2/"),
	}

	timeout, err := time.ParseDuration(envOr("UPSTREAM_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("UPSTREAM_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return Config{}, fmt.Errorf("UPSTREAM_TIMEOUT must be positive, got %s", timeout)
	}
	cfg.UpstreamTimeout = timeout

	path := os.Getenv("CONFIG_FILE")
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	fc, found, err := readFile(path, explicit)
	if err != nil {
		return Config{}, err
	}
	cfg.Targets = Targets{
		UserAddress:  envOr("USER_ADDRESS", fc.UserAddress),
		VaultAddress: envOr("VAULT_ADDRESS", fc.VaultAddress),
		CoinGeckoKey: envOr("COINGECKO_API_KEY", fc.CoinGeckoKey),
		AlchemyKey:   envOr("ALCHEMY_API_KEY", fc.AlchemyKey),
	}

	// If Infisical credentials are available, fetch missing keys from Infisical
	clientID := os.Getenv("INFISICAL_CLIENT_ID")
	clientSecret := os.Getenv("INFISICAL_CLIENT_SECRET")
	if clientID != "" && clientSecret != "" {
		loadFromInfisical(&cfg, clientID, clientSecret)
	}

	if !found && cfg.Targets == (Targets{}) {
		return Config{}, fmt.Errorf("%w: %s not found and no USER_ADDRESS, VAULT_ADDRESS, COINGECKO_API_KEY or ALCHEMY_API_KEY set", ErrNoConfig, path)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// readFile reports whether path existed. Only the implicit default file may
// be absent.
func readFile(path string, explicit bool) (fileConfig, bool, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return fc, false, nil
		}
		return fc, false, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, true, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc, true, nil
}

func (c Config) validate() error {
	for name, addr := range map[string]string{
		"user address":  c.Targets.UserAddress,
		"vault address": c.Targets.VaultAddress,
	} {
		if addr != "" && !addressRe.MatchString(addr) {
			return fmt.Errorf("%s %q is not a 0x-prefixed 20-byte hex address", name, addr)
		}
	}
	for name, raw := range map[string]string{
		"INFO_API_URL":      c.InfoAPIURL,
		"COINGECKO_API_URL": c.CoinGeckoAPIURL,
		"ALCHEMY_API_URL":   c.AlchemyAPIURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%s %q is not an absolute http(s) URL", name, raw)
		}
	}
	return nil
}

func loadFromInfisical(cfg *Config, clientID, clientSecret string) {
	siteURL := envOr("INFISICAL_SITE_URL",
		"http://infisical-infisical-standalone-infisical.infisical.svc.cluster.local:8080")
	projectID := os.Getenv("INFISICAL_PROJECT_ID")
	envSlug := envOr("INFISICAL_ENV", "prod")

	if projectID == "" {
		slog.Warn("INFISICAL_PROJECT_ID not set, skipping Infisical")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := infisical.NewInfisicalClient(ctx, infisical.Config{
		SiteUrl:          siteURL,
		AutoTokenRefresh: false,
	})

	_, err := client.Auth().UniversalAuthLogin(clientID, clientSecret)
	if err != nil {
		slog.Error("infisical auth failed", "error", err)
		return
	}

	secrets := map[string]*string{
		"COINGECKO_API_KEY": &cfg.Targets.CoinGeckoKey,
		"ALCHEMY_API_KEY":   &cfg.Targets.AlchemyKey,
	}

	for key, target := range secrets {
		if *target != "" {
			continue // already configured, skip
		}
		secret, err := client.Secrets().Retrieve(infisical.RetrieveSecretOptions{
			SecretKey:   key,
			Environment: envSlug,
			ProjectID:   projectID,
			SecretPath:  "/",
		})
		if err != nil {
			slog.Warn("failed to retrieve secret from infisical", "key", key, "error", err)
			continue
		}
		*target = secret.SecretValue
		slog.Info("loaded secret from infisical", "key", key)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// OrNone renders an optional setting for startup logs.
func OrNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

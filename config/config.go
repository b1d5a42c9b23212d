package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileEnvName = "PHARMACY_CONFIG_FILE"
	envPrefix         = "PHARMACY"
)

type session struct {
	TokenSecret   string        `mapstructure:"token_secret"`
	TokenTTL      time.Duration `mapstructure:"token_ttl"`
	IdleTimeout   time.Duration `mapstructure:"idle_timeout"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

type auth struct {
	Latency time.Duration `mapstructure:"latency"`
}

type checkout struct {
	FreeShippingThreshold float64 `mapstructure:"free_shipping_threshold"`
	ShippingFee           float64 `mapstructure:"shipping_fee"`
	TaxRate               float64 `mapstructure:"tax_rate"`
}

type tlsFiles struct {
	CA   string `mapstructure:"ca"`
	Cert string `mapstructure:"cert"`
	Key  string `mapstructure:"key"`
}

// Enabled reports whether any TLS file is set.
func (t tlsFiles) Enabled() bool {
	return t.CA != "" || t.Cert != "" || t.Key != ""
}

type topics struct {
	Orders        string `mapstructure:"orders"`
	SearchQueries string `mapstructure:"search_queries"`
}

type broker struct {
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	TLS                tlsFiles `mapstructure:"tls"`
	Topics             topics   `mapstructure:"topics"`
}

// Enabled reports whether events are published at all.
func (b broker) Enabled() bool {
	return len(b.SeedBrokers) != 0
}

type tracing struct {
	Exporter    string `mapstructure:"exporter"`
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	Session        session    `mapstructure:"session"`
	Auth           auth       `mapstructure:"auth"`
	Checkout       checkout   `mapstructure:"checkout"`
	Broker         broker     `mapstructure:"broker"`
	Tracing        tracing    `mapstructure:"tracing"`
}

var defaults = map[string]any{
	"log_level":                        "info",
	"http_server_addr":                 ":8080",
	"session.token_secret":             "",
	"session.token_ttl":                "24h",
	"session.idle_timeout":             "30m",
	"session.sweep_interval":           "1m",
	"auth.latency":                     "1s",
	"checkout.free_shipping_threshold": 50.0,
	"checkout.shipping_fee":            5.99,
	"checkout.tax_rate":                0.08,
	"broker.seed_brokers":              []string{},
	"broker.schema_registry_urls":      []string{},
	"broker.tls.ca":                    "",
	"broker.tls.cert":                  "",
	"broker.tls.key":                   "",
	"broker.topics.orders":             "pharmacy-orders",
	"broker.topics.search_queries":     "pharmacy-search-queries",
	"tracing.exporter":                 "",
	"tracing.endpoint":                 "",
	"tracing.service_name":             "pharmacy",
}

func Load() Config {
	cfg, err := LoadFile(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

// LoadFile reads path over the defaults, then applies PHARMACY_* environment
// overrides. An empty path skips the file.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	err := v.UnmarshalExact(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.Session.TokenSecret == "" {
		errs = append(errs, errors.New("session.token_secret is required"))
	}
	if c.Session.TokenTTL <= 0 {
		errs = append(errs, errors.New("session.token_ttl must be positive"))
	}
	if c.Auth.Latency < 0 {
		errs = append(errs, errors.New("auth.latency is negative"))
	}
	tls := c.Broker.TLS
	if tls.Enabled() && (tls.CA == "" || tls.Cert == "" || tls.Key == "") {
		errs = append(errs, errors.New("broker.tls needs ca, cert and key together"))
	}
	return errors.Join(errs...)
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q

	Session:
	TokenSecret=%q
	TokenTTL=%s
	IdleTimeout=%s
	SweepInterval=%s

	Auth:
	Latency=%s

	Checkout:
	FreeShippingThreshold=%.2f
	ShippingFee=%.2f
	TaxRate=%.4f

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	TLS=%t
	Topics:
		Orders=%q
		SearchQueries=%q

	Tracing:
	Exporter=%q
	Endpoint=%q
	ServiceName=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		mask(c.Session.TokenSecret),
		c.Session.TokenTTL,
		c.Session.IdleTimeout,
		c.Session.SweepInterval,
		c.Auth.Latency,
		c.Checkout.FreeShippingThreshold,
		c.Checkout.ShippingFee,
		c.Checkout.TaxRate,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.TLS.Enabled(),
		c.Broker.Topics.Orders,
		c.Broker.Topics.SearchQueries,
		c.Tracing.Exporter,
		c.Tracing.Endpoint,
		c.Tracing.ServiceName,
	)
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "***"
}

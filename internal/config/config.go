package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"time"

	"github.com/peterbourgon/ff/v3"
)

const EnvPrefix = "ENROLLMENTS"

// Config holds everything the service needs; nothing is hardcoded elsewhere.
type Config struct {
	// Reporting endpoint
	Endpoint     string // base URL up to .../RealizaConsulta
	Username     string
	Password     string
	QueryName    string
	QueryVersion int
	QueryScope   string

	Timeout            time.Duration
	InsecureSkipVerify bool
	RequestRateLimit   float64 // outbound requests per second
	RequestRateBurst   int

	// Aggregation and refresh policy
	NoiseSubstring  string
	CacheTTL        time.Duration
	RefreshInterval time.Duration

	// Serving
	ListenAddr  string
	PageTitle   string
	PostgresDSN string // empty disables the query-run trail

	LogLevel string
	LogFile  string
	Env      string
}

// Parse reads flags, ENROLLMENTS_* environment variables and an optional
// config file (-config), in that order of precedence.
func Parse(args []string) (Config, error) {
	fs := flag.NewFlagSet("enrollment-dashboard", flag.ContinueOnError)

	var cfg Config
	fs.StringVar(&cfg.Endpoint, "endpoint", "", "reporting endpoint base URL")
	fs.StringVar(&cfg.Username, "username", "", "basic auth username")
	fs.StringVar(&cfg.Password, "password", "", "basic auth password")
	fs.StringVar(&cfg.QueryName, "query-name", "SMP.0025", "named query registered on the server")
	fs.IntVar(&cfg.QueryVersion, "query-version", 0, "named query version")
	fs.StringVar(&cfg.QueryScope, "query-scope", "S", "named query scope")

	fs.DurationVar(&cfg.Timeout, "timeout", 120*time.Second, "remote call timeout")
	fs.BoolVar(&cfg.InsecureSkipVerify, "insecure-skip-verify", true, "skip TLS certificate verification")
	fs.Float64Var(&cfg.RequestRateLimit, "rate", 1, "outbound requests per second")
	fs.IntVar(&cfg.RequestRateBurst, "burst", 1, "outbound request burst capacity")

	fs.StringVar(&cfg.NoiseSubstring, "noise-substring", "COLEGIO E CURSO MATRIZ EDUCACAO", "text removed from branch names")
	fs.DurationVar(&cfg.CacheTTL, "cache-ttl", 5*time.Minute, "how long a fetched result is served")
	fs.DurationVar(&cfg.RefreshInterval, "refresh-interval", 10*time.Second, "dashboard auto refresh interval")

	fs.StringVar(&cfg.ListenAddr, "listen", ":8080", "HTTP listen address")
	fs.StringVar(&cfg.PageTitle, "page-title", "Matrículas por Unidade — SMP.0025", "dashboard title")
	fs.StringVar(&cfg.PostgresDSN, "postgres-dsn", "", "postgres DSN for the query-run trail")

	fs.StringVar(&cfg.LogLevel, "log-level", "info", "debug, info, warn or error")
	fs.StringVar(&cfg.LogFile, "log-file", "logs/app.log", "rotated JSON log file, empty to disable")
	fs.StringVar(&cfg.Env, "env", "production", "environment name added to log lines")

	_ = fs.String("config", "", "config file path")

	err := ff.Parse(fs, args,
		ff.WithEnvVarPrefix(EnvPrefix),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse configuration: %w", err)
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error

	if c.Endpoint == "" {
		errs = append(errs, fmt.Errorf("endpoint must be provided via %s_ENDPOINT", EnvPrefix))
	} else if u, err := url.Parse(c.Endpoint); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("endpoint %q is not an http(s) URL", c.Endpoint))
	}
	if c.Username == "" || c.Password == "" {
		errs = append(errs, fmt.Errorf("credentials must be provided via %s_USERNAME and %s_PASSWORD", EnvPrefix, EnvPrefix))
	}
	if c.QueryName == "" || c.QueryScope == "" {
		errs = append(errs, errors.New("query name and scope are required"))
	}
	if c.QueryVersion < 0 {
		errs = append(errs, errors.New("query version must not be negative"))
	}
	if c.Timeout <= 0 {
		errs = append(errs, errors.New("timeout must be positive"))
	}
	if c.CacheTTL <= 0 {
		errs = append(errs, errors.New("cache ttl must be positive"))
	}
	if c.RefreshInterval < time.Second {
		errs = append(errs, errors.New("refresh interval must be at least 1s"))
	}
	if c.RequestRateBurst < 1 {
		errs = append(errs, errors.New("burst must be at least 1"))
	}

	return errors.Join(errs...)
}

package config

import (
	"errors"
	"flag"
	"io/fs"
	"net"
	"regexp"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Env holds the datastore credentials, read from the environment the same way
// the hosted functions receive them.
type Env struct {
	SupabaseURL        string `env:"SUPABASE_URL"`
	SupabaseServiceKey string `env:"SUPABASE_SERVICE_ROLE_KEY"`
	SupabaseKey        string `env:"SUPABASE_KEY"`
	DatabaseURL        string `env:"DATABASE_URL"`
	Port               uint   `env:"PORT"`
}

type Config struct {
	Env
	Addr           string
	PublicDir      string
	FormsFile      string
	SQLitePath     string
	MaxBodyBytes   int64
	GatewayTimeout time.Duration
	CheckFormats   bool
	Debug          bool
}

// Parse reads an optional dotenv file, then the environment, then args.
// Missing datastore credentials are not an error here: handlers report them
// per request.
func Parse(args []string) (cfg Config, err error) {
	fl := flag.NewFlagSet("event-intake", flag.ContinueOnError)

	var envFile string
	fl.StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	var host string
	fl.StringVar(&host, "host", "0.0.0.0", "listen host name")
	var port uint
	fl.UintVar(&port, "port", 0, "listen port number (default $PORT or 8000)")
	fl.StringVar(&cfg.PublicDir, "public", "public", "directory with the static site")
	fl.StringVar(&cfg.FormsFile, "forms", "", "YAML file with form schemas (default: built-in forms)")
	fl.StringVar(&cfg.SQLitePath, "sqlite", "", "path to a local SQLite3 DB file, used when no hosted datastore is configured")
	fl.Int64Var(&cfg.MaxBodyBytes, "max-body", 1<<20, "maximum request body size in bytes")
	var timeout uint
	fl.UintVar(&timeout, "gateway-timeout", 15, "datastore request timeout in seconds")
	fl.BoolVar(&cfg.CheckFormats, "check-formats", false, "reject fields failing their declared format (e.g. email)")
	fl.BoolVar(&cfg.Debug, "debug", false, "log at DEBUG level")
	if err = fl.Parse(args); err != nil {
		return
	}

	if envFile != "" {
		err = godotenv.Load(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return
		}
	}
	if err = env.Parse(&cfg.Env); err != nil {
		return
	}

	if port == 0 {
		port = cfg.Port
	}
	if port == 0 {
		port = 8000
	}
	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	cfg.GatewayTimeout = time.Duration(timeout) * time.Second

	if cfg.MaxBodyBytes <= 0 {
		err = errors.New("parameter -max-body must be positive")
	}
	return
}

// SupabaseAPIKey prefers the service role key, which bypasses row level
// security, over the anon key.
func (cfg Config) SupabaseAPIKey() string {
	if cfg.SupabaseServiceKey != "" {
		return cfg.SupabaseServiceKey
	}
	return cfg.SupabaseKey
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}

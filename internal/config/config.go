package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
)

// Config holds the CLI settings. Flags win over environment variables.
type Config struct {
	TableName string
	Strict    bool
	LogLevel  string
	SeqURL    string
	DSN       string // postgres connection string; empty uses the built-in sample
	Query     string
	JSONFile  string // rows as a JSON array of objects; used when DSN is empty
}

// Environment variable names
const (
	EnvTable    = "DATATABLE_TABLE"
	EnvStrict   = "DATATABLE_STRICT"
	EnvLogLevel = "DATATABLE_LOG_LEVEL"
	EnvSeqURL   = "DATATABLE_SEQ_URL"
	EnvDSN      = "DATATABLE_DSN"
	EnvQuery    = "DATATABLE_QUERY"
)

// Load parses args (without the program name) on top of the environment
func Load(args []string) (*Config, error) {
	return load(args, os.Getenv)
}

func load(args []string, getenv func(string) string) (*Config, error) {
	strictDefault := true
	if v := getenv(EnvStrict); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvStrict, v, err)
		}
		strictDefault = b
	}

	cfg := &Config{}
	fs := flag.NewFlagSet("datatable", flag.ContinueOnError)
	fs.StringVar(&cfg.TableName, "table", envOr(getenv, EnvTable, "people"), "Table name")
	fs.BoolVar(&cfg.Strict, "strict", strictDefault, "Require every row to have exactly the table columns")
	fs.StringVar(&cfg.LogLevel, "log-level", envOr(getenv, EnvLogLevel, "info"), "Log level: debug, info, warn, error")
	fs.StringVar(&cfg.SeqURL, "seq", getenv(EnvSeqURL), "Seq server URL (empty disables)")
	fs.StringVar(&cfg.DSN, "dsn", getenv(EnvDSN), "Postgres connection string")
	fs.StringVar(&cfg.Query, "query", getenv(EnvQuery), "Query to load when -dsn is set")
	fs.StringVar(&cfg.JSONFile, "json", "", "Load rows from a JSON file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.DSN != "" && cfg.Query == "" {
		return nil, fmt.Errorf("-query is required when -dsn is set")
	}
	return cfg, nil
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}

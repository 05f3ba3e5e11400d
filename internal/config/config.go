package config

import (
	"os"

	"codeberg.org/mutker/sqlfault/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const DefaultLogLevel = "info"

type Config struct {
	Driver       string `mapstructure:"driver"`
	DSN          string `mapstructure:"dsn"`
	Catalog      string `mapstructure:"catalog"`
	WatchCatalog bool   `mapstructure:"watch_catalog"`
	Record       bool   `mapstructure:"record"`
	Database     string `mapstructure:"database"`
	LogLevel     string `mapstructure:"log_level"`

	// Args holds the positional command-line arguments left after flag
	// parsing, e.g. the SQL statement to run.
	Args []string `mapstructure:"-"`
}

// Load reads configuration in file < env < flag precedence. The config
// file is TOML, found at /etc/sqlfault.toml or wherever SQLFAULT_CONFIG
// points.
func Load() (*Config, error) {
	errFactory := errors.New()

	v := viper.New()
	v.SetDefault("driver", "sqlite3")
	v.SetDefault("dsn", ":memory:")
	v.SetDefault("database", "/var/lib/sqlfault/faultlog.db")
	v.SetDefault("log_level", DefaultLogLevel)

	if path := os.Getenv("SQLFAULT_CONFIG"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errFactory.WithMessage(errors.ErrReadConfig,
				"Failed to read config file: "+err.Error())
		}
	} else {
		v.SetConfigName("sqlfault")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, errFactory.Wrap(errors.ErrReadConfig, err)
			}
		}
	}

	flags := pflag.NewFlagSet("sqlfault", pflag.ContinueOnError)
	flags.String("driver", v.GetString("driver"), "Database driver (sqlite3, pgx, mysql)")
	flags.String("dsn", v.GetString("dsn"), "Data source name")
	flags.String("catalog", v.GetString("catalog"), "Message catalog overlay file")
	flags.Bool("watch-catalog", v.GetBool("watch_catalog"), "Reload the catalog overlay on change")
	flags.Bool("record", v.GetBool("record"), "Record classified faults to the fault log")
	flags.String("database", v.GetString("database"), "Fault log database path")
	flags.String("log-level", v.GetString("log_level"), "Log level (debug, info, warning, error)")
	flags.ParseErrorsWhitelist.UnknownFlags = true

	if err := flags.Parse(os.Args[1:]); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	flags.Visit(func(f *pflag.Flag) {
		key := f.Name
		if key == "log-level" {
			key = "log_level"
		}
		if key == "watch-catalog" {
			key = "watch_catalog"
		}
		v.Set(key, f.Value.String())
	})

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	config.Args = flags.Args()

	if !LogLevel(config.LogLevel).IsValid() {
		return nil, errFactory.WithData(errors.ErrInvalidLogLevel, config.LogLevel)
	}

	return config, nil
}

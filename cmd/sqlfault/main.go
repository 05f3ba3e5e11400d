package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"codeberg.org/mutker/sqlfault/internal/catalog"
	"codeberg.org/mutker/sqlfault/internal/classify"
	"codeberg.org/mutker/sqlfault/internal/config"
	"codeberg.org/mutker/sqlfault/internal/errors"
	"codeberg.org/mutker/sqlfault/internal/faultlog"
	"codeberg.org/mutker/sqlfault/internal/logger"
	"codeberg.org/mutker/sqlfault/internal/rowdesc"
	"codeberg.org/mutker/sqlfault/internal/rowfunc"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

var cfg *config.Config

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel == "debug", cfg.LogLevel == "info", logger.IsService())
	if cfg.LogLevel == "error" {
		logger.SetLogLevel(logger.ErrorLevel)
	}
	logger.Debug().Msg("Config loaded")
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	if err := run(ctx); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	errFactory := errors.New()

	if cfg.Catalog != "" {
		if err := loadCatalog(); err != nil {
			logger.Error().Err(err).Msg("failed to load message catalog")
			return err
		}
	}

	if len(cfg.Args) == 0 {
		err := errFactory.WithMessage(errors.ErrInvalidArgument, "no SQL statement given")
		logger.Error().Err(err).Msg("usage: sqlfault [flags] <statement>")
		return err
	}
	statement := strings.Join(cfg.Args, " ")

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		logger.Error().Err(err).Str("driver", cfg.Driver).Msg("failed to open database")
		return errFactory.Wrap(errors.ErrOpenDB, err)
	}
	defer db.Close()

	var recorder faultlog.Recorder
	if cfg.Record {
		recorder, err = faultlog.NewService(faultlog.Config{DBPath: cfg.Database})
		if err != nil {
			logger.Error().Err(err).Msg("failed to open fault log")
			return err
		}
		defer recorder.Close()
	}

	if err := execute(ctx, db, statement); err != nil {
		report(ctx, recorder, err)
		return err
	}

	return nil
}

func execute(ctx context.Context, db *sql.DB, statement string) error {
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(statement)), "select") {
		_, err := db.ExecContext(ctx, statement)
		return err
	}

	rows, err := db.QueryContext(ctx, statement)
	if err != nil {
		return err
	}
	defer rows.Close()

	count := 0
	err = rowfunc.ForEach(rows, func(rows *sql.Rows) error {
		desc, err := rowdesc.Describe(rows)
		if err != nil {
			return err
		}
		count++
		logger.Info().Msg(desc)
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info().Int("rows", count).Msg("query complete")
	return nil
}

// report classifies the failure, logs it with its SQLSTATE when
// recognized, and records it when the fault log is enabled.
func report(ctx context.Context, recorder faultlog.Recorder, err error) {
	f, ok := classify.Fault(err)
	if !ok {
		logger.Error().Err(err).Msg("statement failed (unclassified)")
		return
	}

	logger.Fault(f).Msg("statement failed")

	if recorder != nil {
		if recordErr := recorder.Record(ctx, faultlog.FromFault(f)); recordErr != nil {
			logger.Error().Err(recordErr).Msg("failed to record fault")
		}
	}
}

func loadCatalog() error {
	if cfg.WatchCatalog {
		return catalog.Default().Watch(cfg.Catalog)
	}

	return catalog.Default().LoadFile(cfg.Catalog)
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}

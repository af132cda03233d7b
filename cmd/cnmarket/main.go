// Command cnmarket runs one historical query against the configured market
// data backend and prints the normalized result. The reading core itself is
// protocol-free; this binary is operational glue for inspection and smoke
// tests.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"cnmarket/internal/config"
	"cnmarket/internal/database"
	"cnmarket/internal/logger"
	"cnmarket/internal/market/names"
	"cnmarket/internal/market/reader"
	"cnmarket/internal/market/series"
	"cnmarket/internal/market/store"
)

func main() {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	var (
		configPath  = flag.String("config", "configs/config.yaml", "path to configuration file")
		op          = flag.String("op", "stock", "operation: stock, index or treasury")
		symbol      = flag.String("symbol", "", "stock or index symbol")
		start       = flag.String("start", "", "start date (inclusive), e.g. 2020-05-15")
		end         = flag.String("end", "", "end date (inclusive), e.g. 2020-05-25")
		asJSON      = flag.Bool("json", false, "print the result as JSON")
		migrateUp   = flag.Bool("migrate", false, "run database migrations before querying")
		migrateDown = flag.Bool("migrate-down", false, "roll back all database migrations and exit")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cnmarket: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cnmarket: %v\n", err)
		os.Exit(1)
	}

	if *migrateDown {
		if err := rollbackMigrations(cfg, log); err != nil {
			log.WithError(err).Fatal("rollback failed")
		}
		return
	}

	if err := run(cfg, log, *op, *symbol, *start, *end, *asJSON, *migrateUp); err != nil {
		log.WithError(err).Fatal("query failed")
	}
}

func run(cfg *config.Config, log *logrus.Logger, op, symbol, start, end string, asJSON, migrateUp bool) error {
	st, db, cleanup, err := openStore(cfg, log, migrateUp)
	if err != nil {
		return err
	}
	defer cleanup()

	resolver, resolverCleanup, err := openResolver(cfg, db)
	if err != nil {
		return err
	}
	defer resolverCleanup()

	r := reader.New(st, resolver, log)
	ctx := context.Background()

	switch op {
	case "stock":
		if symbol == "" {
			return fmt.Errorf("operation %q requires -symbol", op)
		}
		s, err := r.StockReturns(ctx, symbol, start, end)
		if err != nil {
			return err
		}
		return printSeries(s, asJSON)
	case "index":
		if symbol == "" {
			return fmt.Errorf("operation %q requires -symbol", op)
		}
		s, err := r.IndexReturns(ctx, symbol, start, end)
		if err != nil {
			return err
		}
		return printSeries(s, asJSON)
	case "treasury":
		c, err := r.TreasuryCurve(ctx, start, end)
		if err != nil {
			return err
		}
		return printCurve(c, asJSON)
	default:
		return fmt.Errorf("unknown operation %q", op)
	}
}

func openStore(cfg *config.Config, log *logrus.Logger, migrateUp bool) (store.Store, *sql.DB, func(), error) {
	switch cfg.Store.Backend {
	case "postgres":
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, nil, nil, err
		}
		if migrateUp {
			if err := runMigrations(db, cfg.Database.MigrationsPath, log); err != nil {
				db.Close()
				return nil, nil, nil, err
			}
		}
		return store.NewPostgres(db), db, func() { db.Close() }, nil
	case "mongo":
		client, err := database.NewMongo(cfg.Mongo)
		if err != nil {
			return nil, nil, nil, err
		}
		cleanup := func() { _ = client.Disconnect(context.Background()) }
		return store.NewMongo(client), nil, cleanup, nil
	case "csv":
		return store.NewCSVDir(cfg.CSV.Dir), nil, func() {}, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func openResolver(cfg *config.Config, db *sql.DB) (names.Resolver, func(), error) {
	switch cfg.Names.Source {
	case "", "static":
		return names.MainIndexes(), func() {}, nil
	case "postgres":
		if db == nil {
			opened, err := database.NewPostgres(cfg.Database)
			if err != nil {
				return nil, nil, err
			}
			return names.NewPostgresDirectory(opened), func() { opened.Close() }, nil
		}
		return names.NewPostgresDirectory(db), func() {}, nil
	case "redis":
		client, err := database.NewRedis(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return names.NewRedisDirectory(client, cfg.Names.RedisKey), func() { client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown names source %q", cfg.Names.Source)
	}
}

func runMigrations(db *sql.DB, path string, log *logrus.Logger) error {
	migrator, err := database.NewMigrator(db, migrationsPath(path))
	if err != nil {
		return err
	}
	if err := migrator.Up(); err != nil {
		return err
	}
	version, err := migrator.Version()
	if err != nil {
		return err
	}
	log.WithField("version", version).Info("database migrations completed")
	return nil
}

func rollbackMigrations(cfg *config.Config, log *logrus.Logger) error {
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	migrator, err := database.NewMigrator(db, migrationsPath(cfg.Database.MigrationsPath))
	if err != nil {
		return err
	}
	if err := migrator.Down(); err != nil {
		return err
	}
	log.Info("database migrations rolled back")
	return nil
}

func migrationsPath(path string) string {
	if path == "" {
		return "migrations"
	}
	return path
}

func printSeries(s series.Series, asJSON bool) error {
	if asJSON {
		return printJSON(s)
	}
	fmt.Printf("name: %s (%d observations)\n", s.Name, s.Len())
	for _, p := range s.Points {
		fmt.Printf("%s  %+.6f\n", p.Date.Format("2006-01-02"), p.Value)
	}
	return nil
}

func printCurve(c series.Curve, asJSON bool) error {
	if asJSON {
		return printJSON(c)
	}
	fmt.Print("date")
	for _, t := range c.Tenors {
		fmt.Printf("\t%s", t)
	}
	fmt.Println()
	for _, row := range c.Rows {
		fmt.Print(row.Date.Format("2006-01-02"))
		for _, t := range c.Tenors {
			if rate, ok := row.Rates[t]; ok {
				fmt.Printf("\t%.6f", rate)
			} else {
				fmt.Print("\t-")
			}
		}
		fmt.Println()
	}
	return nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package main

import (
	"flag"
	"os"
	"staffdir/cmd/migration/initialize"
	"staffdir/cmd/migration/seed"
	"staffdir/config"
	"staffdir/internal/database"
	"staffdir/internal/logger"

	migrate "github.com/rubenv/sql-migrate"
	"gorm.io/gorm"
)

func main() {
	log := logger.New("migration")

	migrationsDir := flag.String("dir", "migrations", "directory holding SQL migrations")
	runSeed := flag.Bool("seed", false, "seed development data after migrating")
	flag.Parse()

	cfg, err := config.InitConfig()
	if err != nil {
		log.Er("failed to initialize config", err)
		os.Exit(1)
	}

	db, err := openDB(cfg)
	if err != nil {
		log.Er("failed to open database", err)
		os.Exit(1)
	}

	if err := runMigrations(db, *migrationsDir, log); err != nil {
		log.Er("failed to run migrations", err)
		os.Exit(1)
	}

	if err := initialize.InitializeTables(db, cfg, log); err != nil {
		log.Er("failed to initialize tables", err)
		os.Exit(1)
	}

	if *runSeed {
		if cfg.Environment != "development" {
			log.ErMsg("refusing to seed outside development", "environment", cfg.Environment)
			os.Exit(1)
		}
		if err := seed.Seed(db, cfg, log); err != nil {
			log.Er("failed to seed data", err)
			os.Exit(1)
		}
	}

	log.Info("migration complete")
}

// openDB connects to SQLite only; migrations never need the cache tier.
func openDB(cfg config.Config) (*gorm.DB, error) {
	db := database.DB{}
	if err := db.InitializeSQL(cfg); err != nil {
		return nil, err
	}
	return db.SQL, nil
}

func runMigrations(db *gorm.DB, dir string, log logger.Logger) error {
	log = log.Function("runMigrations")

	sqlDB, err := db.DB()
	if err != nil {
		return log.Err("failed to get sql database", err)
	}

	source := &migrate.FileMigrationSource{Dir: dir}
	applied, err := migrate.Exec(sqlDB, "sqlite3", source, migrate.Up)
	if err != nil {
		return log.Err("failed to apply migrations", err, "dir", dir)
	}

	log.Info("applied migrations", "count", applied)
	return nil
}

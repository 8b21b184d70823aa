package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	"connectly/pkg/config"
	"connectly/pkg/logger"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

func main() {
	dir := flag.String("dir", "migrations", "directory with migration files")
	flag.Parse()

	command := "up"
	var commandArgs []string
	if args := flag.Args(); len(args) > 0 {
		command = args[0]
		commandArgs = args[1:]
	}

	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config: %v", err)
		os.Exit(1)
	}

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Error("open database: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Error("set dialect: %v", err)
		os.Exit(1)
	}

	if err := goose.Run(command, db, *dir, commandArgs...); err != nil {
		log.Error("goose %s: %v", command, err)
		os.Exit(1)
	}

	log.Info("migrations %s complete", command)
}

package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/repaart/fleet-scheduler/internal/config"
	"github.com/repaart/fleet-scheduler/internal/repository"
	"github.com/repaart/fleet-scheduler/internal/seed"
	"github.com/repaart/fleet-scheduler/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "operation to run (1: create schema, 2: insert random couriers, 3: insert random vehicles, 4: seed the demo week)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("unable to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	loc, err := time.LoadLocation(cfg.Scheduling.Timezone)
	if err != nil {
		logger.Error("unable to load scheduling timezone", "timezone", cfg.Scheduling.Timezone, "error", err)
		return
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("unable to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open only builds the pool object, it does not touch the network,
	// so ping explicitly to fail fast on a bad DSN.
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("unable to reach the database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool, loc)

	switch op {
	case 0:
		slog.Error("no operation given")
	case 1:
		if err := repo.EnsureSchema(); err != nil {
			slog.Error("unable to create the schema", slog.String("error", err.Error()))
			return
		}
		slog.Info("schema created")
	case 2:
		if n <= 0 {
			slog.Error("courier count must be positive")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				courier := utils.GenerateRandomCourier(cfg.InitialAdmin.FranchiseID, "example.com")
				if err := repo.CreateCourier(courier); err != nil {
					slog.Error("unable to insert courier", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("couriers inserted", slog.Int("count", n-cnt))
		}
	case 3:
		if n <= 0 {
			slog.Error("vehicle count must be positive")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				vehicle := utils.GenerateRandomVehicle(cfg.InitialAdmin.FranchiseID)
				if err := repo.CreateVehicle(vehicle); err != nil {
					slog.Error("unable to insert vehicle", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("vehicles inserted", slog.Int("count", n-cnt))
		}
	case 4:
		seed.SeedDemoWeek(repo, cfg)
	default:
		slog.Error("unknown operation")
	}
}

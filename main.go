package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"pitcheck/adapters/artifact"
	"pitcheck/adapters/excel"
	"pitcheck/adapters/plot"
	"pitcheck/adapters/postgres"
	"pitcheck/adapters/rng"
	"pitcheck/app"
	"pitcheck/internal"
	"pitcheck/internal/config"
	"pitcheck/ports"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()

	var repo ports.RunRepository
	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := postgres.EnsureSchema(context.Background(), db); err != nil {
			log.Fatalf("Failed to ensure schema: %v", err)
		}
		repo = postgres.NewRunRepository(db)
		logger.Info("run persistence enabled")
	}

	service := app.NewCalibrationService(
		excel.NewDataReader(),
		artifact.NewGobStore(),
		plot.NewRenderer(plot.DefaultStyle()),
		rng.NewStreamFactory(),
		repo,
		logger,
	)

	result, err := service.Run(context.Background(), app.RunRequest{
		ObsPath:         cfg.Inputs.ObsFile,
		DrawsPath:       cfg.Inputs.DrawsFile,
		OutDir:          cfg.Output.Dir,
		Seed:            cfg.Analysis.Seed,
		RefSeries:       cfg.Analysis.RefSeries,
		AnimationFrames: cfg.Analysis.AnimationFrames,
		Bandwidth:       cfg.Analysis.Bandwidth,
		Animate:         cfg.Output.Animate,
	})
	if err != nil {
		log.Fatalf("Calibration run failed: %v", err)
	}

	fmt.Printf("Verdict: %s\n", result.Diagnostics.Verdict)
	fmt.Printf("Report: %s\n", result.ReportPath)
}

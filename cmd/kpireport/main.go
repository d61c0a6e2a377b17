package main

import (
	"flag"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"ran-insights-go/internal/config"
	"ran-insights-go/internal/logger"
	"ran-insights-go/internal/pipeline"
)

func main() {
	_ = godotenv.Load() // loads .env

	var (
		configPath = flag.String("config", "", "path to a YAML or JSON config file")
		mappingCSV = flag.String("mapping", "", "cluster mapping CSV (overrides config)")
		fddFiles   = flag.String("fdd", "", "comma-separated LTE FDD export files")
		tddFiles   = flag.String("tdd", "", "comma-separated LTE TDD export files")
		gsmFiles   = flag.String("gsm", "", "comma-separated GSM export files")
		coverage   = flag.String("coverage", "", "optional coverage export file")
		output     = flag.String("out", "", "report output path")
		mode       = flag.String("periods", "", "period mode: rolling or calendar")
		workers    = flag.Int("workers", 0, "parallel cluster evaluations")
	)
	flag.Parse()

	log := logger.New().WithRun()
	log.WithField("service", "ran-insights-go").Info("starting report run")

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.WithError(err).WithField("config", *configPath).Fatal("failed to load config")
		}
		cfg = loaded
	}
	if *mappingCSV != "" {
		cfg.Inputs.Mapping = *mappingCSV
	}
	if *fddFiles != "" {
		cfg.Inputs.FDD = splitList(*fddFiles)
	}
	if *tddFiles != "" {
		cfg.Inputs.TDD = splitList(*tddFiles)
	}
	if *gsmFiles != "" {
		cfg.Inputs.GSM = splitList(*gsmFiles)
	}
	if *coverage != "" {
		cfg.Inputs.Coverage = *coverage
	}
	if *output != "" {
		cfg.Report.OutputPath = *output
	}
	if *mode != "" {
		cfg.Periods.Mode = *mode
	}
	if *workers > 0 {
		cfg.Report.Workers = *workers
	}
	if err := config.Validate(cfg); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	// Component loggers read LOG_LEVEL from the environment; an explicit
	// env var still wins over the config file.
	if os.Getenv("LOG_LEVEL") == "" && cfg.LogLevel != "" {
		os.Setenv("LOG_LEVEL", cfg.LogLevel)
	}

	progress := func(message string, percent int) {
		log.WithField("percent", percent).Info(message)
	}

	res, err := pipeline.Run(cfg, progress)
	if err != nil {
		log.WithError(err).Fatal("report run failed")
	}
	for _, ferr := range res.FileErrors {
		log.WithError(ferr).Warn("input file was skipped")
	}
	log.WithField("reports", len(res.Outputs)).
		WithField("rows_parsed", res.Parsed).
		WithField("rows_skipped", res.Skipped).
		Info("report run complete")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

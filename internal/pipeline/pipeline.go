// Package pipeline orchestrates one report run: load the cluster mapping,
// parse measurement exports, aggregate, evaluate and render. The run
// either completes with one report per cluster or fails with the missing
// precondition.
package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"ran-insights-go/internal/aggregator"
	"ran-insights-go/internal/config"
	"ran-insights-go/internal/dataset"
	"ran-insights-go/internal/kpi"
	"ran-insights-go/internal/logger"
	"ran-insights-go/internal/mapping"
	"ran-insights-go/internal/render"
	"ran-insights-go/internal/report"
	"ran-insights-go/internal/types"
)

var (
	ErrNoInputFiles = errors.New("no data files provided")
	ErrNoMappedRows = errors.New("no mapped measurement rows found")
)

// ProgressFunc receives coarse-grained milestones. It is advisory
// telemetry only: the run completes identically when none is wired.
type ProgressFunc func(message string, percent int)

// Result summarizes one completed run.
type Result struct {
	Reports    []types.ClusterReport
	Outputs    []string
	Parsed     int
	Skipped    int
	FileErrors []error
}

// Run executes the full pipeline described by cfg.
func Run(cfg *config.Config, progress ProgressFunc) (*Result, error) {
	return run(cfg, progress, render.Write)
}

func run(cfg *config.Config, progress ProgressFunc, write func(types.ClusterReport, string) error) (*Result, error) {
	log := logger.New().WithRun().WithField("component", "pipeline")
	notify := func(msg string, pct int) {
		if progress != nil {
			progress(msg, pct)
		}
	}

	totalFiles := len(cfg.Inputs.FDD) + len(cfg.Inputs.TDD) + len(cfg.Inputs.GSM)
	if totalFiles == 0 {
		return nil, ErrNoInputFiles
	}

	notify("Loading cluster mapping...", 5)
	table, err := mapping.Load(cfg.Inputs.Mapping)
	if err != nil {
		return nil, fmt.Errorf("cluster mapping: %w", err)
	}
	notify("Cluster mapping loaded", 10)

	res := &Result{}
	var records []*types.MeasurementRecord
	processed := 0

	parseFile := func(path string, parse func(string) ([]*types.MeasurementRecord, *types.ParseStats, error)) {
		recs, stats, err := parse(path)
		processed++
		if err != nil {
			log.WithError(err).WithField("file", path).Warn("file failed, continuing")
			res.FileErrors = append(res.FileErrors, fmt.Errorf("%s: %w", path, err))
			return
		}
		records = append(records, recs...)
		res.Parsed += stats.Parsed
		res.Skipped += stats.TotalSkipped()
		notify(fmt.Sprintf("Parsed %s (%d rows, %d skipped)", filepath.Base(path), stats.Parsed, stats.TotalSkipped()),
			10+int(float64(processed)/float64(totalFiles)*30))
	}

	for _, path := range cfg.Inputs.FDD {
		parseFile(path, func(p string) ([]*types.MeasurementRecord, *types.ParseStats, error) {
			return dataset.ParseLTE(p, table, types.TechLTEFDD)
		})
	}
	for _, path := range cfg.Inputs.TDD {
		parseFile(path, func(p string) ([]*types.MeasurementRecord, *types.ParseStats, error) {
			return dataset.ParseLTE(p, table, types.TechLTETDD)
		})
	}
	for _, path := range cfg.Inputs.GSM {
		parseFile(path, func(p string) ([]*types.MeasurementRecord, *types.ParseStats, error) {
			return dataset.ParseGSM(p, table)
		})
	}

	if len(records) == 0 {
		return nil, ErrNoMappedRows
	}

	coverageByCluster := make(map[string][]types.CoverageCell)
	if cfg.Inputs.Coverage != "" {
		cells, _, err := dataset.ParseCoverage(cfg.Inputs.Coverage, table)
		if err != nil {
			log.WithError(err).Warn("coverage file failed, continuing without coverage")
			res.FileErrors = append(res.FileErrors, fmt.Errorf("%s: %w", cfg.Inputs.Coverage, err))
		}
		for _, c := range cells {
			coverageByCluster[c.Cluster] = append(coverageByCluster[c.Cluster], c)
		}
	}

	notify("Grouping records by cluster and period...", 45)
	var grouped *aggregator.Grouped
	if cfg.Periods.Mode == config.PeriodModeCalendar {
		grouped = aggregator.GroupCalendar(records)
	} else {
		grouped = aggregator.GroupRolling(records, cfg.Periods.WindowDays, cfg.Periods.WindowCount)
	}

	clusters := grouped.Clusters()
	if len(clusters) == 0 {
		return nil, ErrNoMappedRows
	}
	log.WithField("clusters", len(clusters)).WithField("records", len(records)).Info("aggregation complete")

	targets := kpi.Targets()
	now := time.Now()

	// A zero-capacity semaphore would block the first send forever, so a
	// programmatically built Config with Workers 0 is clamped here too.
	workers := cfg.Report.Workers
	if workers < 1 {
		workers = 1
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	errs := make([]error, len(clusters))
	sem := make(chan struct{}, workers)
	done := 0

	for i, cluster := range clusters {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, cluster string) {
			defer wg.Done()
			defer func() { <-sem }()

			rep := report.Build(cluster, grouped.ByCluster[cluster], grouped.Periods, targets,
				dataset.SummarizeCoverage(coverageByCluster[cluster]), now)
			out := outputPath(cfg.Report.OutputPath, cluster, len(clusters) > 1)

			mu.Lock()
			done++
			notify(fmt.Sprintf("Evaluated cluster %s (%d/%d)", cluster, done, len(clusters)),
				50+int(float64(done)/float64(len(clusters))*40))
			mu.Unlock()

			if err := write(rep, out); err != nil {
				errs[i] = fmt.Errorf("render %s: %w", cluster, err)
				return
			}

			mu.Lock()
			res.Reports = append(res.Reports, rep)
			res.Outputs = append(res.Outputs, out)
			notify(fmt.Sprintf("Report written for %s", cluster), 50+int(float64(done)/float64(len(clusters))*45))
			mu.Unlock()
		}(i, cluster)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return res, err
		}
	}

	notify("Report generation complete", 100)
	return res, nil
}

// outputPath suffixes the cluster name when the run spans several
// clusters, so each cluster gets its own workbook.
func outputPath(base, cluster string, multi bool) string {
	if !multi {
		return base
	}
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return fmt.Sprintf("%s_%s%s", stem, cluster, ext)
}

// Package report assembles per-cluster KPI results into the ClusterReport
// handed to the renderer.
package report

import (
	"time"

	"ran-insights-go/internal/actionable"
	"ran-insights-go/internal/aggregator"
	"ran-insights-go/internal/kpi"
	"ran-insights-go/internal/logger"
	"ran-insights-go/internal/types"
)

// Build evaluates every applicable target for each period of one cluster.
// Only technologies with at least one cell in a period bucket are
// evaluated, so a 4G-only cluster never produces spurious 2G zero-results.
// Site and cell counts are distinct across all periods.
func Build(
	cluster string,
	byPeriod map[string][]*types.MeasurementRecord,
	periods []types.Period,
	targets []types.KPITarget,
	coverage *types.CoverageSummary,
	now time.Time,
) types.ClusterReport {
	log := logger.New().WithField("component", "report").WithField("cluster", cluster)

	sites := make(map[string]struct{})
	cells := make(map[string]struct{})
	var results []types.KPIResult
	var reportPeriods []types.Period

	for _, period := range periods {
		recs := byPeriod[period.Label]
		if len(recs) == 0 {
			continue
		}

		// Narrow the period range to the data actually present.
		p := period
		p.Start = recs[0].BeginTime
		p.End = recs[0].EndTime
		for _, rec := range recs {
			if rec.BeginTime.Before(p.Start) {
				p.Start = rec.BeginTime
			}
			if rec.EndTime.After(p.End) {
				p.End = rec.EndTime
			}
			sites[rec.SiteName] = struct{}{}
			cells[rec.CellName] = struct{}{}
		}
		reportPeriods = append(reportPeriods, p)

		gsm, lte, nr := aggregator.PartitionByTechnology(recs)
		for _, target := range targets {
			var group []*types.MeasurementRecord
			switch target.Technology {
			case kpi.Tech2G:
				group = gsm
			case kpi.Tech4G:
				group = lte
			case kpi.Tech5G:
				group = nr
			}
			if len(group) == 0 {
				continue
			}
			results = append(results, kpi.Evaluate(group, target, cluster, period.Label)...)
		}
	}

	log.WithField("periods", len(reportPeriods)).
		WithField("results", len(results)).
		Info("cluster report built")

	return types.ClusterReport{
		ClusterName: cluster,
		Periods:     reportPeriods,
		SiteCount:   len(sites),
		CellCount:   len(cells),
		KPIResults:  results,
		LastUpdate:  now,
		Coverage:    coverage,
		Actions:     actionable.Generate(results),
	}
}

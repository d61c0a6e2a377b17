// Package aggregator groups parsed records by cluster and reporting period.
// Two period models are supported: calendar months, and fixed-length
// rolling windows anchored at the newest record so reports always cover
// the most recent data regardless of calendar boundaries.
package aggregator

import (
	"fmt"
	"sort"
	"time"

	"ran-insights-go/internal/types"
)

// Grouped is the aggregation output: records keyed by cluster and period
// label, plus the ordered period list (oldest first).
type Grouped struct {
	Periods   []types.Period
	ByCluster map[string]map[string][]*types.MeasurementRecord
}

// Clusters returns the cluster names present, sorted for deterministic
// iteration.
func (g *Grouped) Clusters() []string {
	out := make([]string, 0, len(g.ByCluster))
	for c := range g.ByCluster {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// GroupCalendar groups by cluster and calendar month of begin_time.
func GroupCalendar(records []*types.MeasurementRecord) *Grouped {
	g := &Grouped{ByCluster: make(map[string]map[string][]*types.MeasurementRecord)}
	if len(records) == 0 {
		return g
	}

	seen := make(map[string]types.Period)
	for _, rec := range records {
		start := time.Date(rec.BeginTime.Year(), rec.BeginTime.Month(), 1, 0, 0, 0, 0, rec.BeginTime.Location())
		p := types.Period{
			Label: start.Format("Jan-06"),
			Start: start,
			End:   start.AddDate(0, 1, 0).Add(-time.Second),
		}
		seen[p.Label] = p
		g.add(rec.Cluster, p.Label, rec)
	}

	for _, p := range seen {
		g.Periods = append(g.Periods, p)
	}
	sort.Slice(g.Periods, func(i, j int) bool { return g.Periods[i].Start.Before(g.Periods[j].Start) })
	return g
}

// GroupRolling groups by cluster and fixed-length rolling windows anchored
// at the newest begin_time. "Period 1" is the oldest window; records older
// than all windows are excluded.
func GroupRolling(records []*types.MeasurementRecord, windowDays, windowCount int) *Grouped {
	g := &Grouped{ByCluster: make(map[string]map[string][]*types.MeasurementRecord)}
	if len(records) == 0 {
		return g
	}

	anchor := records[0].BeginTime
	for _, rec := range records {
		if rec.BeginTime.After(anchor) {
			anchor = rec.BeginTime
		}
	}

	window := time.Duration(windowDays) * 24 * time.Hour
	for i := 1; i <= windowCount; i++ {
		end := anchor.Add(-time.Duration(windowCount-i) * window)
		g.Periods = append(g.Periods, types.Period{
			Label: fmt.Sprintf("Period %d", i),
			Start: end.Add(-window),
			End:   end,
		})
	}

	for _, rec := range records {
		for _, p := range g.Periods {
			// half-open window (start, end]
			if rec.BeginTime.After(p.Start) && !rec.BeginTime.After(p.End) {
				g.add(rec.Cluster, p.Label, rec)
				break
			}
		}
	}
	return g
}

func (g *Grouped) add(cluster, label string, rec *types.MeasurementRecord) {
	byPeriod, ok := g.ByCluster[cluster]
	if !ok {
		byPeriod = make(map[string][]*types.MeasurementRecord)
		g.ByCluster[cluster] = byPeriod
	}
	byPeriod[label] = append(byPeriod[label], rec)
}

// PartitionByTechnology splits one period bucket into the per-technology
// groups the rule evaluator consumes.
func PartitionByTechnology(records []*types.MeasurementRecord) (gsm, lte, nr []*types.MeasurementRecord) {
	for _, rec := range records {
		switch {
		case rec.Technology == types.TechGSM:
			gsm = append(gsm, rec)
		case rec.Technology.IsLTE():
			lte = append(lte, rec)
		case rec.Technology == types.TechNR:
			nr = append(nr, rec)
		}
	}
	return gsm, lte, nr
}

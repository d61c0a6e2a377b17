package report

import (
	"testing"
	"time"

	"ran-insights-go/internal/kpi"
	"ran-insights-go/internal/types"
)

func lteCell(site, cell string, begin time.Time) *types.MeasurementRecord {
	return &types.MeasurementRecord{
		Technology: types.TechLTEFDD,
		BeginTime:  begin,
		EndTime:    begin.Add(time.Hour),
		SiteName:   site,
		CellName:   cell,
		RACHNum:    90,
		RACHDen:    100,
	}
}

func TestBuildCountsAndTechGating(t *testing.T) {
	begin := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	periods := []types.Period{
		{Label: "Period 1", Start: begin.AddDate(0, 0, -30), End: begin},
		{Label: "Period 2", Start: begin, End: begin.AddDate(0, 0, 30)},
	}
	byPeriod := map[string][]*types.MeasurementRecord{
		"Period 2": {
			lteCell("SITE_A", "CELL_1", begin.AddDate(0, 0, 5)),
			lteCell("SITE_A", "CELL_2", begin.AddDate(0, 0, 6)),
			lteCell("SITE_B", "CELL_3", begin.AddDate(0, 0, 7)),
			// Same cell twice across intervals; counts are distinct.
			lteCell("SITE_B", "CELL_3", begin.AddDate(0, 0, 8)),
		},
	}
	now := time.Now()

	rep := Build("ClusterX", byPeriod, periods, kpi.Targets(), nil, now)
	if rep.ClusterName != "ClusterX" {
		t.Fatalf("cluster = %q", rep.ClusterName)
	}
	if rep.SiteCount != 2 || rep.CellCount != 3 {
		t.Fatalf("counts = %d sites / %d cells, want 2/3", rep.SiteCount, rep.CellCount)
	}
	if len(rep.Periods) != 1 || rep.Periods[0].Label != "Period 2" {
		t.Fatalf("empty periods must be dropped: %+v", rep.Periods)
	}
	if !rep.LastUpdate.Equal(now) {
		t.Fatalf("last update = %v", rep.LastUpdate)
	}
	if len(rep.Actions) == 0 {
		t.Fatal("report must carry at least one action card")
	}

	// 4G-only input must never produce 2G or 5G results.
	for _, r := range rep.KPIResults {
		if r.Target.Technology != kpi.Tech4G {
			t.Fatalf("unexpected %s result for 4G-only cluster: %q", r.Target.Technology, r.KPIName)
		}
		if r.Period != "Period 2" {
			t.Fatalf("result in empty period: %+v", r)
		}
	}
	if len(rep.KPIResults) == 0 {
		t.Fatal("expected 4G results")
	}
}

func TestBuildNarrowsPeriodToData(t *testing.T) {
	begin := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	periods := []types.Period{{Label: "Period 1", Start: begin.AddDate(0, 0, -30), End: begin.AddDate(0, 0, 30)}}
	first := lteCell("S", "C1", begin.AddDate(0, 0, 2))
	last := lteCell("S", "C2", begin.AddDate(0, 0, 9))
	byPeriod := map[string][]*types.MeasurementRecord{"Period 1": {last, first}}

	rep := Build("C", byPeriod, periods, kpi.Targets(), nil, time.Now())
	p := rep.Periods[0]
	if !p.Start.Equal(first.BeginTime) || !p.End.Equal(last.EndTime) {
		t.Fatalf("period not narrowed to data: %v .. %v", p.Start, p.End)
	}
}

func TestBuildCarriesCoverage(t *testing.T) {
	begin := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	periods := []types.Period{{Label: "Period 1", Start: begin.AddDate(0, 0, -1), End: begin.AddDate(0, 0, 1)}}
	byPeriod := map[string][]*types.MeasurementRecord{"Period 1": {lteCell("S", "C", begin)}}
	cov := &types.CoverageSummary{CellCount: 4, AvgRSRP: -99}

	rep := Build("C", byPeriod, periods, kpi.Targets(), cov, time.Now())
	if rep.Coverage == nil || rep.Coverage.CellCount != 4 {
		t.Fatalf("coverage = %+v", rep.Coverage)
	}
}

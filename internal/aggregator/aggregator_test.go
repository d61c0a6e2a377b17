package aggregator

import (
	"testing"
	"time"

	"ran-insights-go/internal/types"
)

func rec(cluster string, begin time.Time, tech types.Technology) *types.MeasurementRecord {
	return &types.MeasurementRecord{
		Technology: tech,
		BeginTime:  begin,
		EndTime:    begin.Add(time.Hour),
		Cluster:    cluster,
	}
}

func TestGroupCalendar(t *testing.T) {
	jan := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
	records := []*types.MeasurementRecord{
		rec("ClusterX", feb, types.TechLTEFDD),
		rec("ClusterX", jan, types.TechLTEFDD),
		rec("ClusterY", jan, types.TechGSM),
	}

	g := GroupCalendar(records)
	if len(g.Periods) != 2 {
		t.Fatalf("periods = %v, want 2", g.Periods)
	}
	if g.Periods[0].Label != "Jan-25" || g.Periods[1].Label != "Feb-25" {
		t.Fatalf("period order = %q, %q", g.Periods[0].Label, g.Periods[1].Label)
	}
	if got := len(g.ByCluster["ClusterX"]["Jan-25"]); got != 1 {
		t.Fatalf("ClusterX Jan bucket = %d, want 1", got)
	}
	if got := len(g.ByCluster["ClusterX"]["Feb-25"]); got != 1 {
		t.Fatalf("ClusterX Feb bucket = %d, want 1", got)
	}
	if got := len(g.ByCluster["ClusterY"]["Jan-25"]); got != 1 {
		t.Fatalf("ClusterY Jan bucket = %d, want 1", got)
	}
	if clusters := g.Clusters(); len(clusters) != 2 || clusters[0] != "ClusterX" {
		t.Fatalf("Clusters() = %v", clusters)
	}
}

func TestGroupRollingWindows(t *testing.T) {
	anchor := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	records := []*types.MeasurementRecord{
		rec("ClusterX", anchor, types.TechLTEFDD),                     // newest, period 3
		rec("ClusterX", anchor.AddDate(0, 0, -35), types.TechLTEFDD),  // period 2
		rec("ClusterX", anchor.AddDate(0, 0, -65), types.TechLTEFDD),  // period 1
		rec("ClusterX", anchor.AddDate(0, 0, -200), types.TechLTEFDD), // older than all windows
		rec("ClusterY", anchor.Add(-time.Minute), types.TechGSM),      // period 3
	}

	g := GroupRolling(records, 30, 3)
	if len(g.Periods) != 3 {
		t.Fatalf("periods = %d, want 3", len(g.Periods))
	}
	if g.Periods[0].Label != "Period 1" || g.Periods[2].Label != "Period 3" {
		t.Fatalf("labels = %q..%q", g.Periods[0].Label, g.Periods[2].Label)
	}
	if !g.Periods[2].End.Equal(anchor) {
		t.Fatalf("newest window must end at the anchor, got %v", g.Periods[2].End)
	}
	if !g.Periods[0].Start.Equal(anchor.AddDate(0, 0, -90)) {
		t.Fatalf("oldest window start = %v", g.Periods[0].Start)
	}

	byX := g.ByCluster["ClusterX"]
	if len(byX["Period 3"]) != 1 || len(byX["Period 2"]) != 1 || len(byX["Period 1"]) != 1 {
		t.Fatalf("ClusterX buckets = %d/%d/%d, want 1 each",
			len(byX["Period 1"]), len(byX["Period 2"]), len(byX["Period 3"]))
	}
	total := 0
	for _, recs := range byX {
		total += len(recs)
	}
	if total != 3 {
		t.Fatalf("record older than all windows must be excluded, got %d grouped", total)
	}
	if len(g.ByCluster["ClusterY"]["Period 3"]) != 1 {
		t.Fatalf("ClusterY newest bucket = %d, want 1", len(g.ByCluster["ClusterY"]["Period 3"]))
	}
}

func TestGroupRollingAnchorBoundary(t *testing.T) {
	anchor := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	records := []*types.MeasurementRecord{rec("C", anchor, types.TechLTEFDD)}
	g := GroupRolling(records, 30, 3)
	// Window is half-open (start, end]; the anchor itself belongs to the
	// newest window.
	if len(g.ByCluster["C"]["Period 3"]) != 1 {
		t.Fatal("anchor record must land in the newest window")
	}
}

func TestPartitionByTechnology(t *testing.T) {
	now := time.Now()
	records := []*types.MeasurementRecord{
		rec("C", now, types.TechGSM),
		rec("C", now, types.TechLTEFDD),
		rec("C", now, types.TechLTETDD),
		rec("C", now, types.TechNR),
	}
	gsm, lte, nr := PartitionByTechnology(records)
	if len(gsm) != 1 || len(lte) != 2 || len(nr) != 1 {
		t.Fatalf("partition = %d/%d/%d, want 1/2/1", len(gsm), len(lte), len(nr))
	}
}

func TestGroupEmptyInput(t *testing.T) {
	if g := GroupRolling(nil, 30, 3); len(g.Periods) != 0 || len(g.ByCluster) != 0 {
		t.Fatalf("rolling on empty input = %+v", g)
	}
	if g := GroupCalendar(nil); len(g.Periods) != 0 || len(g.ByCluster) != 0 {
		t.Fatalf("calendar on empty input = %+v", g)
	}
}

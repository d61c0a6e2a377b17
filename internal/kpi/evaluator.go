package kpi

import (
	"sort"

	"ran-insights-go/internal/types"
)

// Evaluate applies one target to a group of cells and returns the
// resulting KPIResult set: one result for plain rules, one per non-empty
// (tx config, band) bucket for banded spectral efficiency.
//
// Cells whose relevant denominator is zero carry no traffic for the KPI
// and are excluded from both total and meeting counts; they never count
// as failing. A group with zero applicable cells yields a defined 0%
// result, not an error.
func Evaluate(cells []*types.MeasurementRecord, target types.KPITarget, cluster, period string) []types.KPIResult {
	if target.Banded {
		return evaluateBanded(cells, target, cluster, period)
	}
	res := evaluateCells(cells, target, target.Threshold, cluster, period)
	return []types.KPIResult{res}
}

func evaluateCells(cells []*types.MeasurementRecord, target types.KPITarget, threshold float64, cluster, period string) types.KPIResult {
	total := 0
	meeting := 0
	var failing []types.FailingCell

	for _, cell := range cells {
		value, ok := target.Metric.Value(cell)
		if !ok {
			continue // no traffic for this KPI in the window
		}
		total++
		if target.Operator.Compare(value, threshold) {
			meeting++
			continue
		}
		band := cell.Band
		if band == "" {
			band = "N/A"
		}
		failing = append(failing, types.FailingCell{
			SiteName: cell.SiteName,
			Band:     band,
			CellName: cell.CellName,
			Value:    value,
		})
	}

	achievement := 0.0
	if total > 0 {
		achievement = float64(meeting) / float64(total) * 100
	}

	return types.KPIResult{
		KPIName:        target.Name,
		Target:         target,
		Period:         period,
		Cluster:        cluster,
		TotalCells:     total,
		CellsMeeting:   meeting,
		AchievementPct: achievement,
		Passed:         target.GroupPass(achievement),
		FailingCells:   failing,
	}
}

// evaluateBanded partitions cells into known (tx, band) buckets and checks
// each bucket against its own threshold. A cell is never compared against
// another bucket's threshold; cells without a TX mapping or outside any
// known bucket are excluded.
func evaluateBanded(cells []*types.MeasurementRecord, target types.KPITarget, cluster, period string) []types.KPIResult {
	buckets := make(map[SEBucket][]*types.MeasurementRecord)
	for _, cell := range cells {
		if cell.TxConfig == "" || cell.Band == "" {
			continue
		}
		b := SEBucket{Tx: cell.TxConfig, Band: cell.Band}
		if _, known := seThresholds[b]; !known {
			continue
		}
		buckets[b] = append(buckets[b], cell)
	}

	keys := make([]SEBucket, 0, len(buckets))
	for b := range buckets {
		keys = append(keys, b)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Band != keys[j].Band {
			return keys[i].Band < keys[j].Band
		}
		return keys[i].Tx < keys[j].Tx
	})

	var results []types.KPIResult
	for _, b := range keys {
		threshold := seThresholds[b]
		bucketTarget := target
		bucketTarget.Threshold = threshold
		res := evaluateCells(buckets[b], bucketTarget, threshold, cluster, period)
		res.Band = b.Band
		res.TxConfig = b.Tx
		results = append(results, res)
	}
	return results
}

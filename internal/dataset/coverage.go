package dataset

import (
	"ran-insights-go/internal/logger"
	"ran-insights-go/internal/mapping"
	"ran-insights-go/internal/types"
)

const minCoverageColumns = 6

const (
	covColCellName = 2
	covColRSRP     = 4
	covColRSRQ     = 5
)

// ParseCoverage parses an optional coverage-grid export (per-cell RSRP/RSRQ
// samples). Rows are attributed to clusters through the mapping table's
// LTE cell column; unmapped cells and "--" summary rows are skipped.
func ParseCoverage(path string, table *mapping.Table) ([]types.CoverageCell, *types.ParseStats, error) {
	log := logger.New().WithField("component", "dataset.coverage").WithField("path", path)
	stats := types.NewParseStats()
	var cells []types.CoverageCell

	err := forEachRow(path, func() { stats.Skip(types.SkipBadRow) }, func(row []string) {
		if len(row) < minCoverageColumns {
			stats.Skip(types.SkipTooFewColumns)
			return
		}
		cellName := cleanValue(row[covColCellName])
		if cellName == "" || cellName == "--" {
			stats.Skip(types.SkipBadRow)
			return
		}
		cluster, towerID, ok := table.ResolveCell(cellName)
		if !ok {
			stats.Skip(types.SkipNoMapping)
			return
		}
		cells = append(cells, types.CoverageCell{
			Cluster:  cluster,
			TowerID:  towerID,
			CellName: cellName,
			RSRP:     parseFloat(row[covColRSRP]),
			RSRQ:     parseFloat(row[covColRSRQ]),
		})
		stats.Parsed++
	})
	if err != nil {
		return nil, nil, err
	}

	log.WithField("parsed", stats.Parsed).
		WithField("skipped", stats.TotalSkipped()).
		Info("coverage file parsed")
	return cells, stats, nil
}

// SummarizeCoverage reduces one cluster's coverage cells to the figures the
// report shows.
func SummarizeCoverage(cells []types.CoverageCell) *types.CoverageSummary {
	if len(cells) == 0 {
		return nil
	}
	s := &types.CoverageSummary{CellCount: len(cells), WorstRSRP: cells[0].RSRP, WorstCell: cells[0].CellName}
	var sumRSRP, sumRSRQ float64
	for _, c := range cells {
		sumRSRP += c.RSRP
		sumRSRQ += c.RSRQ
		if c.RSRP < s.WorstRSRP {
			s.WorstRSRP = c.RSRP
			s.WorstCell = c.CellName
		}
		if c.RSRP < -110 {
			s.BelowMinus110++
		}
	}
	s.AvgRSRP = sumRSRP / float64(len(cells))
	s.AvgRSRQ = sumRSRQ / float64(len(cells))
	return s
}

package dataset

import (
	"ran-insights-go/internal/logger"
	"ran-insights-go/internal/mapping"
	"ran-insights-go/internal/types"
)

const minGSMColumns = 18

const (
	gsmColBeginTime = 0
	gsmColEndTime   = 1
	gsmColSiteName  = 8
	gsmColCellID    = 9
	gsmColCellName  = 10
	gsmColBand      = 11
	gsmColCallNum   = 12
	gsmColCallDen   = 13
	gsmColSDCCHNum  = 14
	gsmColSDCCHDen  = 15
	gsmColDropNum   = 16
	gsmColDropDen   = 17
)

// ParseGSM parses one GSM export. Clusters are resolved by exact
// (case-insensitive) site-name lookup; unmapped sites are skipped.
func ParseGSM(path string, table *mapping.Table) ([]*types.MeasurementRecord, *types.ParseStats, error) {
	log := logger.New().WithField("component", "dataset.gsm").WithField("path", path)
	stats := types.NewParseStats()
	var records []*types.MeasurementRecord

	err := forEachRow(path, func() { stats.Skip(types.SkipBadRow) }, func(row []string) {
		if len(row) < minGSMColumns {
			stats.Skip(types.SkipTooFewColumns)
			return
		}
		rec, reason := parseGSMRow(row, table)
		if rec == nil {
			stats.Skip(reason)
			return
		}
		records = append(records, rec)
		stats.Parsed++
	})
	if err != nil {
		return nil, nil, err
	}

	log.WithField("parsed", stats.Parsed).
		WithField("skipped", stats.TotalSkipped()).
		Info("GSM file parsed")
	return records, stats, nil
}

func parseGSMRow(row []string, table *mapping.Table) (*types.MeasurementRecord, types.SkipReason) {
	siteName := cleanValue(row[gsmColSiteName])
	cluster, ok := table.ResolveSite(siteName)
	if !ok {
		return nil, types.SkipNoMapping
	}

	begin, ok := parseTime(row[gsmColBeginTime])
	if !ok {
		return nil, types.SkipBadTimestamp
	}
	end, ok := parseTime(row[gsmColEndTime])
	if !ok {
		return nil, types.SkipBadTimestamp
	}
	if end.Before(begin) {
		return nil, types.SkipBadRow
	}

	return &types.MeasurementRecord{
		Technology: types.TechGSM,
		BeginTime:  begin,
		EndTime:    end,
		Cluster:    cluster,
		SiteName:   siteName,
		CellName:   cleanValue(row[gsmColCellName]),
		CellID:     cleanValue(row[gsmColCellID]),
		Band:       cleanValue(row[gsmColBand]),

		CallSetupNum: parseFloat(row[gsmColCallNum]),
		CallSetupDen: parseFloat(row[gsmColCallDen]),
		SDCCHNum:     parseFloat(row[gsmColSDCCHNum]),
		SDCCHDen:     parseFloat(row[gsmColSDCCHDen]),
		DropRateNum:  parseFloat(row[gsmColDropNum]),
		DropRateDen:  parseFloat(row[gsmColDropDen]),
	}, ""
}

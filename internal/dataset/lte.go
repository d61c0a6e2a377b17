package dataset

import (
	"ran-insights-go/internal/logger"
	"ran-insights-go/internal/mapping"
	"ran-insights-go/internal/types"
)

// LTE export layout (FDD and TDD share it). A row needs at least
// minLTEColumns fields to be considered.
const minLTEColumns = 45

const (
	lteColBeginTime   = 0
	lteColEndTime     = 1
	lteColSubnetName  = 3
	lteColElementName = 4
	lteColSiteName    = 6
	lteColCellID      = 7
	lteColCellName    = 8
	lteColFirstMetric = 11
)

// ParseLTE parses one FDD or TDD export. Rows whose element name carries no
// mapped #TOWERID# token are skipped: attributing unmapped cells to a wrong
// cluster would corrupt the aggregates.
func ParseLTE(path string, table *mapping.Table, tech types.Technology) ([]*types.MeasurementRecord, *types.ParseStats, error) {
	log := logger.New().WithField("component", "dataset.lte").WithField("path", path)
	stats := types.NewParseStats()
	var records []*types.MeasurementRecord

	err := forEachRow(path, func() { stats.Skip(types.SkipBadRow) }, func(row []string) {
		if len(row) < minLTEColumns {
			stats.Skip(types.SkipTooFewColumns)
			return
		}
		rec, reason := parseLTERow(row, table, tech)
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
		Info("LTE file parsed")
	return records, stats, nil
}

func parseLTERow(row []string, table *mapping.Table, tech types.Technology) (*types.MeasurementRecord, types.SkipReason) {
	elementName := cleanValue(row[lteColElementName])
	cluster, ok := table.ResolveTower(elementName)
	if !ok {
		return nil, types.SkipNoMapping
	}

	begin, ok := parseTime(row[lteColBeginTime])
	if !ok {
		return nil, types.SkipBadTimestamp
	}
	end, ok := parseTime(row[lteColEndTime])
	if !ok {
		return nil, types.SkipBadTimestamp
	}
	if end.Before(begin) {
		return nil, types.SkipBadRow
	}

	// Site name falls back to the subnet name, then the tower id itself.
	siteName := cleanValue(row[lteColSiteName])
	if siteName == "" {
		siteName = cleanValue(row[lteColSubnetName])
	}
	if siteName == "" {
		siteName = mapping.ExtractTowerID(elementName)
	}

	cellID := cleanValue(row[lteColCellID])
	cellName := cleanValue(row[lteColCellName])
	sector, band := sectorBand(cellID)

	m := func(offset int) float64 { return parseFloat(row[lteColFirstMetric+offset]) }

	return &types.MeasurementRecord{
		Technology: tech,
		BeginTime:  begin,
		EndTime:    end,
		Cluster:    cluster,
		SiteName:   siteName,
		CellName:   cellName,
		CellID:     cellID,
		Band:       band,
		Sector:     sector,
		TxConfig:   table.TxConfig(cellName),

		RRCSetupNum:   m(0),
		RRCSetupDen:   m(1),
		ERABSetupNum:  m(2),
		ERABSetupDen:  m(3),
		S1SetupNum:    m(4),
		S1SetupDen:    m(5),
		RACHNum:       m(6),
		RACHDen:       m(7),
		HandoverNum:   m(8),
		HandoverDen:   m(9),
		ERABDropNum:   m(10),
		ERABDropDen:   m(11),
		DLThpNum:      m(12),
		DLThpDen:      m(13),
		ULThpNum:      m(14),
		ULThpDen:      m(15),
		ULLossNum:     m(16),
		DLLossNum:     m(17),
		CQINum:        m(18),
		CQIDen:        m(19),
		Rank2Num:      m(20),
		Rank2Den:      m(21),
		RSSINum:       m(22),
		RSSIDen:       m(23),
		LatencyNum:    m(24),
		LatencyDen:    m(25),
		SpectralNum:   m(26),
		SpectralDen:   m(27),
		VoLTESetupNum: m(28),
		VoLTESetupDen: m(29),
		VoLTEDropNum:  m(30),
		VoLTEDropDen:  m(31),
		SRVCCNum:      m(32),
		SRVCCDen:      m(33),
	}, ""
}

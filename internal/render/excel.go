// Package render writes ClusterReport objects to formatted workbooks. All
// presentation concerns live here; the evaluation core stays
// format-agnostic.
package render

import (
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/xuri/excelize/v2"

	"ran-insights-go/internal/logger"
	"ran-insights-go/internal/types"
)

const (
	summarySheet      = "KPI Summary"
	contributorsSheet = "Contributors"
	coverageSheet     = "Coverage"
	actionsSheet      = "Actions"
)

// Write renders one cluster report. Saving is retried with exponential
// backoff: the target file is commonly locked by a spreadsheet application
// between runs.
func Write(report types.ClusterReport, path string) error {
	log := logger.New().WithField("component", "render").
		WithField("cluster", report.ClusterName).WithField("path", path)

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", summarySheet)

	if err := writeSummary(f, report); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	if err := writeContributors(f, report); err != nil {
		return fmt.Errorf("write contributors: %w", err)
	}
	if report.Coverage != nil {
		if err := writeCoverage(f, report); err != nil {
			return fmt.Errorf("write coverage: %w", err)
		}
	}
	if err := writeActions(f, report); err != nil {
		return fmt.Errorf("write actions: %w", err)
	}

	op := func() error { return f.SaveAs(path) }
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 15 * time.Second
	if err := backoff.Retry(op, b); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	log.Info("report written")
	return nil
}

// ruleKey identifies one rendered row: rule names repeat across paired
// good/bad-tail rules and SE buckets.
type ruleKey struct {
	name      string
	tech      string
	operator  types.Operator
	threshold float64
	band      string
	tx        string
}

func writeSummary(f *excelize.File, report types.ClusterReport) error {
	passStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C6EFCE"}, Pattern: 1},
		Font: &excelize.Font{Color: "006100"},
	})
	failStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
		Font: &excelize.Font{Color: "9C0006"},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"47402D"}, Pattern: 1},
		Font: &excelize.Font{Color: "FFFEFB", Bold: true},
	})

	setCell := func(col, row int, v interface{}) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		f.SetCellValue(summarySheet, cell, v)
	}

	setCell(1, 1, "Cluster")
	setCell(2, 1, report.ClusterName)
	setCell(1, 2, "Sites / Cells")
	setCell(2, 2, fmt.Sprintf("%d / %d", report.SiteCount, report.CellCount))
	setCell(1, 3, "Last update")
	setCell(2, 3, report.LastUpdate.Format("2006-01-02 15:04:05"))

	headerRow := 5
	setCell(1, headerRow, "KPI")
	setCell(2, headerRow, "Domain")
	setCell(3, headerRow, "Technology")
	setCell(4, headerRow, "Per-cell rule")
	setCell(5, headerRow, "Target %")
	col := 6
	periodCols := make(map[string]int, len(report.Periods))
	for _, p := range report.Periods {
		setCell(col, headerRow, fmt.Sprintf("%s (%s to %s)", p.Label, p.Start.Format("2 Jan"), p.End.Format("2 Jan")))
		periodCols[p.Label] = col
		col += 2
	}
	lastHeader, _ := excelize.CoordinatesToCellName(col-1, headerRow)
	firstHeader, _ := excelize.CoordinatesToCellName(1, headerRow)
	f.SetCellStyle(summarySheet, firstHeader, lastHeader, headerStyle)

	rowOf := make(map[ruleKey]int)
	nextRow := headerRow + 1
	for _, res := range report.KPIResults {
		key := ruleKey{
			name:      res.KPIName,
			tech:      res.Target.Technology,
			operator:  res.Target.Operator,
			threshold: res.Target.Threshold,
			band:      res.Band,
			tx:        res.TxConfig,
		}
		row, ok := rowOf[key]
		if !ok {
			row = nextRow
			nextRow++
			rowOf[key] = row
			name := res.KPIName
			if res.Band != "" {
				name = fmt.Sprintf("%s (%s @ %s MHz)", res.KPIName, res.TxConfig, res.Band)
			}
			setCell(1, row, name)
			setCell(2, row, string(res.Target.Domain))
			setCell(3, row, res.Target.Technology)
			setCell(4, row, fmt.Sprintf("%s %v %s", res.Target.Operator, res.Target.Threshold, res.Target.Unit))
			setCell(5, row, res.Target.TargetPct)
		}

		pcol, ok := periodCols[res.Period]
		if !ok {
			continue
		}
		setCell(pcol, row, fmt.Sprintf("%.2f%%", res.AchievementPct))
		verdict := "FAIL"
		style := failStyle
		if res.Passed {
			verdict = "PASS"
			style = passStyle
		}
		setCell(pcol+1, row, verdict)
		cell, _ := excelize.CoordinatesToCellName(pcol+1, row)
		f.SetCellStyle(summarySheet, cell, cell, style)
	}
	return nil
}

func writeContributors(f *excelize.File, report types.ClusterReport) error {
	if _, err := f.NewSheet(contributorsSheet); err != nil {
		return err
	}
	headers := []string{"Period", "KPI", "Site", "Band", "Cell", "Value"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(contributorsSheet, cell, h)
	}
	row := 2
	for _, res := range report.KPIResults {
		for _, fc := range res.FailingCells {
			values := []interface{}{res.Period, res.KPIName, fc.SiteName, fc.Band, fc.CellName, fc.Value}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				f.SetCellValue(contributorsSheet, cell, v)
			}
			row++
		}
	}
	return nil
}

func writeCoverage(f *excelize.File, report types.ClusterReport) error {
	if _, err := f.NewSheet(coverageSheet); err != nil {
		return err
	}
	cov := report.Coverage
	rows := [][2]interface{}{
		{"Cells sampled", cov.CellCount},
		{"Average RSRP (dBm)", cov.AvgRSRP},
		{"Average RSRQ (dB)", cov.AvgRSRQ},
		{"Worst cell", cov.WorstCell},
		{"Worst RSRP (dBm)", cov.WorstRSRP},
		{"Cells below -110 dBm", cov.BelowMinus110},
	}
	for i, r := range rows {
		keyCell, _ := excelize.CoordinatesToCellName(1, i+1)
		valCell, _ := excelize.CoordinatesToCellName(2, i+1)
		f.SetCellValue(coverageSheet, keyCell, r[0])
		f.SetCellValue(coverageSheet, valCell, r[1])
	}
	return nil
}

func writeActions(f *excelize.File, report types.ClusterReport) error {
	if _, err := f.NewSheet(actionsSheet); err != nil {
		return err
	}
	headers := []string{"Insight", "Action", "Impact"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(actionsSheet, cell, h)
	}
	for i, card := range report.Actions {
		values := []string{card.Insight, card.Action, card.Impact}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(actionsSheet, cell, v)
		}
	}
	return nil
}

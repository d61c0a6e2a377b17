// internal/types/models.go
package types

import "time"

// --------------------------------------------
// Technology of a measured cell
// --------------------------------------------
type Technology string

const (
	TechGSM    Technology = "2G"
	TechLTEFDD Technology = "4G_FDD"
	TechLTETDD Technology = "4G_TDD"
	TechNR     Technology = "5G"
)

// IsLTE reports whether the technology is 4G (FDD or TDD).
func (t Technology) IsLTE() bool {
	return t == TechLTEFDD || t == TechLTETDD
}

// --------------------------------------------
// KPI domain categories
// --------------------------------------------
type KPIDomain string

const (
	DomainAccessibility KPIDomain = "Accessibility"
	DomainRetainability KPIDomain = "Retainability"
	DomainIntegrity     KPIDomain = "Integrity"
	DomainMobility      KPIDomain = "Mobility"
	DomainVoLTE         KPIDomain = "VoLTE"
)

// --------------------------------------------
// Per-cell comparison operator of a KPI rule
// --------------------------------------------
type Operator string

const (
	OpGreaterEqual Operator = ">="
	OpGreater      Operator = ">"
	OpLess         Operator = "<"
	OpLessEqual    Operator = "<="
)

// Compare applies the operator with value on the left and threshold on the right.
func (op Operator) Compare(value, threshold float64) bool {
	switch op {
	case OpGreaterEqual:
		return value >= threshold
	case OpGreater:
		return value > threshold
	case OpLess:
		return value < threshold
	case OpLessEqual:
		return value <= threshold
	}
	return false
}

// --------------------------------------------
// Group-level pass direction.
// AtLeast: the achievement percentage must reach the target.
// AtMost: the target caps the allowed fraction of cells in a bad band,
// so the group passes while achievement stays below it.
// --------------------------------------------
type GroupRule string

const (
	RuleAtLeast GroupRule = "at_least"
	RuleAtMost  GroupRule = "at_most"
)

// --------------------------------------------
// MeasurementRecord: one cell's counters for one collection interval.
// A record exists only if its cluster was resolved; unmapped rows are
// skipped before construction. Immutable after parsing.
// --------------------------------------------
type MeasurementRecord struct {
	Technology Technology
	BeginTime  time.Time
	EndTime    time.Time
	Cluster    string
	SiteName   string
	CellName   string
	CellID     string
	Band       string // "" when unknown
	Sector     string // "" when unknown
	TxConfig   string // 2T2R/4T4R/8T8R/32T32R/MM, "" when unmapped

	// 4G counters. Session setup is the product of three ratios, so it
	// carries three pairs (RRC setup, E-RAB setup, S1 signaling).
	RRCSetupNum   float64
	RRCSetupDen   float64
	ERABSetupNum  float64
	ERABSetupDen  float64
	S1SetupNum    float64
	S1SetupDen    float64
	RACHNum       float64
	RACHDen       float64
	HandoverNum   float64
	HandoverDen   float64
	ERABDropNum   float64
	ERABDropDen   float64
	DLThpNum      float64
	DLThpDen      float64
	ULThpNum      float64
	ULThpDen      float64
	ULLossNum     float64 // shares ULThpDen
	DLLossNum     float64 // shares DLThpDen
	CQINum        float64
	CQIDen        float64
	Rank2Num      float64
	Rank2Den      float64
	RSSINum       float64
	RSSIDen       float64
	LatencyNum    float64
	LatencyDen    float64
	SpectralNum   float64
	SpectralDen   float64
	VoLTESetupNum float64
	VoLTESetupDen float64
	VoLTEDropNum  float64
	VoLTEDropDen  float64
	SRVCCNum      float64
	SRVCCDen      float64

	// 2G counters.
	CallSetupNum float64
	CallSetupDen float64
	SDCCHNum     float64
	SDCCHDen     float64
	DropRateNum  float64
	DropRateDen  float64
}

// --------------------------------------------
// Reporting period
// --------------------------------------------
type Period struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// --------------------------------------------
// Skip accounting for the row parsers
// --------------------------------------------
type SkipReason string

const (
	SkipTooFewColumns SkipReason = "too_few_columns"
	SkipNoMapping     SkipReason = "no_mapping"
	SkipBadTimestamp  SkipReason = "bad_timestamp"
	SkipBadRow        SkipReason = "bad_row"
)

// ParseStats counts parsed rows and skipped rows per reason for one file.
type ParseStats struct {
	Parsed  int
	Skipped map[SkipReason]int
}

func NewParseStats() *ParseStats {
	return &ParseStats{Skipped: make(map[SkipReason]int)}
}

func (s *ParseStats) Skip(reason SkipReason) {
	s.Skipped[reason]++
}

// TotalSkipped sums skips across all reasons.
func (s *ParseStats) TotalSkipped() int {
	total := 0
	for _, n := range s.Skipped {
		total += n
	}
	return total
}

// --------------------------------------------
// Optional coverage-grid data
// --------------------------------------------
type CoverageCell struct {
	Cluster  string  `json:"cluster"`
	TowerID  string  `json:"tower_id"`
	CellName string  `json:"cell_name"`
	RSRP     float64 `json:"rsrp"`
	RSRQ     float64 `json:"rsrq"`
}

type CoverageSummary struct {
	CellCount     int     `json:"cell_count"`
	AvgRSRP       float64 `json:"avg_rsrp"`
	AvgRSRQ       float64 `json:"avg_rsrq"`
	WorstCell     string  `json:"worst_cell"`
	WorstRSRP     float64 `json:"worst_rsrp"`
	BelowMinus110 int     `json:"below_minus_110"`
}

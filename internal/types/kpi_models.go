// internal/types/kpi_models.go
package types

import "time"

// --------------------------------------------
// Metric: closed enumeration of KPI kinds.
// Each metric knows how to compute its per-cell scalar from a record;
// the rule evaluator never branches on KPI names.
// --------------------------------------------
type Metric string

const (
	MetricCallSetupSR    Metric = "call_setup_sr"
	MetricSDCCHSR        Metric = "sdcch_sr"
	MetricDropRate       Metric = "drop_rate"
	MetricSessionSetupSR Metric = "session_setup_sr"
	MetricRACHSR         Metric = "rach_sr"
	MetricHandoverSR     Metric = "handover_sr"
	MetricERABDropRate   Metric = "erab_drop_rate"
	MetricDLThroughput   Metric = "dl_throughput"
	MetricULThroughput   Metric = "ul_throughput"
	MetricULPacketLoss   Metric = "ul_packet_loss"
	MetricDLPacketLoss   Metric = "dl_packet_loss"
	MetricCQI            Metric = "cqi"
	MetricMIMORank2      Metric = "mimo_rank2"
	MetricULRSSI         Metric = "ul_rssi"
	MetricLatency        Metric = "latency"
	MetricSpectralEff    Metric = "spectral_efficiency"
	MetricVoLTECSSR      Metric = "volte_cssr"
	MetricVoLTEDrop      Metric = "volte_drop"
	MetricSRVCCSR        Metric = "srvcc_sr"
)

// Value computes the metric for one cell. ok is false when the relevant
// denominator is zero: the cell carries no traffic for this KPI and must be
// excluded from the evaluation, not counted as failing.
func (m Metric) Value(rec *MeasurementRecord) (value float64, ok bool) {
	switch m {
	case MetricCallSetupSR:
		return ratio(rec.CallSetupNum, rec.CallSetupDen, 100)
	case MetricSDCCHSR:
		return ratio(rec.SDCCHNum, rec.SDCCHDen, 100)
	case MetricDropRate:
		return ratio(rec.DropRateNum, rec.DropRateDen, 100)
	case MetricSessionSetupSR:
		if rec.RRCSetupDen == 0 || rec.ERABSetupDen == 0 || rec.S1SetupDen == 0 {
			return 0, false
		}
		rrc := rec.RRCSetupNum / rec.RRCSetupDen
		erab := rec.ERABSetupNum / rec.ERABSetupDen
		s1 := rec.S1SetupNum / rec.S1SetupDen
		return 100 * rrc * erab * s1, true
	case MetricRACHSR:
		return ratio(rec.RACHNum, rec.RACHDen, 100)
	case MetricHandoverSR:
		return ratio(rec.HandoverNum, rec.HandoverDen, 100)
	case MetricERABDropRate:
		return ratio(rec.ERABDropNum, rec.ERABDropDen, 100)
	case MetricDLThroughput:
		return ratio(rec.DLThpNum, rec.DLThpDen, 1)
	case MetricULThroughput:
		return ratio(rec.ULThpNum, rec.ULThpDen, 1)
	case MetricULPacketLoss:
		return ratio(rec.ULLossNum, rec.ULThpDen, 100)
	case MetricDLPacketLoss:
		return ratio(rec.DLLossNum, rec.DLThpDen, 100)
	case MetricCQI:
		return ratio(rec.CQINum, rec.CQIDen, 1)
	case MetricMIMORank2:
		return ratio(rec.Rank2Num, rec.Rank2Den, 100)
	case MetricULRSSI:
		return ratio(rec.RSSINum, rec.RSSIDen, 1)
	case MetricLatency:
		return ratio(rec.LatencyNum, rec.LatencyDen, 1)
	case MetricSpectralEff:
		return ratio(rec.SpectralNum, rec.SpectralDen, 1)
	case MetricVoLTECSSR:
		return ratio(rec.VoLTESetupNum, rec.VoLTESetupDen, 100)
	case MetricVoLTEDrop:
		return ratio(rec.VoLTEDropNum, rec.VoLTEDropDen, 100)
	case MetricSRVCCSR:
		return ratio(rec.SRVCCNum, rec.SRVCCDen, 100)
	}
	return 0, false
}

func ratio(num, den, scale float64) (float64, bool) {
	if den == 0 {
		return 0, false
	}
	return scale * num / den, true
}

// --------------------------------------------
// KPITarget: one evaluable rule. Names are NOT unique; the identity of a
// rule is (Name, Technology, Operator, Threshold). Banded metrics
// (spectral efficiency) take their per-cell threshold from a (tx, band)
// lookup instead of Threshold.
// --------------------------------------------
type KPITarget struct {
	Name       string    `json:"name"`
	Metric     Metric    `json:"metric"`
	Domain     KPIDomain `json:"domain"`
	Technology string    `json:"technology"` // "2G RAN" / "4G RAN" / "5G RAN"
	TargetPct  float64   `json:"target_percentage"`
	Operator   Operator  `json:"operator"`
	Threshold  float64   `json:"threshold_value"`
	Unit       string    `json:"unit"`
	GroupRule  GroupRule `json:"group_rule"`
	Banded     bool      `json:"banded,omitempty"`
}

// GroupPass applies the group-level direction rule to an achievement
// percentage.
func (t KPITarget) GroupPass(achievementPct float64) bool {
	if t.GroupRule == RuleAtMost {
		return achievementPct < t.TargetPct
	}
	return achievementPct >= t.TargetPct
}

// --------------------------------------------
// FailingCell: contributor entry for drill-down reporting.
// --------------------------------------------
type FailingCell struct {
	SiteName string  `json:"site_name"`
	Band     string  `json:"band"` // "N/A" when unknown
	CellName string  `json:"cell_name"`
	Value    float64 `json:"value"`
}

// --------------------------------------------
// KPIResult: evaluated outcome of one target over one (cluster, period)
// group. Never mutated after construction.
// --------------------------------------------
type KPIResult struct {
	KPIName        string        `json:"kpi_name"`
	Target         KPITarget     `json:"target"`
	Period         string        `json:"period"`
	Cluster        string        `json:"cluster"`
	TotalCells     int           `json:"total_cells"`
	CellsMeeting   int           `json:"cells_meeting_target"`
	AchievementPct float64       `json:"achievement_percentage"`
	Passed         bool          `json:"passed"`
	FailingCells   []FailingCell `json:"failing_cells,omitempty"`

	// Set only for banded spectral-efficiency results, which are emitted
	// once per non-empty (tx config, band) bucket.
	Band     string `json:"band,omitempty"`
	TxConfig string `json:"tx_config,omitempty"`
}

// --------------------------------------------
// ActionCard: recommendation derived from the worst KPI results.
// --------------------------------------------
type ActionCard struct {
	Insight string `json:"insight"`
	Action  string `json:"action"`
	Impact  string `json:"impact"`
}

// --------------------------------------------
// ClusterReport: top-level aggregate handed to the renderer.
// --------------------------------------------
type ClusterReport struct {
	ClusterName string           `json:"cluster_name"`
	Periods     []Period         `json:"periods"`
	SiteCount   int              `json:"site_count"`
	CellCount   int              `json:"cell_count"`
	KPIResults  []KPIResult      `json:"kpi_results"`
	LastUpdate  time.Time        `json:"last_update"`
	Coverage    *CoverageSummary `json:"coverage,omitempty"`
	Actions     []ActionCard     `json:"actions,omitempty"`
}

// Package kpi holds the canonical KPI rule table and the rule evaluator.
package kpi

import "ran-insights-go/internal/types"

// Technology labels used by the rule table.
const (
	Tech2G = "2G RAN"
	Tech4G = "4G RAN"
	Tech5G = "5G RAN"
)

// Targets returns the canonical rule set. Names are not unique: paired
// "good" and "bad-tail" rules share a name and differ in operator,
// threshold and group direction.
func Targets() []types.KPITarget {
	return []types.KPITarget{
		// 2G
		{Name: "Call Setup Success Rate", Metric: types.MetricCallSetupSR, Domain: types.DomainAccessibility,
			Technology: Tech2G, TargetPct: 95, Operator: types.OpGreaterEqual, Threshold: 98.5, Unit: "%", GroupRule: types.RuleAtLeast},
		{Name: "SDCCH Success rate", Metric: types.MetricSDCCHSR, Domain: types.DomainAccessibility,
			Technology: Tech2G, TargetPct: 95, Operator: types.OpGreaterEqual, Threshold: 98.5, Unit: "%", GroupRule: types.RuleAtLeast},
		{Name: "Perceive Drop Rate", Metric: types.MetricDropRate, Domain: types.DomainRetainability,
			Technology: Tech2G, TargetPct: 95, Operator: types.OpLess, Threshold: 2.0, Unit: "%", GroupRule: types.RuleAtLeast},

		// 4G accessibility
		{Name: "Session Setup Success Rate", Metric: types.MetricSessionSetupSR, Domain: types.DomainAccessibility,
			Technology: Tech4G, TargetPct: 97, Operator: types.OpGreaterEqual, Threshold: 99.0, Unit: "%", GroupRule: types.RuleAtLeast},
		{Name: "RACH Success Rate", Metric: types.MetricRACHSR, Domain: types.DomainAccessibility,
			Technology: Tech4G, TargetPct: 60, Operator: types.OpGreaterEqual, Threshold: 85.0, Unit: "%", GroupRule: types.RuleAtLeast},
		{Name: "RACH Success Rate", Metric: types.MetricRACHSR, Domain: types.DomainAccessibility,
			Technology: Tech4G, TargetPct: 3, Operator: types.OpLess, Threshold: 55.0, Unit: "%", GroupRule: types.RuleAtMost},

		// 4G mobility
		{Name: "Handover Success Rate Inter and Intra-Frequency", Metric: types.MetricHandoverSR, Domain: types.DomainMobility,
			Technology: Tech4G, TargetPct: 95, Operator: types.OpGreaterEqual, Threshold: 97.0, Unit: "%", GroupRule: types.RuleAtLeast},

		// 4G retainability
		{Name: "E-RAB Drop Rate", Metric: types.MetricERABDropRate, Domain: types.DomainRetainability,
			Technology: Tech4G, TargetPct: 95, Operator: types.OpLess, Threshold: 2.0, Unit: "%", GroupRule: types.RuleAtLeast},

		// 4G integrity
		{Name: "Downlink User Throughput", Metric: types.MetricDLThroughput, Domain: types.DomainIntegrity,
			Technology: Tech4G, TargetPct: 85, Operator: types.OpGreaterEqual, Threshold: 3.0, Unit: "Mbps", GroupRule: types.RuleAtLeast},
		{Name: "Downlink User Throughput", Metric: types.MetricDLThroughput, Domain: types.DomainIntegrity,
			Technology: Tech4G, TargetPct: 2, Operator: types.OpLess, Threshold: 1.0, Unit: "Mbps", GroupRule: types.RuleAtMost},
		{Name: "Uplink User Throughput", Metric: types.MetricULThroughput, Domain: types.DomainIntegrity,
			Technology: Tech4G, TargetPct: 65, Operator: types.OpGreaterEqual, Threshold: 1.0, Unit: "Mbps", GroupRule: types.RuleAtLeast},
		{Name: "Uplink User Throughput", Metric: types.MetricULThroughput, Domain: types.DomainIntegrity,
			Technology: Tech4G, TargetPct: 2, Operator: types.OpLess, Threshold: 0.256, Unit: "Mbps", GroupRule: types.RuleAtMost},
		{Name: "UL Packet Loss (PDCP)", Metric: types.MetricULPacketLoss, Domain: types.DomainIntegrity,
			Technology: Tech4G, TargetPct: 97, Operator: types.OpLess, Threshold: 0.85, Unit: "%", GroupRule: types.RuleAtLeast},
		{Name: "DL Packet Loss (PDCP)", Metric: types.MetricDLPacketLoss, Domain: types.DomainIntegrity,
			Technology: Tech4G, TargetPct: 97, Operator: types.OpLess, Threshold: 0.10, Unit: "%", GroupRule: types.RuleAtLeast},
		{Name: "CQI", Metric: types.MetricCQI, Domain: types.DomainIntegrity,
			Technology: Tech4G, TargetPct: 95, Operator: types.OpGreaterEqual, Threshold: 7.0, Unit: "num", GroupRule: types.RuleAtLeast},
		{Name: "MIMO Transmission Rank2 Rate", Metric: types.MetricMIMORank2, Domain: types.DomainIntegrity,
			Technology: Tech4G, TargetPct: 70, Operator: types.OpGreaterEqual, Threshold: 35.0, Unit: "%", GroupRule: types.RuleAtLeast},
		{Name: "MIMO Transmission Rank2 Rate", Metric: types.MetricMIMORank2, Domain: types.DomainIntegrity,
			Technology: Tech4G, TargetPct: 5, Operator: types.OpLess, Threshold: 20.0, Unit: "%", GroupRule: types.RuleAtMost},
		{Name: "UL RSSI", Metric: types.MetricULRSSI, Domain: types.DomainIntegrity,
			Technology: Tech4G, TargetPct: 97, Operator: types.OpLess, Threshold: -105.0, Unit: "dBm", GroupRule: types.RuleAtLeast},
		{Name: "Packet Latency", Metric: types.MetricLatency, Domain: types.DomainIntegrity,
			Technology: Tech4G, TargetPct: 95, Operator: types.OpLess, Threshold: 30.0, Unit: "ms", GroupRule: types.RuleAtLeast},
		{Name: "Packet Latency", Metric: types.MetricLatency, Domain: types.DomainIntegrity,
			Technology: Tech4G, TargetPct: 5, Operator: types.OpGreaterEqual, Threshold: 40.0, Unit: "ms", GroupRule: types.RuleAtMost},
		{Name: "Spectral Efficiency", Metric: types.MetricSpectralEff, Domain: types.DomainIntegrity,
			Technology: Tech4G, TargetPct: 90, Operator: types.OpGreaterEqual, Threshold: 0, Unit: "bit/s/Hz", GroupRule: types.RuleAtLeast, Banded: true},

		// 4G VoLTE
		{Name: "Voice Call Success Rate (VoLTE)", Metric: types.MetricVoLTECSSR, Domain: types.DomainVoLTE,
			Technology: Tech4G, TargetPct: 95, Operator: types.OpGreaterEqual, Threshold: 97.0, Unit: "%", GroupRule: types.RuleAtLeast},
		{Name: "Voice Call Drop Rate (VoLTE)", Metric: types.MetricVoLTEDrop, Domain: types.DomainVoLTE,
			Technology: Tech4G, TargetPct: 95, Operator: types.OpLess, Threshold: 2.0, Unit: "%", GroupRule: types.RuleAtLeast},
		{Name: "SRVCC Success Rate", Metric: types.MetricSRVCCSR, Domain: types.DomainVoLTE,
			Technology: Tech4G, TargetPct: 95, Operator: types.OpGreaterEqual, Threshold: 97.0, Unit: "%", GroupRule: types.RuleAtLeast},

		// 5G
		{Name: "CQI", Metric: types.MetricCQI, Domain: types.DomainIntegrity,
			Technology: Tech5G, TargetPct: 30, Operator: types.OpGreaterEqual, Threshold: 10.0, Unit: "num", GroupRule: types.RuleAtLeast},
		{Name: "UL RSSI", Metric: types.MetricULRSSI, Domain: types.DomainIntegrity,
			Technology: Tech5G, TargetPct: 95, Operator: types.OpLess, Threshold: -105.0, Unit: "dBm", GroupRule: types.RuleAtLeast},
		{Name: "Packet Latency", Metric: types.MetricLatency, Domain: types.DomainIntegrity,
			Technology: Tech5G, TargetPct: 95, Operator: types.OpLess, Threshold: 20.0, Unit: "ms", GroupRule: types.RuleAtLeast},
	}
}

// SEBucket identifies a banded spectral-efficiency population.
type SEBucket struct {
	Tx   string
	Band string
}

// Spectral-efficiency pass thresholds by antenna configuration and
// frequency band (bit/s/Hz). Cells outside any bucket are excluded from
// the SE check, not failed.
var seThresholds = map[SEBucket]float64{
	{"2T2R", "850"}:    1.1,
	{"2T2R", "900"}:    1.1,
	{"2T2R", "1800"}:   1.25,
	{"2T2R", "2100"}:   1.3,
	{"4T4R", "1800"}:   1.5,
	{"8T8R", "1800"}:   1.5,
	{"4T4R", "2100"}:   1.7,
	{"8T8R", "2100"}:   1.7,
	{"4T4R", "2300"}:   1.7,
	{"8T8R", "2300"}:   1.7,
	{"32T32R", "2300"}: 2.1,
	{"MM", "1800"}:     1.25,
	{"MM", "2300"}:     2.1,
}

// SEThreshold looks up the banded threshold for one (tx, band) bucket.
func SEThreshold(tx, band string) (float64, bool) {
	v, ok := seThresholds[SEBucket{Tx: tx, Band: band}]
	return v, ok
}

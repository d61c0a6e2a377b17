package actionable

import (
	"strings"
	"testing"

	"ran-insights-go/internal/types"
)

func result(name string, rule types.GroupRule, targetPct, achievement float64, passed bool) types.KPIResult {
	return types.KPIResult{
		KPIName:        name,
		Target:         types.KPITarget{Name: name, TargetPct: targetPct, GroupRule: rule},
		Period:         "Period 1",
		TotalCells:     10,
		AchievementPct: achievement,
		Passed:         passed,
	}
}

func TestGeneratePicksWorstMiss(t *testing.T) {
	cards := Generate([]types.KPIResult{
		result("CQI", types.RuleAtLeast, 95, 90, false),
		result("Handover Success Rate Inter and Intra-Frequency", types.RuleAtLeast, 95, 60, false),
		result("Session Setup Success Rate", types.RuleAtLeast, 97, 97, true),
	})
	if len(cards) != 1 {
		t.Fatalf("cards = %d, want 1", len(cards))
	}
	if !strings.Contains(cards[0].Insight, "Handover") {
		t.Fatalf("worst miss not selected: %q", cards[0].Insight)
	}
}

func TestGenerateFlagsBadTail(t *testing.T) {
	cards := Generate([]types.KPIResult{
		result("RACH Success Rate", types.RuleAtMost, 3, 12, false),
	})
	if len(cards) != 1 {
		t.Fatalf("cards = %d, want 1", len(cards))
	}
	if !strings.Contains(cards[0].Insight, "degraded band") {
		t.Fatalf("bad-tail card missing: %q", cards[0].Insight)
	}
}

func TestGenerateAllPassing(t *testing.T) {
	cards := Generate([]types.KPIResult{
		result("CQI", types.RuleAtLeast, 95, 99, true),
	})
	if len(cards) != 1 || !strings.Contains(cards[0].Insight, "within target") {
		t.Fatalf("cards = %+v", cards)
	}
}

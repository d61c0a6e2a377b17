package actionable

import (
	"fmt"

	"ran-insights-go/internal/types"
)

// Generate derives follow-up recommendations from a cluster's evaluated
// results: one card for the worst-missed at-least rule, one when a
// bad-tail rule trips.
func Generate(results []types.KPIResult) []types.ActionCard {
	var worst *types.KPIResult
	worstGap := 0.0
	var tripped *types.KPIResult

	for i := range results {
		r := &results[i]
		if r.Passed || r.TotalCells == 0 {
			continue
		}
		switch r.Target.GroupRule {
		case types.RuleAtLeast:
			gap := r.Target.TargetPct - r.AchievementPct
			if gap > worstGap {
				worstGap = gap
				worst = r
			}
		case types.RuleAtMost:
			if tripped == nil || r.AchievementPct > tripped.AchievementPct {
				tripped = r
			}
		}
	}

	var cards []types.ActionCard
	if worst != nil {
		cards = append(cards, types.ActionCard{
			Insight: fmt.Sprintf("%s at %.1f%% against a %.0f%% target in %s", worst.KPIName, worst.AchievementPct, worst.Target.TargetPct, worst.Period),
			Action:  fmt.Sprintf("Audit the %d contributing cells; prioritize sites with repeated misses", len(worst.FailingCells)),
			Impact:  "Largest single lever on cluster acceptance",
		})
	}
	if tripped != nil {
		cards = append(cards, types.ActionCard{
			Insight: fmt.Sprintf("%.1f%% of cells sit in the degraded band for %s (cap %.0f%%)", tripped.AchievementPct, tripped.KPIName, tripped.Target.TargetPct),
			Action:  "Investigate the degraded tail before the next reporting window",
			Impact:  "Bad-tail breaches block acceptance even when the average looks healthy",
		})
	}
	if len(cards) == 0 {
		cards = append(cards, types.ActionCard{
			Insight: "All evaluated KPIs within target",
			Action:  "Monitor and keep collecting",
			Impact:  "No immediate intervention",
		})
	}
	return cards
}

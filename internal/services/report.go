package services

import (
	"math"
	"sort"

	"menteviva/internal/models/db_models"
	"menteviva/internal/models/response_models"
)

const (
	topSabotageLimit  = 5
	topChallengeLimit = 6
)

// BuildReport aggregates a habit's check-in history for the reports screen.
func BuildReport(checkIns []db_models.CheckIn) response_models.Report {
	report := response_models.Report{
		TotalCheckIns: len(checkIns),
		MissedByTimeOfDay: map[string]int{
			string(db_models.Morning):   0,
			string(db_models.Afternoon): 0,
			string(db_models.Evening):   0,
		},
		SuccessRate: CalculateSuccessRate(checkIns),
	}

	sabotage := map[string]int{}
	motivations := map[string]int{}
	challenges := map[string]int{}
	var energy, satisfaction, mood int

	for _, c := range checkIns {
		switch c.Status {
		case db_models.StatusCompleted:
			report.Balance.Completed++
		case db_models.StatusPartial:
			report.Balance.Partial++
		case db_models.StatusMissed:
			report.Balance.Missed++
			if c.TimeOfDay != nil {
				report.MissedByTimeOfDay[string(*c.TimeOfDay)]++
			}
		}
		for _, tag := range c.SabotagePatterns {
			sabotage[tag]++
		}
		for _, tag := range c.Motivations {
			motivations[tag]++
		}
		for _, tag := range c.Challenges {
			challenges[tag]++
		}
		energy += c.EnergyLevel
		satisfaction += c.Satisfaction
		mood += c.Mood
	}

	report.TopSabotage = rankTags(sabotage, topSabotageLimit)
	report.Motivations = rankTags(motivations, 0)
	report.TopChallenges = rankTags(challenges, topChallengeLimit)

	if n := len(checkIns); n > 0 {
		report.AverageEnergy = average(energy, n)
		report.AverageSatisfaction = average(satisfaction, n)
		report.AverageMood = average(mood, n)
	}
	return report
}

// rankTags orders tags by count descending, then by name. limit <= 0 keeps all.
func rankTags(counts map[string]int, limit int) []response_models.TagCount {
	ranked := make([]response_models.TagCount, 0, len(counts))
	for tag, count := range counts {
		ranked = append(ranked, response_models.TagCount{Tag: tag, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Tag < ranked[j].Tag
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// average rounds to one decimal place.
func average(sum, n int) float64 {
	return math.Round(float64(sum)/float64(n)*10) / 10
}
